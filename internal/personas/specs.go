package personas

const verdictSpec = `Respond with a JSON object matching this exact structure:

{
  "recommend": true,
  "reason": "<one-sentence verdict summary>",
  "notes": ["<observation1>", "<observation2>"],
  "sources": ["<posting field or external signal the verdict rests on>"]
}

Field constraints:
- recommend: Boolean verdict from your persona's perspective. true means
  the candidate should pursue this posting, false means they should not.
- reason: A single sentence stating the verdict and its primary driver.
  This sentence is quoted verbatim in the final recommendation rationale.
- notes: Supporting observations, including caveats and concerns. Phrase
  genuine reservations with words like "concern", "risk", or "however" so
  they surface as tradeoffs in the final recommendation.
- sources: The posting fields or signals the verdict rests on, e.g.
  "description", "salary", "title", "company reputation".

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Stay strictly within your persona's evaluation lens
- One verdict per posting; never hedge with a conditional recommendation
- Keep reason under 40 words so rationales compose cleanly`

// Spec returns the response specification shared by all persona evaluators.
// Every persona emits the same verdict shape so aggregation stays uniform.
// Returns ErrInvalidPersona if the persona is not recognized.
func Spec(persona Persona) (string, error) {
	if _, ok := instructions[persona]; !ok {
		return "", ErrInvalidPersona
	}
	return verdictSpec, nil
}
