package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seekpath/scout/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "scout"
user = "scout"
password = "scout"
ssl_mode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = "15m"
conn_timeout = "5s"

[storage]
container_name = "scrapes"
connection_string = "DefaultEndpointsProtocol=http;AccountName=scoutstore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/scoutstore;"

[api]
base_path = "/api"

[api.cors]
enabled = false

[api.pagination]
default_page_size = 25
max_page_size = 50

[agent]
name = "test-agent"

[agent.provider]
name = "ollama"
base_url = "http://localhost:11434"

[agent.model]
name = "llama3.1:8b"

[review.weights]
quick_fit = 0.2
brand_match = 0.2
builder = 0.2
maximizer = 0.2
harmonizer = 0.2

[review.guardrails]
min_salary = 90000.0
min_seniority = "mid"
red_flags = ["unpaid", "commission only"]
block_on_red_flags = true
tie_break = "recommend"

[scrape]
endpoint = "http://localhost:9100/scrape"
spec = "@every 2h"
timeout = "45s"

[[scrape.searches]]
site = "indeed"
query = "golang engineer"
location = "remote"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"
`

// minimalConfig provides the minimum fields required for validation to
// pass (db name and user). Storage stays unconfigured, which disables the
// batch archive; agent defaults fill in from go-agents DefaultAgentConfig().
const minimalConfig = `
shutdown_timeout = "30s"

[server]
port = 8080

[database]
name = "scout"
user = "scout"

[api]
base_path = "/api"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.Storage.ContainerName != "scrapes" {
		t.Errorf("storage container: got %s, want scrapes", cfg.Storage.ContainerName)
	}
	if !cfg.Storage.Enabled() {
		t.Error("storage should be enabled when a connection string is set")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("pagination max_page_size: got %d, want 50", cfg.API.Pagination.MaxPageSize)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("SCOUT_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("db host: got %s, want prodhost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("SCOUT_VERSION", "2.0.0")
	t.Setenv("SCOUT_SERVER_PORT", "3000")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("SCOUT_DB_NAME", "testdb")
	t.Setenv("SCOUT_DB_USER", "testuser")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
	if cfg.Storage.Enabled() {
		t.Error("storage should be disabled without a connection string")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", `invalid = [`)
	chdir(t, dir)

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestEnvDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}

func TestEnvFromEnvVar(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("SCOUT_ENV", "production")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "production" {
		t.Errorf("env: got %s, want production", cfg.Env())
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if d := cfg.ShutdownTimeoutDuration(); d != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", d)
	}
}

func TestServerAddr(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if addr := cfg.Server.Addr(); addr != "0.0.0.0:8080" {
		t.Errorf("addr: got %s, want 0.0.0.0:8080", addr)
	}
}

func TestPaginationDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.API.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default_page_size: got %d, want 20", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.API.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max_page_size: got %d, want 100", cfg.API.Pagination.MaxPageSize)
	}
}

func TestPaginationEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("SCOUT_PAGINATION_DEFAULT_PAGE_SIZE", "10")
	t.Setenv("SCOUT_PAGINATION_MAX_PAGE_SIZE", "200")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.API.Pagination.DefaultPageSize != 10 {
		t.Errorf("pagination default_page_size: got %d, want 10", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.API.Pagination.MaxPageSize != 200 {
		t.Errorf("pagination max_page_size: got %d, want 200", cfg.API.Pagination.MaxPageSize)
	}
}

func TestMaxIngestSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		size string
		want int64
	}{
		{"valid 50MB", "50MB", 50 * 1024 * 1024},
		{"valid 10MB", "10MB", 10 * 1024 * 1024},
		{"valid 1GB", "1GB", 1024 * 1024 * 1024},
		{"invalid falls back to 10MB", "bad", 10 * 1024 * 1024},
		{"empty falls back to 10MB", "", 10 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.APIConfig{MaxIngestSize: tt.size}
			got := cfg.MaxIngestSizeBytes()
			if got != tt.want {
				t.Errorf("MaxIngestSizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaxIngestSizeDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := int64(10 * 1024 * 1024)
	if got := cfg.API.MaxIngestSizeBytes(); got != want {
		t.Errorf("MaxIngestSizeBytes() = %d, want %d", got, want)
	}
}

func TestMaxIngestSizeEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("SCOUT_API_MAX_INGEST_SIZE", "100MB")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := int64(100 * 1024 * 1024)
	if got := cfg.API.MaxIngestSizeBytes(); got != want {
		t.Errorf("MaxIngestSizeBytes() = %d, want %d", got, want)
	}
}

func TestServerValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name: "invalid port",
			config: `
shutdown_timeout = "30s"

[server]
port = 99999

[database]
name = "scout"
user = "scout"
`,
			wantErr: "invalid port",
		},
		{
			name: "invalid read_timeout",
			config: `
shutdown_timeout = "30s"

[server]
read_timeout = "bad"

[database]
name = "scout"
user = "scout"
`,
			wantErr: "invalid read_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", tt.config)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestAgentConfigFromTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Agent.Name != "test-agent" {
		t.Errorf("agent name: got %s, want test-agent", cfg.Agent.Name)
	}
	if cfg.Agent.Provider == nil {
		t.Fatal("agent provider is nil")
	}
	if cfg.Agent.Provider.Name != "ollama" {
		t.Errorf("provider name: got %s, want ollama", cfg.Agent.Provider.Name)
	}
	if cfg.Agent.Provider.BaseURL != "http://localhost:11434" {
		t.Errorf("provider base_url: got %s, want http://localhost:11434", cfg.Agent.Provider.BaseURL)
	}
	if cfg.Agent.Model == nil {
		t.Fatal("agent model is nil")
	}
	if cfg.Agent.Model.Name != "llama3.1:8b" {
		t.Errorf("model name: got %s, want llama3.1:8b", cfg.Agent.Model.Name)
	}
}

func TestAgentDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Agent.Name != "default-agent" {
		t.Errorf("agent name: got %s, want default-agent", cfg.Agent.Name)
	}
	if cfg.Agent.Provider == nil {
		t.Fatal("agent provider is nil")
	}
	if cfg.Agent.Provider.Name != "ollama" {
		t.Errorf("provider name: got %s, want ollama", cfg.Agent.Provider.Name)
	}
	if cfg.Agent.Provider.BaseURL != "http://localhost:11434" {
		t.Errorf("provider base_url: got %s, want http://localhost:11434", cfg.Agent.Provider.BaseURL)
	}
}

func TestAgentEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("SCOUT_AGENT_PROVIDER_NAME", "azure")
	t.Setenv("SCOUT_AGENT_BASE_URL", "https://myendpoint.openai.azure.com")
	t.Setenv("SCOUT_AGENT_MODEL_NAME", "gpt-5-mini")
	t.Setenv("SCOUT_AGENT_TOKEN", "test-token")
	t.Setenv("SCOUT_AGENT_DEPLOYMENT", "gpt-5-mini")
	t.Setenv("SCOUT_AGENT_API_VERSION", "2024-12-01-preview")
	t.Setenv("SCOUT_AGENT_AUTH_TYPE", "api_key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Agent.Provider.Name != "azure" {
		t.Errorf("provider name: got %s, want azure", cfg.Agent.Provider.Name)
	}
	if cfg.Agent.Provider.BaseURL != "https://myendpoint.openai.azure.com" {
		t.Errorf("provider base_url: got %s, want https://myendpoint.openai.azure.com", cfg.Agent.Provider.BaseURL)
	}
	if cfg.Agent.Model.Name != "gpt-5-mini" {
		t.Errorf("model name: got %s, want gpt-5-mini", cfg.Agent.Model.Name)
	}

	opts := cfg.Agent.Provider.Options
	if opts["token"] != "test-token" {
		t.Errorf("token: got %v, want test-token", opts["token"])
	}
	if opts["deployment"] != "gpt-5-mini" {
		t.Errorf("deployment: got %v, want gpt-5-mini", opts["deployment"])
	}
	if opts["api_version"] != "2024-12-01-preview" {
		t.Errorf("api_version: got %v, want 2024-12-01-preview", opts["api_version"])
	}
	if opts["auth_type"] != "api_key" {
		t.Errorf("auth_type: got %v, want api_key", opts["auth_type"])
	}
}

func TestAgentTokenNotRequired(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if _, ok := cfg.Agent.Provider.Options["token"]; ok {
		t.Error("token should not be set when env var is absent")
	}
}

func TestReviewConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	weights := cfg.Review.DecisionWeights()
	if got := weights["quick_fit"]; got != 0.2 {
		t.Errorf("quick_fit weight: got %v, want 0.2", got)
	}

	rails := cfg.Review.DecisionGuardrails()
	if rails.MinSalary != 90000 {
		t.Errorf("min_salary: got %v, want 90000", rails.MinSalary)
	}
	if rails.MinSeniority != "mid" {
		t.Errorf("min_seniority: got %s, want mid", rails.MinSeniority)
	}
	if len(rails.RedFlags) != 2 {
		t.Errorf("red_flags: got %d entries, want 2", len(rails.RedFlags))
	}
	if !rails.BlockOnRedFlags {
		t.Error("block_on_red_flags should be true")
	}
	if rails.TieBreakReject {
		t.Error("tie_break recommend should not set TieBreakReject")
	}
}

func TestReviewDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	rails := cfg.Review.DecisionGuardrails()
	if rails.TieBreakReject {
		t.Error("tie_break defaults to recommend")
	}
	if rails.MinSalary != 0 {
		t.Errorf("min_salary default: got %v, want 0", rails.MinSalary)
	}
}

func TestReviewValidation(t *testing.T) {
	tests := []struct {
		name    string
		section string
		wantErr string
	}{
		{
			name: "unknown seniority",
			section: `
[review.guardrails]
min_seniority = "wizard"
`,
			wantErr: "unknown min_seniority",
		},
		{
			name: "bad tie break",
			section: `
[review.guardrails]
tie_break = "coin-flip"
`,
			wantErr: "tie_break",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", minimalConfig+tt.section)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestReviewEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("SCOUT_REVIEW_MIN_SALARY", "120000")
	t.Setenv("SCOUT_REVIEW_RED_FLAGS", "mlm, door to door")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	rails := cfg.Review.DecisionGuardrails()
	if rails.MinSalary != 120000 {
		t.Errorf("min_salary: got %v, want 120000", rails.MinSalary)
	}
	if len(rails.RedFlags) != 2 || rails.RedFlags[0] != "mlm" || rails.RedFlags[1] != "door to door" {
		t.Errorf("red_flags: got %v, want [mlm, door to door]", rails.RedFlags)
	}
}

func TestScrapeConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.Scrape.Enabled() {
		t.Error("scrape should be enabled with an endpoint and searches")
	}
	if cfg.Scrape.Spec != "@every 2h" {
		t.Errorf("spec: got %s, want @every 2h", cfg.Scrape.Spec)
	}
	if d := cfg.Scrape.TimeoutDuration(); d != 45*time.Second {
		t.Errorf("timeout: got %v, want 45s", d)
	}
	if len(cfg.Scrape.Searches) != 1 || cfg.Scrape.Searches[0].Site != "indeed" {
		t.Errorf("searches: got %v", cfg.Scrape.Searches)
	}
}

func TestScrapeDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Scrape.Enabled() {
		t.Error("scrape should be disabled without an endpoint")
	}
	if cfg.Scrape.Spec != "@every 6h" {
		t.Errorf("spec default: got %s, want @every 6h", cfg.Scrape.Spec)
	}
	if cfg.Scrape.Timeout != "30s" {
		t.Errorf("timeout default: got %s, want 30s", cfg.Scrape.Timeout)
	}
}

func TestScrapeValidation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig+`
[scrape]
endpoint = "http://localhost:9100/scrape"

[[scrape.searches]]
site = "indeed"
`)
	chdir(t, dir)

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error for search without query")
	}
	if !strings.Contains(err.Error(), "query required") {
		t.Errorf("error %q does not mention query", err.Error())
	}
}
