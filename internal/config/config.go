package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GitHubToken   string
	GitHubAPIURL  string
	GitHubTimeout time.Duration
	RepoCacheTTL  time.Duration
	RepoCacheSize int

	GeminiModel string

	FilesPerRepo    int
	SelectorExclude []string
	PollInterval    time.Duration
	PollMaxAttempts int

	Neo4jURI  string
	Neo4jUser string
	Neo4jPass string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("BACKEND_PORT", "3001"),
		GitHubToken:     strings.TrimSpace(getEnv("GITHUB_TOKEN", "")),
		GitHubAPIURL:    strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
		GitHubTimeout:   getDuration("GITHUB_TIMEOUT", 30*time.Second),
		RepoCacheTTL:    getDuration("REPO_CACHE_TTL", time.Minute),
		RepoCacheSize:   getInt("REPO_CACHE_SIZE", 256),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		FilesPerRepo:    getInt("FILES_PER_REPO", 10),
		SelectorExclude: splitList(getEnv("SELECTOR_EXCLUDE", "")),
		PollInterval:    getDuration("POLL_INTERVAL", 2*time.Second),
		PollMaxAttempts: getInt("POLL_MAX_ATTEMPTS", 15),
		Neo4jURI:        getEnv("NEO4J_URI", ""),
		Neo4jUser:       getEnv("NEO4J_USER", "neo4j"),
		Neo4jPass:       getEnv("NEO4J_PASSWORD", ""),
	}
}

// LedgerEnabled reports whether an audit ledger should be opened.
func (c *Config) LedgerEnabled() bool {
	return strings.TrimSpace(c.Neo4jURI) != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
