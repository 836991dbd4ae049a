package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Config carries everything the bot reads from the environment.
type Config struct {
	BotToken    string
	SheetIDs    []string
	DefaultUser string
	DataDir     string

	Resilience Resilience
}

// Load reads the bot configuration from the environment. The bot token is
// the only hard requirement; an empty sheet list or missing credentials
// degrade into "not configured" replies instead of startup failures.
func Load() *Config {
	return &Config{
		BotToken:    getRequiredEnv("TELEGRAM_BOT_TOKEN"),
		SheetIDs:    splitList(os.Getenv("SHEETS_IDS")),
		DefaultUser: strings.TrimSpace(os.Getenv("DEFAULT_USER_NAME")),
		DataDir:     getEnvWithDefault("DATA_DIR", "data"),
		Resilience:  DefaultResilience,
	}
}

// Credentials resolves the Google service account key. The value of
// GOOGLE_SERVICE_ACCOUNT_JSON may be the key itself or a path to it;
// GOOGLE_SERVICE_ACCOUNT_FILE and the conventional service_account.json
// file are fallbacks. ok is false when no usable key exists.
func Credentials() (data []byte, ok bool) {
	if raw := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); raw != "" {
		if strings.HasPrefix(raw, "{") {
			return []byte(raw), true
		}
		data, err := os.ReadFile(raw)
		if err != nil {
			log.Warn().Err(err).Str("path", raw).Msg("Failed to read service account file")
			return nil, false
		}
		return data, true
	}

	path := getEnvWithDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "service_account.json")
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug().Str("path", path).Msg("No service account file found")
		return nil, false
	}
	return data, true
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

// getRequiredEnv fetches a required environment variable or exits if not set.
func getRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Msgf("%s environment variable is required", key)
	}
	return value
}

// getEnvWithDefault fetches an environment variable with a default fallback.
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
