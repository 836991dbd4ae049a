package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupEnvironment loads the .env file, if any, and configures zerolog.
// Production output is JSON with unix timestamps; everything else goes
// through the console writer.
func setupEnvironment() {
	envErr := godotenv.Load()

	production := os.Getenv("ENV") == "production"
	if production {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	zerolog.SetGlobalLevel(logLevel(strings.ToLower(os.Getenv("LOGLEVEL")), production))

	// Report on the .env file only now that logging is configured.
	if envErr == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found; proceeding with existing environment variables.")
	}
}

// logLevel maps LOGLEVEL to a zerolog level. Unset means warn in production
// and info elsewhere; an unrecognized value falls back to info with a
// warning.
func logLevel(raw string, production bool) zerolog.Level {
	if raw == "" {
		if production {
			return zerolog.WarnLevel
		}
		return zerolog.InfoLevel
	}
	if raw == "warning" {
		raw = "warn"
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", raw)
		return zerolog.InfoLevel
	}
	return level
}
