package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Session and OAuth secrets (prefer env variables)
	SessionSecret      string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// Email domain that makes a signed-in account eligible to vote
	EmailDomain string

	// Stats runs the terminal tally report instead of the server
	Stats bool
}

// ParseFlags validates flags and fills defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("kq-voting", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")
	fs.StringVar(&cfg.GoogleClientID, "google-client-id", "", "Google OAuth client ID (prefer env)")
	fs.StringVar(&cfg.GoogleClientSecret, "google-client-secret", "", "Google OAuth client secret (prefer env)")
	fs.StringVar(&cfg.OAuthRedirectURL, "redirect-url", "", "OAuth callback URL")
	fs.StringVar(&cfg.EmailDomain, "email-domain", "", "Eligible email domain")

	fs.BoolVar(&cfg.Stats, "stats", false, "Print the tally report and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.EmailDomain == "" {
		cfg.EmailDomain = os.Getenv("EMAIL_DOMAIN")
	}
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = "ucu.edu.ua"
	}
	cfg.EmailDomain = strings.TrimPrefix(cfg.EmailDomain, "@")

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	// The stats report never talks to Google
	if !cfg.Stats {
		if cfg.GoogleClientID == "" {
			cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
		}
		if cfg.GoogleClientID == "" {
			return Config{}, errors.New("GOOGLE_CLIENT_ID required")
		}

		if cfg.GoogleClientSecret == "" {
			cfg.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
		}
		if cfg.GoogleClientSecret == "" {
			return Config{}, errors.New("GOOGLE_CLIENT_SECRET required")
		}

		if cfg.OAuthRedirectURL == "" {
			cfg.OAuthRedirectURL = os.Getenv("OAUTH_REDIRECT_URL")
		}
		if cfg.OAuthRedirectURL == "" {
			cfg.OAuthRedirectURL = fmt.Sprintf("http://localhost:%d/auth/callback", cfg.Port)
		}
	}

	return cfg, nil
}
