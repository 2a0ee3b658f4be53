package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all service settings, loaded once from the environment.
type Config struct {
	AppName    string
	AppVersion string
	Env        string
	Port       int

	// DBDriver selects the database adapter: "gorm" (default) or "bun".
	DBDriver string
	DBDSN    string

	MediaPath   string
	LogoSubdir  string
	CORSOrigins string
}

// Load reads the configuration from environment variables, falling back
// to development defaults for anything unset.
func Load() Config {
	return Config{
		AppName:     getString("APP_NAME", "DemoManagementService"),
		AppVersion:  getString("APP_VERSION", "2.0.1"),
		Env:         getString("ENV", "development"),
		Port:        getInt("PORT", 8801),
		DBDriver:    strings.ToLower(getString("DB_DRIVER", "gorm")),
		DBDSN:       getString("DB_DSN", "demomanage.db"),
		MediaPath:   getString("MEDIA_PATH", "media"),
		LogoSubdir:  getString("LOGO_SUBDIR", "logo"),
		CORSOrigins: getString("CORS_ORIGINS", "*"),
	}
}

func (c Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

func getString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
