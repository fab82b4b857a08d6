/* config.go
 * Contains the Config struct and Load function. Values are read from the environment, which main populates
 * from a .env file when one is present
 * Authors: Zachary Bower
 */

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI            string
	MongoDB             string
	Port                string
	CORSOrigins         []string
	ProvisioningBaseURL string
	NotifierTimeout     time.Duration
	NotifierRate        float64
	LogMode             string
	DiscordToken        string
}

// Load reads the configuration from environment variables, falling back to defaults
// Preconditions: none
// Postconditions: Returns a populated Config
func Load() Config {
	return Config{
		MongoURI:            getenv("MONGODB_URI", "mongodb://127.0.0.1:27017/?directConnection=true&serverSelectionTimeoutMS=2000"),
		MongoDB:             getenv("MONGODB_DB", "cpr"),
		Port:                getenv("PORT", "5000"),
		CORSOrigins:         splitList(getenv("CORS_ORIGIN", "https://cpr-react.vercel.app")),
		ProvisioningBaseURL: getenv("PROVISIONING_BASE_URL", "https://cpr-backend.vercel.app/"),
		NotifierTimeout:     getenvDuration("NOTIFIER_TIMEOUT", 10*time.Second),
		NotifierRate:        getenvFloat("NOTIFIER_RATE", 5),
		LogMode:             getenv("LOG_MODE", "development"),
		DiscordToken:        os.Getenv("DISCORD_TOKEN"),
	}
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// splitList splits a comma separated value, dropping blanks
func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
