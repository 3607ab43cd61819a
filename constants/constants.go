package constants

import (
	"os"
	"time"
)

const DefaultBPM = 90.0

// StoreFlushDelay is how long the score index waits for more writes before
// it is flushed to disk.
const StoreFlushDelay = 2 * time.Second

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GetOutDir is where exports and stored scores go.
func GetOutDir() string {
	return getenv("PIANOSIGHT_OUT", "./out")
}

func GetAddr() string {
	return getenv("PIANOSIGHT_ADDR", ":8080")
}

// GetConfigPath returns the YAML config path, or "" when none is set.
func GetConfigPath() string {
	return os.Getenv("PIANOSIGHT_CONFIG")
}
