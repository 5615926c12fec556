package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	// EnvDataDir overrides the history database directory.
	EnvDataDir = "READSCORE_DATA_DIR"

	// EnvNoHistory disables saving analyses when set to a true value.
	EnvNoHistory = "READSCORE_NO_HISTORY"

	// EnvMetric sets the default selector token.
	EnvMetric = "READSCORE_METRIC"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Variables that are already set are not overwritten.
// With no arguments it loads ".env" in the current directory. Missing files
// are not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides c with READSCORE_* environment variables.
func (c *Config) ApplyEnv() {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.DBDir = dir
	}
	if getEnvBool(EnvNoHistory, false) {
		c.SaveToDB = false
	}
	if metric := os.Getenv(EnvMetric); metric != "" && c.Metric == "" {
		c.Metric = metric
	}
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
