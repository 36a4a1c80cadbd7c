// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the API keys a research run needs.
//
// Keys come from the process environment, which LoadDotEnv can populate from
// a .env file, or from a directory of plain-text files where the filename is
// the key name and the trimmed contents are the value.
//
// Supported key files: openai-api-key, tavily-api-key.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names for the two required credentials.
const (
	OpenAIEnv = "OPENAI_API_KEY"
	TavilyEnv = "TAVILY_API_KEY"
)

// fileNames maps an environment variable to its .secrets/ file name.
var fileNames = map[string]string{
	OpenAIEnv: "openai-api-key",
	TavilyEnv: "tavily-api-key",
}

// Credentials holds the resolved API keys.
type Credentials struct {
	OpenAIAPIKey string
	TavilyAPIKey string
}

// ConfigError reports credentials that could not be resolved. It is the only
// fatal error of a run and is returned before any client is constructed.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing credentials %s: set %s and %s in the environment or a .env file "+
		"in the project root (%s=your_openai_api_key_here, %s=your_tavily_api_key_here)",
		strings.Join(e.Missing, ", "), OpenAIEnv, TavilyEnv, OpenAIEnv, TavilyEnv)
}

// IsConfigError reports whether err is, or wraps, a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// LoadDotEnv loads each existing file in paths into the process environment.
// Variables already set are not overridden. Missing files are skipped.
// It returns the paths that were loaded.
func LoadDotEnv(paths ...string) ([]string, error) {
	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return loaded, fmt.Errorf("checking env file %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, fmt.Errorf("loading env file %s: %w", p, err)
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Resolve returns both credentials, preferring the environment (via lookup)
// over the key files in files. Blank values count as missing. When either
// key is absent it returns a *ConfigError listing every missing variable.
func Resolve(lookup func(string) (string, bool), files map[string]string) (Credentials, error) {
	get := func(env string) string {
		if v, ok := lookup(env); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return files[fileNames[env]]
	}

	creds := Credentials{
		OpenAIAPIKey: get(OpenAIEnv),
		TavilyAPIKey: get(TavilyEnv),
	}

	var missing []string
	if creds.OpenAIAPIKey == "" {
		missing = append(missing, OpenAIEnv)
	}
	if creds.TavilyAPIKey == "" {
		missing = append(missing, TavilyEnv)
	}
	if len(missing) > 0 {
		return Credentials{}, &ConfigError{Missing: missing}
	}
	return creds, nil
}
