// Package config resolves the settings a workflow binary runs with.
//
// Sources are layered, later ones winning: the workflow's defaults, an
// optional config.yaml in the workflow data directory, an optional .env file
// next to it, and finally the process environment. Values from .env never
// replace a variable already present in the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kyleking/alfred-workflows/internal/alfred"
)

const (
	FileName   = "config.yaml"
	DotenvName = ".env"

	EnvAPIKey         = "API_KEY"
	EnvApplicationKey = "APPLICATION_KEY"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvSubdomain      = "SUBDOMAIN"
	EnvAPIURL         = "API_URL"
	EnvResultLimit    = "RESULT_LIMIT"
	EnvAlfredDebug    = "alfred_debug"
)

// Config is handed to clients, stores and workflows as a plain value.
type Config struct {
	// Workflow is the data directory name, e.g. "buildkite".
	Workflow       string
	APIKey         string
	ApplicationKey string
	DatabaseURL    string
	Subdomain      string
	APIURL         string
	ResultLimit    int
	Debug          bool
}

// rawConfig mirrors config.yaml. Pointer fields distinguish "absent" from
// "set to the zero value".
type rawConfig struct {
	APIKey         *string `yaml:"api_key"`
	ApplicationKey *string `yaml:"application_key"`
	DatabaseURL    *string `yaml:"database_url"`
	Subdomain      *string `yaml:"subdomain"`
	APIURL         *string `yaml:"api_url"`
	ResultLimit    *int    `yaml:"result_limit"`
	Debug          *bool   `yaml:"debug"`
}

// Load layers every source over defaults for the named workflow. When no
// source names a database, it lives at alfred.DatabasePath(name).
func Load(name string, defaults Config) (Config, error) {
	dir, err := alfred.DataDir(name)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults
	cfg.Workflow = name

	if err := cfg.applyFile(filepath.Join(dir, FileName)); err != nil {
		return Config{}, err
	}

	dotenv, err := readDotenv(filepath.Join(dir, DotenvName))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL, err = alfred.DatabasePath(name)
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	setString(&c.APIKey, raw.APIKey)
	setString(&c.ApplicationKey, raw.ApplicationKey)
	setString(&c.DatabaseURL, raw.DatabaseURL)
	setString(&c.Subdomain, raw.Subdomain)
	setString(&c.APIURL, raw.APIURL)
	if raw.ResultLimit != nil {
		c.ResultLimit = *raw.ResultLimit
	}
	if raw.Debug != nil {
		c.Debug = *raw.Debug
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for key, dst := range map[string]*string{
		EnvAPIKey:         &c.APIKey,
		EnvApplicationKey: &c.ApplicationKey,
		EnvDatabaseURL:    &c.DatabaseURL,
		EnvSubdomain:      &c.Subdomain,
		EnvAPIURL:         &c.APIURL,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvResultLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvResultLimit, v)
		}
		c.ResultLimit = n
	}
	if v, ok := lookup(EnvAlfredDebug); ok && v == "1" {
		c.Debug = true
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Require reports the first missing setting among the given required keys.
func (c Config) Require(keys ...string) error {
	for _, key := range keys {
		var v string
		switch key {
		case EnvAPIKey:
			v = c.APIKey
		case EnvApplicationKey:
			v = c.ApplicationKey
		case EnvSubdomain:
			v = c.Subdomain
		case EnvAPIURL:
			v = c.APIURL
		case EnvDatabaseURL:
			v = c.DatabaseURL
		}
		if v == "" {
			return fmt.Errorf("%w: %s", ErrMissing, key)
		}
	}
	return nil
}

// ErrMissing is returned by Require.
var ErrMissing = errors.New("missing required setting")
