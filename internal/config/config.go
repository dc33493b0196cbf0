package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings for the questionnaire editor process.
type Config struct {
	APIURL       string
	Token        string
	DataDir      string
	InitialID    string
	Watch        bool
	RegistryFile string
}

// UseAPI reports whether questionnaires come from the HTTP API rather than
// the data directory.
func (c Config) UseAPI() bool {
	return c.APIURL != ""
}

// LoadEnvFile loads KEY=value pairs from path into the environment. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseFlags parses args, falling back to QUESTIONNAIRE_* environment
// variables for anything not given on the command line.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var watch string

	fs := flag.NewFlagSet("questionnaire", flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "api", "", "Questionnaire API base URL")
	fs.StringVar(&cfg.Token, "token", "", "API bearer token (prefer env)")
	fs.StringVar(&cfg.DataDir, "data", "", "Directory of questionnaire files")
	fs.StringVar(&cfg.InitialID, "id", "", "Questionnaire to load at startup")
	fs.StringVar(&watch, "watch", "", "Reload on file change (true/false)")
	fs.StringVar(&cfg.RegistryFile, "registry", "", "Component registry YAML file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("QUESTIONNAIRE_API")
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("QUESTIONNAIRE_TOKEN")
	}
	if cfg.InitialID == "" {
		cfg.InitialID = os.Getenv("QUESTIONNAIRE_ID")
	}
	if cfg.RegistryFile == "" {
		cfg.RegistryFile = os.Getenv("QUESTIONNAIRE_REGISTRY")
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("QUESTIONNAIRE_DATA")
	}
	if cfg.DataDir == "" && cfg.APIURL == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".local", "share", "questionnaire")
	}

	if watch == "" {
		watch = os.Getenv("QUESTIONNAIRE_WATCH")
	}
	if watch != "" {
		w, err := strconv.ParseBool(watch)
		if err != nil {
			return Config{}, fmt.Errorf("invalid watch value %q", watch)
		}
		cfg.Watch = w
	}

	if cfg.Watch && cfg.UseAPI() {
		return Config{}, errors.New("-watch needs a data directory, not -api")
	}

	return cfg, nil
}
