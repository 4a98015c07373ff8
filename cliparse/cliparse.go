// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

type Config struct {
	Port              int    `env:"PORT" envDefault:"3318"`
	DatabaseURL       string `env:"DATABASE_URL"`
	DatabaseType      string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	SecretaryKey      string `env:"SECRETARY_KEY"`
	SeedFile          string `env:"SEED_FILE"`
	RulesFile         string `env:"RULES_FILE"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string `env:"LOG_FORMAT" envDefault:"text"`
	RequireActiveVote bool   `env:"REQUIRE_ACTIVE_VOTE"`

	// EnvFile is read before the environment is parsed; it never
	// overrides variables that are already set.
	EnvFile string
}

// ParseFlags builds the config. Precedence (high -> low): CLI flags,
// environment, the env file, defaults.
func ParseFlags(args []string) (Config, error) {
	var flags Config

	fset := flag.NewFlagSet("gimnis", flag.ContinueOnError)

	fset.IntVar(&flags.Port, "p", 0, "Server port")
	fset.StringVar(&flags.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&flags.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fset.StringVar(&flags.SecretaryKey, "secretary-key", "", "Secretary key (prefer env)")

	fset.StringVar(&flags.SeedFile, "seed", "", "YAML seed file with judges and competitors")
	fset.StringVar(&flags.RulesFile, "rules", "", "YAML scoring rules file")
	fset.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fset.StringVar(&flags.LogFormat, "log-format", "", "Log format (text or json)")
	fset.BoolVar(&flags.RequireActiveVote, "require-active-vote", false, "Only accept marks for the competitor on the vote")
	fset.StringVar(&flags.EnvFile, "env-file", defaultEnvFile, "Env file to load")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(flags.EnvFile); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.EnvFile = flags.EnvFile

	// Only flags given on the command line override the environment
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = flags.Port
		case "d":
			cfg.DatabaseURL = flags.DatabaseURL
		case "t":
			cfg.DatabaseType = flags.DatabaseType
		case "secretary-key":
			cfg.SecretaryKey = flags.SecretaryKey
		case "seed":
			cfg.SeedFile = flags.SeedFile
		case "rules":
			cfg.RulesFile = flags.RulesFile
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "log-format":
			cfg.LogFormat = flags.LogFormat
		case "require-active-vote":
			cfg.RequireActiveVote = flags.RequireActiveVote
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required values and enumerations.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.DatabaseType {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database type %q (use sqlite or postgres)", c.DatabaseType)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (use text or json)", c.LogFormat)
	}
	return nil
}

// A missing default env file is fine; a missing explicit one is not.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
