// Package config resolves generator settings from defaults, a YAML file and the environment.
// Command line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/chaingen/internal/generator"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and it exists in the working directory.
const DefaultFile = "chaingen.yaml"

// EnvPrefix prefixes every environment variable, e.g. CHAINGEN_CHAIN_LENGTH.
const EnvPrefix = "CHAINGEN_"

// Config holds every setting of a generator invocation.
type Config struct {
	ProjectName    string        `mapstructure:"project_name" yaml:"project_name"`
	ChainLength    int           `mapstructure:"chain_length" yaml:"chain_length"`
	RecursionLimit int           `mapstructure:"recursion_limit" yaml:"recursion_limit"`
	SrcDir         string        `mapstructure:"src_dir" yaml:"src_dir"`
	Policy         string        `mapstructure:"policy" yaml:"policy"`
	RedisAddr      string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	LockTTL        time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`
	MetricsFile    string        `mapstructure:"metrics_file" yaml:"metrics_file"`
	ListenAddr     string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	RunCommand     string        `mapstructure:"run_command" yaml:"run_command"`
}

// keys lists the mapstructure keys, used to look up environment variables.
var keys = []string{
	"project_name", "chain_length", "recursion_limit", "src_dir", "policy",
	"redis_addr", "lock_ttl", "metrics_file", "listen_addr", "run_command",
}

// Default returns the built-in settings.
func Default() Config {
	req := domain.DefaultRequest()
	return Config{
		ProjectName:    req.ProjectName,
		ChainLength:    req.ChainLength,
		RecursionLimit: req.RecursionLimit,
		SrcDir:         "src",
		Policy:         string(domain.PolicyLenient),
		LockTTL:        generator.DefaultLockTTL,
		ListenAddr:     ":8080",
		RunCommand:     "uv run",
	}
}

// LoadOptions controls where settings are read from.
type LoadOptions struct {
	// ConfigPath is a YAML file. Empty means DefaultFile, if present.
	ConfigPath string
	// EnvFile is a dotenv file loaded into the process environment. Empty means ".env", if present.
	EnvFile string
	// Lookup reads environment variables. Defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load resolves settings: defaults, then the YAML file, then CHAINGEN_* variables.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return cfg, err
	}

	raw, err := readFile(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if err := decode(raw, &cfg); err != nil {
		return cfg, err
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := decode(fromEnv(lookup), &cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}

	return cfg, nil
}

// Request returns the generation request described by cfg.
func (c Config) Request() domain.Request {
	return domain.Request{
		ProjectName:    c.ProjectName,
		ChainLength:    c.ChainLength,
		RecursionLimit: c.RecursionLimit,
	}
}

// ParsedPolicy returns the validation policy.
func (c Config) ParsedPolicy() (domain.Policy, error) {
	return domain.ParsePolicy(c.Policy)
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func readFile(path string) (map[string]any, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return raw, nil
}

func fromEnv(lookup func(string) (string, bool)) map[string]any {
	out := make(map[string]any)
	for _, k := range keys {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(k)); ok {
			out[k] = v
		}
	}
	return out
}

// decode overlays raw onto cfg. Keys absent from raw keep their current value.
func decode(raw map[string]any, cfg *Config) error {
	if len(raw) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
