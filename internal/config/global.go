package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sources names where Load reads settings from. Later sources win: config
// file, then legacy file, then dotenv file, then the environment.
type Sources struct {
	ConfigFile string
	LegacyFile string
	EnvFile    string
	// LookupEnv reads the process environment; nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// DefaultSources reads the XDG config file and the working directory's
// directories.txt and .env.
func DefaultSources() Sources {
	return Sources{
		ConfigFile: Path(),
		LegacyFile: LegacyFile,
		EnvFile:    EnvFile,
		LookupEnv:  os.LookupEnv,
	}
}

// Load resolves the configuration from the default sources.
func Load() (*Config, error) {
	return LoadFrom(DefaultSources())
}

// LoadFrom resolves the configuration from src. Missing files are skipped.
func LoadFrom(src Sources) (*Config, error) {
	cfg := &Config{}

	if src.ConfigFile != "" {
		data, err := os.ReadFile(src.ConfigFile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", src.ConfigFile, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if src.LegacyFile != "" {
		values, err := readKeyValues(src.LegacyFile)
		if err != nil {
			return nil, err
		}
		cfg.set(func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		})
	}

	dotenv := map[string]string{}
	if src.EnvFile != "" {
		var err error
		if dotenv, err = readKeyValues(src.EnvFile); err != nil {
			return nil, err
		}
	}
	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.set(func(key string) (string, bool) {
		name := EnvPrefix + strings.ToUpper(key)
		if v, ok := lookup(name); ok {
			return v, true
		}
		v, ok := dotenv[name]
		return v, ok
	})

	cfg.expand()
	return cfg, nil
}

// readKeyValues reads a key=value file; a missing file is empty.
func readKeyValues(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

// Merge overrides c with every non-empty field of o.
func (c *Config) Merge(o Config) {
	src := o.fields()
	for i, f := range c.fields() {
		if *src[i].value != "" {
			*f.value = *src[i].value
		}
	}
	c.expand()
}

type field struct {
	key   string
	value *string
}

// fields pairs each config key with its field, in declaration order.
func (c *Config) fields() []field {
	return []field{
		{"markdown_dir", &c.MarkdownDir},
		{"pdf_dir", &c.PDFDir},
		{"template_dir", &c.TemplateDir},
		{"ranking_table", &c.RankingTable},
		{"mailto", &c.Mailto},
		{"fetch_command", &c.FetchCommand},
		{"data_dir", &c.DataDir},
		{"pdf_reader", &c.PDFReader},
	}
}

// set assigns every field whose key lookup finds with a non-empty value.
func (c *Config) set(lookup func(key string) (string, bool)) {
	for _, f := range c.fields() {
		if v, ok := lookup(f.key); ok && v != "" {
			*f.value = v
		}
	}
}

func (c *Config) expand() {
	for _, p := range []*string{&c.MarkdownDir, &c.PDFDir, &c.TemplateDir, &c.RankingTable, &c.DataDir} {
		*p = ExpandPath(*p)
	}
}

// Keys lists the config keys in declaration order.
func Keys() []string {
	var c Config
	var keys []string
	for _, f := range c.fields() {
		keys = append(keys, f.key)
	}
	return keys
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, bool) {
	for _, f := range c.fields() {
		if f.key == key {
			return *f.value, true
		}
	}
	return "", false
}

// Set assigns a config key.
func (c *Config) Set(key, value string) error {
	for _, f := range c.fields() {
		if f.key == key {
			*f.value = value
			c.expand()
			return nil
		}
	}
	return fmt.Errorf("unknown config key: %s (valid: %v)", key, Keys())
}

// Save writes c as YAML to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
