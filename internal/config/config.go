package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"propmatch/internal/descriptor"
	"propmatch/internal/selection"
)

// CurrentVersion is the only supported file version.
const CurrentVersion = "1"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of an options file.
type Config struct {
	Version           string            `yaml:"version"`
	MaxDepth          int               `yaml:"max_depth,omitempty"`
	StrictConversions bool              `yaml:"strict_conversions,omitempty"`
	Methods           bool              `yaml:"methods,omitempty"`
	Tag               string            `yaml:"tag,omitempty"`
	Aliases           map[string]string `yaml:"aliases,omitempty"`
	Ignore            []string          `yaml:"ignore,omitempty"`
	Pairs             []Pair            `yaml:"pairs,omitempty"`
}

// Pair names an origin and a target type to match, as "pkg.Name".
// Aliases and Ignore add to the file-level settings.
type Pair struct {
	Origin  string            `yaml:"origin"`
	Target  string            `yaml:"target"`
	Aliases map[string]string `yaml:"aliases,omitempty"`
	Ignore  []string          `yaml:"ignore,omitempty"`
}

// LoadFile loads and parses a YAML options file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = selection.DefaultMaxDepth
	}
}

// Validate checks the version, the depth bound and the pairs.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported version %q", c.Version))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	for i, p := range c.Pairs {
		if p.Origin == "" || p.Target == "" {
			errs = append(errs, fmt.Errorf("pairs[%d]: origin and target are required", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// MatchOptions builds the options for a match. pair may be nil.
func (c *Config) MatchOptions(pair *Pair) *selection.MatchOptions {
	opts := selection.DefaultOptions()
	opts.MaxDepth = c.MaxDepth
	opts.StrictConversions = c.StrictConversions

	aliases := maps.Clone(c.Aliases)
	ignore := append([]string(nil), c.Ignore...)
	if pair != nil {
		if aliases == nil && len(pair.Aliases) > 0 {
			aliases = make(map[string]string, len(pair.Aliases))
		}
		maps.Copy(aliases, pair.Aliases)
		ignore = append(ignore, pair.Ignore...)
	}

	if c.Tag != "" {
		opts.NameResolvers = append(opts.NameResolvers, selection.TagNameResolver{Key: c.Tag})
	}
	if len(aliases) > 0 {
		opts.NameResolvers = append(opts.NameResolvers, selection.AliasResolver(aliases))
	}
	if len(ignore) > 0 {
		opts.OriginRetriever = IgnoreRetriever(opts.OriginRetriever, ignore...)
	}

	return opts
}

// IgnoreRetriever wraps inner and drops the properties with the given names.
func IgnoreRetriever(inner selection.PropertiesRetriever, names ...string) selection.PropertiesRetriever {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}

	return selection.RetrieverFunc(func(t *descriptor.Type) []*descriptor.Property {
		all := inner.Properties(t)
		out := make([]*descriptor.Property, 0, len(all))
		for _, p := range all {
			if _, ok := skip[p.Name]; !ok {
				out = append(out, p)
			}
		}

		return out
	})
}
