// Package cli parses propmatch command line arguments and runs a match.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ErrUsage is returned by ParseArgs for an invalid flag combination.
var ErrUsage = errors.New("usage")

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("propmatch", pflag.ContinueOnError)
	fs.StringArrayVarP(&cfg.Packages, "pkg", "p", nil, "package pattern to load (repeatable)")
	fs.StringVarP(&cfg.Origin, "origin", "o", "", "origin type as pkg.Name")
	fs.StringVarP(&cfg.Target, "target", "t", "", "target type as pkg.Name")
	fs.StringVarP(&cfg.ConfigPath, "config", "c", "", "YAML options file")
	fs.StringVarP(&cfg.Format, "format", "f", FormatText, "output format: text or yaml")
	fs.StringVar(&cfg.Select, "select", "", "resolve a property path against --type instead of matching")
	fs.StringVar(&cfg.SelectType, "type", "", "type for --select as pkg.Name")
	fs.BoolVar(&cfg.Strict, "strict", false, "disallow explicit conversions")
	fs.BoolVar(&cfg.Methods, "methods", false, "fold getter and setter methods into properties")
	fs.BoolVar(&cfg.Debug, "debug", false, "dump descriptors and matches to stderr")
	fs.BoolVar(&cfg.Ensure, "ensure", false, "fail when an origin property has no match")
	fs.BoolVar(&cfg.Suggest, "suggest", false, "print a config file ignoring every missing property")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	cfg.Packages = splitPatterns(cfg.Packages)
	if len(cfg.Packages) == 0 {
		return nil, fmt.Errorf("%w: --pkg is required", ErrUsage)
	}
	if cfg.Format != FormatText && cfg.Format != FormatYAML {
		return nil, fmt.Errorf("%w: --format must be %s or %s, got %q", ErrUsage, FormatText, FormatYAML, cfg.Format)
	}
	if (cfg.Select == "") != (cfg.SelectType == "") {
		return nil, fmt.Errorf("%w: --select and --type go together", ErrUsage)
	}
	if (cfg.Origin == "") != (cfg.Target == "") {
		return nil, fmt.Errorf("%w: --origin and --target go together", ErrUsage)
	}
	if cfg.Select == "" && cfg.Origin == "" && cfg.ConfigPath == "" {
		return nil, fmt.Errorf("%w: --origin and --target are required unless --config lists pairs", ErrUsage)
	}

	return cfg, nil
}

// splitPatterns accepts both repeated flags and comma-separated lists.
func splitPatterns(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		for _, p := range strings.Split(r, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}

	return out
}
