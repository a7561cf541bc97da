package cli

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/davecgh/go-spew/spew"

	"propmatch/internal/analyze"
	"propmatch/internal/config"
	"propmatch/internal/diagnostic"
	"propmatch/internal/report"
	"propmatch/internal/selection"
)

var (
	// ErrUnmatched is returned under --ensure when a property has no match.
	ErrUnmatched = errors.New("origin properties without match")
	// ErrNoPairs is returned when neither flags nor config name a type pair.
	ErrNoPairs = errors.New("no type pairs to match")
)

// Runner loads packages, matches type pairs and writes reports.
type Runner struct {
	out    io.Writer
	logger *log.Logger
	dump   *spew.ConfigState
}

// NewRunner creates a Runner writing results to out and logs to errOut.
func NewRunner(out, errOut io.Writer) *Runner {
	return &Runner{
		out:    out,
		logger: log.New(errOut, "propmatch: ", 0),
		dump: &spew.ConfigState{
			Indent:                  "  ",
			MaxDepth:                4,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

// Run executes a single run.
func (r *Runner) Run(cfg *Config) error {
	opts, err := loadConfig(cfg)
	if err != nil {
		return err
	}

	analyzer := analyze.NewAnalyzer(analyze.Options{Methods: opts.Methods})
	graph, err := analyzer.LoadPackages(cfg.Packages...)
	if err != nil {
		return err
	}
	r.debugf(cfg, "loaded %d packages, %d types", len(graph.Packages), len(graph.Types))

	if cfg.Select != "" {
		return r.runSelect(cfg, analyzer)
	}

	pairs := pairsFor(cfg, opts)
	if len(pairs) == 0 {
		return ErrNoPairs
	}

	var (
		reports   []*report.Report
		suggested []config.Pair
		diags     diagnostic.Diagnostics
	)
	for i := range pairs {
		m, err := r.match(cfg, analyzer, opts, &pairs[i])
		if err != nil {
			return err
		}

		rep := report.Build(m)
		diags.Merge(rep.Diagnostics)
		reports = append(reports, rep)
		suggested = append(suggested, report.SuggestPair(m))
	}

	switch {
	case cfg.Suggest:
		err = report.WriteConfig(r.out, report.SuggestConfig(suggested...))
	case cfg.Format == FormatYAML:
		err = report.WriteYAML(r.out, reports...)
	default:
		err = report.WriteText(r.out, reports...)
	}
	if err != nil {
		return err
	}

	if cfg.Ensure && diags.HasErrors() {
		return fmt.Errorf("%w: %w", ErrUnmatched, diags.Error())
	}

	return nil
}

func (r *Runner) match(
	cfg *Config,
	analyzer *analyze.Analyzer,
	opts *config.Config,
	pair *config.Pair,
) (*selection.MatchSelection, error) {
	origin, err := analyzer.Resolve(pair.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	target, err := analyzer.Resolve(pair.Target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	m := selection.Match(origin, target, analyze.Converter{}, opts.MatchOptions(pair))
	r.debugf(cfg, "matched %s -> %s", origin, target)
	r.debugDump(cfg, m.PropertyMatches())

	return m, nil
}

func (r *Runner) runSelect(cfg *Config, analyzer *analyze.Analyzer) error {
	t, err := analyzer.Resolve(cfg.SelectType)
	if err != nil {
		return err
	}

	sel, err := selection.SelectType(t, cfg.Select)
	if err != nil {
		return err
	}
	r.debugDump(cfg, sel.Properties())

	_, err = fmt.Fprintf(r.out, "%s %s (settable: %t)\n", sel, sel.PropertyType(), sel.CanSetValue())

	return err
}

// loadConfig reads the options file and applies flag overrides.
func loadConfig(cfg *Config) (*config.Config, error) {
	opts := config.Default()
	if cfg.ConfigPath != "" {
		var err error
		if opts, err = config.LoadFile(cfg.ConfigPath); err != nil {
			return nil, err
		}
	}

	opts.StrictConversions = opts.StrictConversions || cfg.Strict
	opts.Methods = opts.Methods || cfg.Methods

	return opts, nil
}

// pairsFor returns the pair named by flags, merged with the matching config
// pair if any, or every config pair when no flags are given.
func pairsFor(cfg *Config, opts *config.Config) []config.Pair {
	if cfg.Origin == "" {
		return opts.Pairs
	}

	for _, p := range opts.Pairs {
		if p.Origin == cfg.Origin && p.Target == cfg.Target {
			return []config.Pair{p}
		}
	}

	return []config.Pair{{Origin: cfg.Origin, Target: cfg.Target}}
}

func (r *Runner) debugf(cfg *Config, format string, args ...any) {
	if cfg.Debug {
		r.logger.Printf(format, args...)
	}
}

func (r *Runner) debugDump(cfg *Config, v any) {
	if cfg.Debug {
		r.dump.Fdump(r.logger.Writer(), v)
	}
}
