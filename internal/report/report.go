package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"propmatch/internal/config"
	"propmatch/internal/diagnostic"
	"propmatch/internal/selection"
)

// Property statuses.
const (
	StatusMatched       = "matched"
	StatusMissing       = "missing"
	StatusNotAssignable = "not_assignable"
)

// Report is the rendered result of one match.
type Report struct {
	Origin      string                 `yaml:"origin"`
	Target      string                 `yaml:"target"`
	Properties  []Property             `yaml:"properties"`
	Nested      []Nested               `yaml:"nested,omitempty"`
	Diagnostics diagnostic.Diagnostics `yaml:"diagnostics,omitempty"`
}

// Property is one origin property and where it goes.
type Property struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Target     string `yaml:"target,omitempty"`
	TargetType string `yaml:"target_type,omitempty"`
	Assign     string `yaml:"assign,omitempty"`
	Status     string `yaml:"status"`
}

// Nested is an intermediate object of a decomposed target path.
type Nested struct {
	Path   string `yaml:"path"`
	Type   string `yaml:"type"`
	Assign string `yaml:"assign,omitempty"`
}

// Build renders m.
func Build(m *selection.MatchSelection) *Report {
	r := &Report{
		Origin:      m.Origin().QualifiedName(),
		Target:      m.Target().QualifiedName(),
		Diagnostics: diagnostic.FromMatch(m),
	}

	for _, pm := range m.PropertyMatches() {
		p := Property{
			Name:   pm.Origin.Name,
			Type:   pm.Origin.Type.String(),
			Status: StatusMatched,
		}

		switch {
		case pm.IsMissing():
			p.Status = StatusMissing
		case !pm.CanAssign():
			p.Status = StatusNotAssignable
		}
		if !pm.IsMissing() {
			p.Target = pm.Target.String()
			p.TargetType = pm.Target.PropertyType().String()
			p.Assign = DescribeAssign(pm.Assign())
		}

		r.Properties = append(r.Properties, p)
	}

	for _, n := range m.NestedAssignments() {
		r.Nested = append(r.Nested, Nested{
			Path:   n.Path.String(),
			Type:   n.Path.PropertyType().String(),
			Assign: DescribeAssign(n.Assign),
		})
	}

	return r
}

// DescribeAssign renders an assignment as a chain of strategies, e.g.
// "nullable_unwrap(wrap) > new_instance{2}". Nil renders as "".
func DescribeAssign(a *selection.AssignDescriptor) string {
	var sb strings.Builder
	describeAssign(&sb, a, map[*selection.AssignDescriptor]bool{})

	return sb.String()
}

func describeAssign(sb *strings.Builder, a *selection.AssignDescriptor, seen map[*selection.AssignDescriptor]bool) {
	if a == nil {
		return
	}
	if seen[a] {
		sb.WriteString("...")
		return
	}
	seen[a] = true

	sb.WriteString(a.Type.String())

	switch a.Type {
	case selection.AssignNullableUnwrap:
		sb.WriteString("(" + a.Nullable.String() + ") > ")
		describeAssign(sb, a.Elem, seen)
	case selection.AssignEnumerableProjection:
		sb.WriteString(" > ")
		describeAssign(sb, a.Elem, seen)
	case selection.AssignNewInstance:
		n := 0
		if a.InnerSelection != nil {
			n = len(a.InnerSelection.PropertyMatches())
		}
		sb.WriteString("{" + strconv.Itoa(n) + "}")
	}
}

// WriteYAML writes the reports as a YAML sequence.
func WriteYAML(w io.Writer, reports ...*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return enc.Close()
}

// WriteText writes one table per report followed by its diagnostics.
func WriteText(w io.Writer, reports ...*Report) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeText(w, r); err != nil {
			return err
		}
	}

	return nil
}

func writeText(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintf(w, "%s -> %s\n", r.Origin, r.Target); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROPERTY\tTYPE\tTARGET\tTARGET TYPE\tASSIGN\tSTATUS")
	for _, p := range r.Properties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Type, orDash(p.Target), orDash(p.TargetType), orDash(p.Assign), p.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Nested) > 0 {
		if _, err := fmt.Fprintln(w, "nested:"); err != nil {
			return err
		}
		for _, n := range r.Nested {
			if _, err := fmt.Fprintf(w, "  %s %s: %s\n", n.Path, n.Type, orDash(n.Assign)); err != nil {
				return err
			}
		}
	}

	for _, d := range r.Diagnostics.All() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", d.Severity, d.String()); err != nil {
			return err
		}
	}

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

// SuggestPair returns a config pair for m that ignores every missing property,
// a starting point for an options file.
func SuggestPair(m *selection.MatchSelection) config.Pair {
	p := config.Pair{
		Origin: m.Origin().String(),
		Target: m.Target().String(),
	}

	missing, _ := m.HasMissingProperties()
	for _, prop := range missing {
		p.Ignore = append(p.Ignore, prop.Name)
	}

	return p
}

// SuggestConfig wraps pairs into a config file.
func SuggestConfig(pairs ...config.Pair) *config.Config {
	c := config.Default()
	c.Pairs = pairs

	return c
}

// WriteConfig writes c as YAML.
func WriteConfig(w io.Writer, c *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return enc.Close()
}
