package cli

// Config stores CLI options for a single run.
type Config struct {
	Packages    []string
	Origin      string
	Target      string
	ConfigPath  string
	Format      string
	Select      string
	SelectType  string
	Strict      bool
	Methods     bool
	Debug       bool
	Ensure      bool
	Suggest     bool
	ShowVersion bool
}

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)
