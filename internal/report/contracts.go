package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ariel-frischer/contracts/internal/contract"
	"gopkg.in/yaml.v3"
)

// Format selects how contracts are listed.
type Format string

const (
	FormatCompact Format = "compact"
	FormatTable   Format = "table"
	FormatYAML    Format = "yaml"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatCompact, FormatTable, FormatYAML}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: compact, table, yaml)", s)
}

// contractListing is the YAML shape of one listed contract.
type contractListing struct {
	Name        string   `yaml:"name"`
	Source      string   `yaml:"source"`
	Patterns    []string `yaml:"patterns"`
	Exclude     []string `yaml:"exclude,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Naming      string   `yaml:"naming,omitempty"`
	Archiving   string   `yaml:"archiving,omitempty"`
	Sections    []string `yaml:"sections,omitempty"`
	Fields      []string `yaml:"fields,omitempty"`
}

func newListing(c *contract.Contract, verbose bool) contractListing {
	l := contractListing{
		Name:     c.Name(),
		Source:   c.SourcePath,
		Patterns: c.Target.Patterns,
		Exclude:  c.Target.Exclude,
	}
	if c.Meta != nil {
		l.Description = c.Meta.Description
	}
	if !verbose {
		return l
	}

	if c.Naming != nil {
		l.Naming = c.Naming.Pattern
	}
	if c.Archiving != nil {
		l.Archiving = fmt.Sprintf("%s/ %s", c.Archiving.Directory, c.Archiving.Pattern)
	}
	if c.Schema != nil {
		for _, s := range c.Schema.RequiredSections {
			l.Sections = append(l.Sections, fmt.Sprintf("%s %s", strings.Repeat("#", s.Level), s.Name))
		}
		for _, g := range c.Schema.RequiredFields {
			for _, f := range g.Fields {
				l.Fields = append(l.Fields, fmt.Sprintf("%s.%s", g.Section, f.Name))
			}
		}
	}
	return l
}

// WriteContracts lists contracts in the given format. Verbose adds the
// naming, archiving and schema rules.
func WriteContracts(w io.Writer, contracts []*contract.Contract, format Format, verbose bool) error {
	listings := make([]contractListing, 0, len(contracts))
	for _, c := range contracts {
		listings = append(listings, newListing(c, verbose))
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listings); err != nil {
			return fmt.Errorf("encoding contracts: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(w, listings, verbose)
	case FormatCompact, "":
		writeCompact(w, listings, verbose)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeCompact(w io.Writer, listings []contractListing, verbose bool) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "No contracts found.")
		return
	}
	for _, l := range listings {
		fmt.Fprintf(w, "%s  %s\n", green(l.Name), strings.Join(l.Patterns, ", "))
		if l.Description != "" {
			fmt.Fprintf(w, "  %s\n", faint(l.Description))
		}
		if verbose {
			writeRules(w, l)
		}
	}
}

func writeRules(w io.Writer, l contractListing) {
	if len(l.Exclude) > 0 {
		fmt.Fprintf(w, "  exclude:   %s\n", strings.Join(l.Exclude, ", "))
	}
	if l.Naming != "" {
		fmt.Fprintf(w, "  naming:    %s\n", l.Naming)
	}
	if l.Archiving != "" {
		fmt.Fprintf(w, "  archiving: %s\n", l.Archiving)
	}
	for _, s := range l.Sections {
		fmt.Fprintf(w, "  section:   %s\n", s)
	}
	for _, f := range l.Fields {
		fmt.Fprintf(w, "  field:     %s\n", f)
	}
	fmt.Fprintf(w, "  source:    %s\n", faint(l.Source))
}

// maxPatternWidth bounds the PATTERNS column, in runes.
const maxPatternWidth = 38

func writeTable(w io.Writer, listings []contractListing, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATTERNS\tRULES")
	fmt.Fprintln(tw, "----\t--------\t-----")

	for _, l := range listings {
		patterns := truncate(strings.Join(l.Patterns, ", "), maxPatternWidth)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Name, patterns, ruleSummary(l, verbose))
	}
	return tw.Flush()
}

// truncate shortens s to at most limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func ruleSummary(l contractListing, verbose bool) string {
	if !verbose {
		return l.Description
	}
	var parts []string
	if l.Naming != "" {
		parts = append(parts, "naming")
	}
	if l.Archiving != "" {
		parts = append(parts, "archiving")
	}
	if n := len(l.Sections); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, "section", "sections")))
	}
	if n := len(l.Fields); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, "field", "fields")))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
