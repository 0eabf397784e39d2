// Package document extracts heading structure from markdown-like text.
// Only heading lines and raw line content are modelled; inline formatting,
// code fences, and tables are not interpreted.
package document

import (
	"regexp"
	"strings"
)

// headingPattern matches an ATX heading: one or more '#' followed by
// whitespace and the heading text.
var headingPattern = regexp.MustCompile(`^(#+)\s+(.*)$`)

// Section is a heading-delimited span of lines. Lines are 0-based and
// inclusive. Sections are flat: Level is an attribute, not a parent link.
type Section struct {
	Name      string
	Level     int
	StartLine int
	EndLine   int
}

// Document is a parsed document: its raw lines and heading sections.
type Document struct {
	Path     string
	Lines    []string
	Sections []Section
}

// Parse splits content into lines and extracts its sections.
func Parse(path, content string) *Document {
	lines := SplitLines(content)
	return &Document{
		Path:     path,
		Lines:    lines,
		Sections: ParseSections(lines),
	}
}

// SplitLines splits content on "\r\n" or "\n". A trailing newline yields a
// trailing empty line, so the result always has separators+1 entries.
func SplitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

// ParseSections returns the sections of lines in document order. Each
// section runs from its heading to the line before the next heading of any
// level, or to the last line. Repeated headings are kept as distinct
// sections.
func ParseSections(lines []string) []Section {
	var sections []Section
	for i, line := range lines {
		m := headingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if n := len(sections); n > 0 {
			sections[n-1].EndLine = i - 1
		}
		sections = append(sections, Section{
			Name:      headingName(m[2]),
			Level:     len(m[1]),
			StartLine: i,
			EndLine:   len(lines) - 1,
		})
	}
	return sections
}

// headingName trims the heading text and strips a closing '#' sequence.
func headingName(text string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), "#"))
}

// SectionsNamed returns every section whose name equals name, ignoring
// case, at any level.
func (d *Document) SectionsNamed(name string) []Section {
	var found []Section
	for _, s := range d.Sections {
		if strings.EqualFold(s.Name, name) {
			found = append(found, s)
		}
	}
	return found
}

// HasSection reports whether any section has the given name (ignoring
// case) at exactly level.
func (d *Document) HasSection(name string, level int) bool {
	for _, s := range d.Sections {
		if s.Level == level && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

// SectionLines returns the lines spanned by s, clamped to the document.
func (d *Document) SectionLines(s Section) []string {
	start, end := s.StartLine, s.EndLine
	if start < 0 {
		start = 0
	}
	if end >= len(d.Lines) {
		end = len(d.Lines) - 1
	}
	if start > end {
		return nil
	}
	return d.Lines[start : end+1]
}
