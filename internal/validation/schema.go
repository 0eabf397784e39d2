package validation

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/contracts/internal/contract"
	"github.com/ariel-frischer/contracts/internal/document"
)

// SchemaValidator checks that a document has the required sections and
// that required fields appear inside them.
type SchemaValidator struct {
	// MatchTimeout bounds each regex match; zero uses the pattern default.
	MatchTimeout time.Duration
}

// Name returns the rule family name.
func (v *SchemaValidator) Name() string {
	return "schema"
}

// Validate checks doc against c.Schema. Contracts without a schema yield
// no violations.
//
// A section present at the wrong level is reported exactly like a missing
// section. Field groups whose section is absent are skipped so the missing
// section is not reported twice.
func (v *SchemaValidator) Validate(doc *document.Document, c *contract.Contract) []Violation {
	if c.Schema == nil {
		return nil
	}

	var violations []Violation

	for _, required := range c.Schema.RequiredSections {
		if doc.HasSection(required.Name, required.Level) {
			continue
		}
		violations = append(violations, Violation{
			Code:     CodeMissingSection,
			Message:  fmt.Sprintf("Missing required section '%s' at level %d.", required.Name, required.Level),
			Severity: SeverityError,
			FilePath: doc.Path,
		})
	}

	for _, group := range c.Schema.RequiredFields {
		sections := doc.SectionsNamed(group.Section)
		if len(sections) == 0 {
			continue
		}
		for _, field := range group.Fields {
			if bad := v.checkField(doc, sections, group.Section, field); bad != nil {
				violations = append(violations, *bad)
			}
		}
	}

	return violations
}

// checkField looks for a line matching field.Pattern in any of sections,
// in section order then line order.
func (v *SchemaValidator) checkField(doc *document.Document, sections []document.Section, sectionName string, field contract.RequiredField) *Violation {
	rule := fmt.Sprintf("field '%s'", field.Name)
	re, bad := compileRule(field.Pattern, rule, doc.Path, sectionName, v.MatchTimeout)
	if bad != nil {
		return bad
	}

	for _, section := range sections {
		for _, line := range doc.SectionLines(section) {
			ok, bad := matchRule(re, line, rule, doc.Path, sectionName)
			if bad != nil {
				return bad
			}
			if ok {
				return nil
			}
		}
	}

	return &Violation{
		Code:     CodeMissingField,
		Message:  fmt.Sprintf("Section '%s' is missing field '%s' matching pattern '%s'.", sectionName, field.Name, field.Pattern),
		Severity: SeverityError,
		FilePath: doc.Path,
		Line:     sections[0].StartLine + 1,
		Section:  sectionName,
	}
}
