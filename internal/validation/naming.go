package validation

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/contracts/internal/contract"
	"github.com/ariel-frischer/contracts/internal/document"
)

// NamingValidator checks a file's name against the contract's naming and
// archiving rules.
type NamingValidator struct {
	// MatchTimeout bounds each regex match; zero uses the pattern default.
	MatchTimeout time.Duration
}

// Name returns the rule family name.
func (v *NamingValidator) Name() string {
	return "naming"
}

// Validate checks doc.Path against c.Naming and c.Archiving.
//
// Archiving is a two-way consistency check: a file inside the archive
// directory must carry the archived name shape (error), and a file with the
// archived shape outside the archive directory is flagged as a warning,
// since it may be mid-move.
func (v *NamingValidator) Validate(doc *document.Document, c *contract.Contract) []Violation {
	var violations []Violation
	filePath := doc.Path
	fileName := baseName(filePath)

	if c.Naming != nil {
		re, bad := compileRule(c.Naming.Pattern, "naming rule", filePath, "", v.MatchTimeout)
		if bad != nil {
			violations = append(violations, *bad)
		} else if ok, bad := matchRule(re, fileName, "naming rule", filePath, ""); bad != nil {
			violations = append(violations, *bad)
		} else if !ok {
			violations = append(violations, Violation{
				Code:     CodeInvalidName,
				Message:  fmt.Sprintf("File name '%s' does not match naming pattern '%s'.", fileName, c.Naming.Pattern),
				Severity: SeverityError,
				FilePath: filePath,
			})
		}
	}

	if c.Archiving == nil {
		return violations
	}

	re, bad := compileRule(c.Archiving.Pattern, "archiving rule", filePath, "", v.MatchTimeout)
	if bad != nil {
		return append(violations, *bad)
	}

	inArchiveDir := hasPathSegment(filePath, c.Archiving.Directory)
	looksArchived, bad := matchRule(re, fileName, "archiving rule", filePath, "")
	if bad != nil {
		return append(violations, *bad)
	}

	switch {
	case inArchiveDir && !looksArchived:
		violations = append(violations, Violation{
			Code:     CodeInvalidArchiveName,
			Message:  fmt.Sprintf("Archived file '%s' must match pattern '%s'.", fileName, c.Archiving.Pattern),
			Severity: SeverityError,
			FilePath: filePath,
		})
	case looksArchived && !inArchiveDir:
		violations = append(violations, Violation{
			Code:     CodeArchiveDirectoryMismatch,
			Message:  fmt.Sprintf("File '%s' matches archive naming but is not inside '%s' directory.", fileName, c.Archiving.Directory),
			Severity: SeverityWarning,
			FilePath: filePath,
		})
	}

	return violations
}

// hasPathSegment reports whether any segment of path equals dir, ignoring
// case. Both separators are recognised regardless of platform.
func hasPathSegment(path, dir string) bool {
	if dir == "" {
		return false
	}
	for _, segment := range splitPath(path) {
		if strings.EqualFold(segment, dir) {
			return true
		}
	}
	return false
}

// baseName returns the last path element, recognising both separators.
func baseName(path string) string {
	segments := splitPath(path)
	if len(segments) == 0 {
		return filepath.Base(path)
	}
	return segments[len(segments)-1]
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}
