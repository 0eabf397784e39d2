package validation

// Summary aggregates violation counts across a validation run.
type Summary struct {
	Files    int
	Clean    int // files with no violations at all
	Errors   int
	Warnings int
	Infos    int
}

// Summarize counts violations across results.
func Summarize(results []*Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if len(r.Violations) == 0 {
			s.Clean++
		}
		s.Errors += r.Count(SeverityError)
		s.Warnings += r.Count(SeverityWarning)
		s.Infos += r.Count(SeverityInfo)
	}
	return s
}

// Failed applies the pass/fail policy: any error fails the run, and in
// strict mode any warning fails it too. Info never fails a run.
func (s Summary) Failed(strict bool) bool {
	return s.Errors > 0 || (strict && s.Warnings > 0)
}
