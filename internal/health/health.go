// Package health runs pre-flight checks on a contracts setup: the
// configuration loads, the configured contract roots exist, and every
// discovered contract loads with valid globs and regular expressions.
package health

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ariel-frischer/contracts/internal/config"
	"github.com/ariel-frischer/contracts/internal/contract"
	"github.com/ariel-frischer/contracts/internal/matcher"
	"github.com/ariel-frischer/contracts/internal/pattern"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed {
		r.Passed = false
	}
}

// Options selects what RunHealthChecks inspects.
type Options struct {
	// ConfigPath is the project config file.
	ConfigPath string
	// SearchRoot is discovered after the configured contract roots.
	SearchRoot string
}

// RunHealthChecks runs all health checks and returns a report. Contract
// checks are skipped when the configuration does not load.
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}

	cfg, configCheck := CheckConfig(opts.ConfigPath)
	report.add(configCheck)
	if cfg == nil {
		return report
	}

	for _, root := range cfg.ContractRoots {
		report.add(CheckContractRoot(root))
	}

	roots := append(append([]string{}, cfg.ContractRoots...), opts.SearchRoot)
	discoverer := contract.NewDiscoverer(contract.WithSuffix(cfg.ContractSuffix))
	found, discoveryCheck := CheckDiscovery(ctx, discoverer, roots)
	report.add(discoveryCheck)
	if found == nil {
		return report
	}

	for _, c := range found.Contracts {
		report.add(CheckContractRules(c, cfg.RegexTimeout()))
	}
	return report
}

// CheckConfig loads the configuration. The returned config is nil when
// the check fails.
func CheckConfig(path string) (*config.Configuration, CheckResult) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: err.Error(),
		}
	}
	return cfg, CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: "Configuration loaded",
	}
}

// CheckContractRoot checks that a configured contract root is a directory.
func CheckContractRoot(root string) CheckResult {
	name := "Contract root " + root
	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return CheckResult{Name: name, Passed: false, Message: "contract root does not exist: " + root}
	case err != nil:
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	case !info.IsDir():
		return CheckResult{Name: name, Passed: false, Message: "contract root is not a directory: " + root}
	}
	return CheckResult{Name: name, Passed: true, Message: "Contract root found"}
}

// CheckDiscovery discovers contracts under roots. It fails when nothing is
// found or any definition could not be loaded. The discovery is returned
// whenever it ran, so rule checks still cover the loadable contracts.
func CheckDiscovery(ctx context.Context, d *contract.Discoverer, roots []string) (*contract.Discovery, CheckResult) {
	found, err := d.DiscoverAndMerge(ctx, roots)
	if err != nil {
		return nil, CheckResult{Name: "Contracts", Passed: false, Message: err.Error()}
	}

	if len(found.Skipped) > 0 {
		msgs := make([]string, 0, len(found.Skipped))
		for _, s := range found.Skipped {
			msgs = append(msgs, s.Error())
		}
		return found, CheckResult{
			Name:    "Contracts",
			Passed:  false,
			Message: fmt.Sprintf("%d contract(s) failed to load: %s", len(found.Skipped), strings.Join(msgs, "; ")),
		}
	}
	if len(found.Contracts) == 0 {
		return found, CheckResult{
			Name:    "Contracts",
			Passed:  false,
			Message: fmt.Sprintf("no contracts (*%s) found under %s", d.Suffix(), strings.Join(roots, ", ")),
		}
	}
	return found, CheckResult{
		Name:    "Contracts",
		Passed:  true,
		Message: fmt.Sprintf("%d contract(s) loaded", len(found.Contracts)),
	}
}

// CheckContractRules compiles every glob and regular expression in c.
// Validation reports bad patterns per file; this surfaces them once.
func CheckContractRules(c *contract.Contract, timeout time.Duration) CheckResult {
	name := "Contract " + c.Name()

	var problems []string
	if err := matcher.New(c).Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	for _, expr := range rulePatterns(c) {
		if _, err := pattern.Compile(expr, timeout); err != nil {
			problems = append(problems, fmt.Sprintf("invalid regular expression %q: %v", expr, err))
		}
	}

	if len(problems) > 0 {
		return CheckResult{Name: name, Passed: false, Message: strings.Join(problems, "; ")}
	}
	return CheckResult{Name: name, Passed: true, Message: "Patterns compile"}
}

// rulePatterns lists the regular expressions a contract's rules use.
func rulePatterns(c *contract.Contract) []string {
	var exprs []string
	if c.Naming != nil {
		exprs = append(exprs, c.Naming.Pattern)
	}
	if c.Archiving != nil {
		exprs = append(exprs, c.Archiving.Pattern)
	}
	if c.Schema != nil {
		for _, g := range c.Schema.RequiredFields {
			for _, f := range g.Fields {
				exprs = append(exprs, f.Pattern)
			}
		}
	}
	return exprs
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		} else {
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}
