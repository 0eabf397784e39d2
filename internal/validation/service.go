package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/ariel-frischer/contracts/internal/contract"
	"github.com/ariel-frischer/contracts/internal/document"
	"github.com/ariel-frischer/contracts/internal/matcher"
	"golang.org/x/sync/errgroup"
)

// ErrNilContract is returned when a caller passes a nil contract.
var ErrNilContract = errors.New("contract is nil")

// Service runs validators against files and aggregates their violations.
// A Service holds no per-run state and is safe for concurrent use.
type Service struct {
	validators   []Validator
	custom       bool
	matchTimeout time.Duration
	concurrency  int
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithValidators replaces the default validator set. Validators run in the
// order given.
func WithValidators(validators ...Validator) ServiceOption {
	return func(s *Service) {
		s.validators = validators
		s.custom = true
	}
}

// WithConcurrency bounds how many files ValidateFiles reads and validates
// at once. Values below 1 are ignored.
func WithConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithMatchTimeout sets the per-match regex timeout of the default
// validators. Validators passed via WithValidators keep their own
// settings, whatever the option order.
func WithMatchTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		s.matchTimeout = timeout
	}
}

// WithServiceLogger sets the logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service running the naming validator followed by
// the schema validator.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		concurrency: runtime.NumCPU(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.custom {
		s.validators = []Validator{
			&NamingValidator{MatchTimeout: s.matchTimeout},
			&SchemaValidator{MatchTimeout: s.matchTimeout},
		}
	}
	return s
}

// Validate checks content against c. Violations from each validator are
// concatenated in validator order: naming first, then schema.
func (s *Service) Validate(filePath, content string, c *contract.Contract) (*Result, error) {
	if c == nil {
		return nil, ErrNilContract
	}

	doc := document.Parse(filePath, content)
	result := &Result{
		FilePath: filePath,
		Contract: c.Identity(),
	}
	for _, v := range s.validators {
		result.Violations = append(result.Violations, v.Validate(doc, c)...)
	}
	return result, nil
}

// ValidateWithContracts selects the first contract in contracts whose
// target matches filePath (relative to root) and validates against it.
// When none matches the result holds a single contract-not-found warning.
func (s *Service) ValidateWithContracts(filePath, content string, contracts []*contract.Contract, root string) *Result {
	c := matcher.FindContract(filePath, contracts, root)
	if c == nil {
		return &Result{
			FilePath: filePath,
			Violations: []Violation{{
				Code:     CodeContractNotFound,
				Message:  "No contract matched this file; skipping schema validation.",
				Severity: SeverityWarning,
				FilePath: filePath,
			}},
		}
	}

	// c is non-nil, so Validate cannot fail.
	result, _ := s.Validate(filePath, content, c)
	return result
}

// ValidateFile reads filePath and validates it against the matching
// contract in contracts.
func (s *Service) ValidateFile(ctx context.Context, filePath string, contracts []*contract.Contract, root string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	return s.ValidateWithContracts(filePath, string(data), contracts, root), nil
}

// ValidateFiles validates paths with a bounded pool of workers. A file
// that cannot be read yields a result with a file-unreadable error rather
// than aborting the batch. Results are returned sorted by path. The only
// error returned is the context's.
func (s *Service) ValidateFiles(ctx context.Context, paths []string, contracts []*contract.Contract, root string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.ValidateFile(ctx, path, contracts, root)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("failed to read file", slog.String("path", path), slog.String("error", err.Error()))
				result = &Result{
					FilePath: path,
					Violations: []Violation{{
						Code:     CodeFileUnreadable,
						Message:  fmt.Sprintf("File could not be read: %v.", err),
						Severity: SeverityError,
						FilePath: path,
					}},
				}
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return matcher.PathLess(results[i].FilePath, results[j].FilePath)
	})
	return results, nil
}
