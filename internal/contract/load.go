package contract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrEmptyContract is returned when a contract file has no content.
var ErrEmptyContract = errors.New("contract definition is empty")

// LoadError records a contract file that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading contract %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// structValidator checks decoded contracts. It reports field names using
// their YAML keys so messages line up with what authors wrote.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Load reads and parses the contract at path. The returned contract has
// SourcePath set to the absolute form of path.
func Load(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contract: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Parse(data, abs)
}

// Parse decodes a contract definition and validates its structure.
// Whitespace-only input returns ErrEmptyContract.
func Parse(data []byte, sourcePath string) (*Contract, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyContract
	}

	var c Contract
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := Check(&c); err != nil {
		return nil, err
	}

	c.SourcePath = sourcePath
	return &c, nil
}

// Check validates the structure of a decoded contract.
func Check(c *Contract) error {
	if c == nil {
		return errors.New("contract is nil")
	}
	err := structValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating contract: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("invalid contract: %s", strings.Join(msgs, "; "))
}

// describeFieldError turns a validator error into an author-facing message.
func describeFieldError(fe validator.FieldError) string {
	// Drop the root type name: "Contract.target.patterns" -> "target.patterns".
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q check", field, fe.Tag())
	}
}
