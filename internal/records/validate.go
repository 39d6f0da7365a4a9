package records

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"studentdb/internal/store"

	"github.com/go-playground/validator/v10"
)

// FileSuffix is appended to every name entered by the user.
const FileSuffix = ".txt"

// MaxNameLength is the longest name accepted before the suffix is added.
const MaxNameLength = 14

var (
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderRegex = regexp.MustCompile(`^[\w ]+$`)
)

type fileNameInput struct {
	Name string `validate:"required,max=14,alphanum_"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(alphaNumUnderTag, func(fl validator.FieldLevel) bool {
		return alphaNumUnderRegex.MatchString(fl.Field().String())
	})
	return v
}

// ValidAlphabet reports whether r may appear in a file name.
func ValidAlphabet(r rune) bool {
	return alphaNumUnderRegex.MatchString(string(r))
}

// FileName validates user input and returns the stored file name, with
// FileSuffix appended. Errors wrap store.ErrInvalidName.
func (m *Manager) FileName(input string) (string, error) {
	name := strings.TrimSpace(input)
	err := m.validate.Struct(fileNameInput{Name: name})
	if err == nil {
		return name + FileSuffix, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", fmt.Errorf("%w: %w", store.ErrInvalidName, err)
	}
	switch verrs[0].Tag() {
	case "required":
		return "", fmt.Errorf("%w: the file name cannot be empty", store.ErrInvalidName)
	case "max":
		return "", fmt.Errorf("%w: maximum name length is %d characters", store.ErrInvalidName, MaxNameLength)
	default:
		return "", fmt.Errorf("%w: only letters, digits, spaces and underscores are allowed", store.ErrInvalidName)
	}
}
