package directory

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"relman/api"
)

// ErrInvalidPerson matches every PersonForm that cannot be submitted.
var ErrInvalidPerson = errors.New("invalid person")

// PersonForm holds the raw text of the "add person" form.
type PersonForm struct {
	Name      string
	Age       string
	City      string
	Interests string
}

// FieldError explains why one form field was rejected.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Is(target error) bool { return target == ErrInvalidPerson }

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Parse turns the form into a create request. Age must be a whole number;
// interests are comma separated and blank entries are dropped.
func (f PersonForm) Parse() (api.NewPerson, error) {
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		return api.NewPerson{}, &FieldError{Field: "idade", Tag: "number", Message: "Age must be a whole number."}
	}

	p := api.NewPerson{
		Name:      strings.TrimSpace(f.Name),
		Age:       age,
		City:      strings.TrimSpace(f.City),
		Interests: SplitInterests(f.Interests),
	}
	if err := validatorInstance().Struct(p); err != nil {
		return api.NewPerson{}, convertValidationError(err)
	}
	return p, nil
}

// SplitInterests splits a comma separated list. It never returns nil.
func SplitInterests(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPerson, err)
	}

	fe := ves[0]
	field := fe.Field()
	msg := fmt.Sprintf("%s failed validation for tag '%s'.", field, fe.Tag())
	switch field {
	case "nome":
		msg = "Name is required."
	case "idade":
		msg = "Age must be between 0 and 150."
	}
	return &FieldError{Field: field, Tag: fe.Tag(), Message: msg}
}
