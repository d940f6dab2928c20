package cardform

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Same loose shape check as the browser form: something@something.something.
var looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

var experiencePath = regexp.MustCompile(`^experience\[(\d+)\]\.(\w+)$`)

// messages maps "<field>.<tag>" to the inline error shown next to the field.
var messages = map[string]string{
	"fullName.required":    "Full name is required",
	"jobTitle.required":    "Job title is required",
	"email.required":       "Email is required",
	"email.looseemail":     "Please enter a valid email",
	"companyName.required": "Company name is required",
}

// ValidationError carries inline form errors keyed by field. Experience
// fields use keys of the form experience_{i}_{field}.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Errors[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || looseEmail.MatchString(value)
	}); err != nil {
		panic(fmt.Sprintf("register looseemail rule: %v", err))
	}

	return v
}

// fieldKey turns a validator namespace such as Form.experience[1].jobTitle
// into the form key experience_1_jobTitle.
func fieldKey(namespace string) (key, field string) {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	if m := experiencePath.FindStringSubmatch(namespace); m != nil {
		return fmt.Sprintf("experience_%s_%s", m[1], m[2]), m[2]
	}
	return namespace, namespace
}

func toValidationError(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Errors: make(map[string]string, len(errs))}
	for _, fe := range errs {
		key, field := fieldKey(fe.Namespace())
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
		}
		out.Errors[key] = msg
	}
	return out
}
