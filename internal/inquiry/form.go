package inquiry

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is the contact form as submitted.
type Form struct {
	Name          string `json:"name" validate:"required,singleline"`
	ContactNumber string `json:"contactNumber" validate:"required,phone10"`
	Email         string `json:"email" validate:"required,email"`
	Budget        string `json:"budget" validate:"required,budget"`
	Message       string `json:"message" validate:"max=2000"`
}

// ValidationErrors maps a form field to the message shown beside it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+v[f])
	}
	return "invalid inquiry: " + strings.Join(msgs, "; ")
}

var messages = map[string]string{
	"name.required":          "Name is required",
	"name.singleline":        "Name must be a single line",
	"contactNumber.required": "Contact number is required",
	"contactNumber.phone10":  "Please enter a valid 10-digit phone number",
	"email.required":         "Email is required",
	"email.email":            "Please enter a valid email address",
	"budget.required":        "Please select a budget range",
	"budget.budget":          "Please select a budget range",
	"message.max":            "Message is too long",
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "budget", func(fl validator.FieldLevel) bool {
		return slices.Contains(Budgets, fl.Field().String())
	})
	mustRegister(v, "singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Normalize trims surrounding whitespace from every field.
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	f.Email = strings.TrimSpace(f.Email)
	f.Budget = strings.TrimSpace(f.Budget)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate normalizes the form and returns ValidationErrors, or nil.
func (f *Form) Validate() error {
	f.Normalize()

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := ValidationErrors{}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out[field] = msg
	}
	return out
}
