package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Issue is a single rejected field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues is returned when input fails validation.
type Issues []Issue

func (is Issues) Error() string {
	msgs := make([]string, len(is))
	for i, issue := range is {
		msgs[i] = issue.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the first issue's message, which is what clients are shown.
func (is Issues) First() string {
	if len(is) == 0 {
		return ""
	}
	return is[0].Message
}

// Validator checks and normalizes habit and account input.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with habitual's custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("habitcolor", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Habit trims and defaults a habit payload, then validates it. The returned
// input is what should be stored: color is expanded to #RRGGBB, custom fields
// are cleared unless the frequency is custom, and weekdays are sorted and deduplicated.
func (val *Validator) Habit(in models.HabitInput) (models.HabitInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
	if in.Color == "" {
		in.Color = constants.DefaultHabitColor
	}
	if in.Category == "" {
		in.Category = string(constants.CategoryOther)
	}
	if in.FrequencyType == "" {
		in.FrequencyType = string(constants.FrequencyDaily)
	}
	if in.TargetCount == 0 {
		in.TargetCount = constants.DefaultTargetCount
	}

	if in.Name == "" {
		return in, Issues{{Field: "name", Message: "Habit name is required"}}
	}
	if err := val.v.Struct(in); err != nil {
		return in, toIssues(err)
	}

	in.Color = expandColor(in.Color)
	if in.FrequencyType != string(constants.FrequencyCustom) {
		in.CustomIntervalType = ""
		in.CustomIntervalValue = 0
		in.CustomSpecificDays = nil
		return in, nil
	}

	if len(in.CustomSpecificDays) > 0 {
		days := slices.Clone(in.CustomSpecificDays)
		slices.Sort(days)
		in.CustomSpecificDays = slices.Compact(days)
		return in, nil
	}
	if in.CustomIntervalValue > 0 {
		if in.CustomIntervalType == "" {
			in.CustomIntervalType = string(constants.IntervalDays)
		}
		return in, nil
	}
	return in, Issues{{
		Field:   "frequency_type",
		Message: "Custom frequency requires an interval or specific days",
	}}
}

// Signup normalizes the email address and validates an account payload.
func (val *Validator) Signup(in models.SignupInput) (models.SignupInput, error) {
	in.Email = normalizeEmail(in.Email)
	if in.FullName != nil {
		n := strings.TrimSpace(*in.FullName)
		if n == "" {
			in.FullName = nil
		} else {
			in.FullName = &n
		}
	}
	if err := val.v.Struct(in); err != nil {
		return in, toIssues(err)
	}
	return in, nil
}

// Login normalizes the email address and validates a sign-in payload.
func (val *Validator) Login(in models.LoginInput) (models.LoginInput, error) {
	in.Email = normalizeEmail(in.Email)
	if err := val.v.Struct(in); err != nil {
		return in, toIssues(err)
	}
	return in, nil
}

// Weekdays converts validated day numbers to time.Weekday values.
func Weekdays(days []int) []time.Weekday {
	if len(days) == 0 {
		return nil
	}
	out := make([]time.Weekday, len(days))
	for i, d := range days {
		out[i] = time.Weekday(d)
	}
	return out
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func expandColor(c string) string {
	if len(c) != 4 {
		return c
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, r := range c[1:] {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

func toIssues(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	issues := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Field: fe.Field(), Message: message(fe)})
	}
	return issues
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "habitcolor":
		return "Color must be a valid hex color"
	case "eqfield":
		return "Passwords do not match"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
