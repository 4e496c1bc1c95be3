package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/habitual/internal/models"
)

func strPtr(s string) *string { return &s }

func TestHabit_Defaults(t *testing.T) {
	got, err := New().Habit(models.HabitInput{Name: "  Read  ", Description: strPtr("   ")})
	if err != nil {
		t.Fatalf("Habit() error = %v", err)
	}
	if got.Name != "Read" {
		t.Errorf("Name = %q, want trimmed", got.Name)
	}
	if got.Description != nil {
		t.Errorf("Description = %q, want nil for blank", *got.Description)
	}
	if got.Color != "#3B82F6" || got.Category != "other" || got.FrequencyType != "daily" || got.TargetCount != 1 {
		t.Errorf("unexpected defaults: %+v", got)
	}
}

func TestHabit_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		in      models.HabitInput
		wantMsg string
	}{
		{"missing name", models.HabitInput{Name: "   "}, "Habit name is required"},
		{"short name", models.HabitInput{Name: "a"}, "name must be at least 2 characters"},
		{"long name", models.HabitInput{Name: strings.Repeat("x", 101)}, "name must be at most 100 characters"},
		{"long description", models.HabitInput{Name: "Read", Description: strPtr(strings.Repeat("x", 501))}, "description must be at most 500 characters"},
		{"bad color", models.HabitInput{Name: "Read", Color: "blue"}, "Color must be a valid hex color"},
		{"four digit color", models.HabitInput{Name: "Read", Color: "#abcd"}, "Color must be a valid hex color"},
		{"bad category", models.HabitInput{Name: "Read", Category: "chores"}, "category must be one of"},
		{"bad frequency", models.HabitInput{Name: "Read", FrequencyType: "monthly"}, "frequency_type must be one of"},
		{"target too high", models.HabitInput{Name: "Read", TargetCount: 11}, "target_count must be at most 10"},
		{"target negative", models.HabitInput{Name: "Read", TargetCount: -1}, "target_count must be at least 1"},
		{"weekday out of range", models.HabitInput{Name: "Read", FrequencyType: "custom", CustomSpecificDays: []int{1, 7}}, "must be at most 6"},
		{"empty custom", models.HabitInput{Name: "Read", FrequencyType: "custom"}, "Custom frequency requires an interval or specific days"},
		{"bad interval unit", models.HabitInput{Name: "Read", FrequencyType: "custom", CustomIntervalType: "months", CustomIntervalValue: 2}, "custom_interval_type must be one of"},
	}
	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Habit(tt.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			var issues Issues
			if !errors.As(err, &issues) {
				t.Fatalf("expected Issues, got %T: %v", err, err)
			}
			if !strings.Contains(issues.First(), tt.wantMsg) {
				t.Errorf("message = %q, want to contain %q", issues.First(), tt.wantMsg)
			}
		})
	}
}

func TestHabit_Custom(t *testing.T) {
	v := New()

	got, err := v.Habit(models.HabitInput{Name: "Gym", FrequencyType: "custom", CustomSpecificDays: []int{5, 1, 3, 1}})
	if err != nil {
		t.Fatalf("Habit() error = %v", err)
	}
	if want := []int{1, 3, 5}; len(got.CustomSpecificDays) != 3 || got.CustomSpecificDays[0] != 1 || got.CustomSpecificDays[2] != 5 {
		t.Errorf("CustomSpecificDays = %v, want %v", got.CustomSpecificDays, want)
	}

	got, err = v.Habit(models.HabitInput{Name: "Water plants", FrequencyType: "custom", CustomIntervalValue: 3})
	if err != nil {
		t.Fatalf("Habit() error = %v", err)
	}
	if got.CustomIntervalType != "days" {
		t.Errorf("CustomIntervalType = %q, want days", got.CustomIntervalType)
	}

	got, err = v.Habit(models.HabitInput{Name: "Read", FrequencyType: "daily", CustomIntervalType: "weeks", CustomIntervalValue: 2, CustomSpecificDays: []int{1}})
	if err != nil {
		t.Fatalf("Habit() error = %v", err)
	}
	if got.CustomIntervalType != "" || got.CustomIntervalValue != 0 || got.CustomSpecificDays != nil {
		t.Errorf("expected custom fields cleared for daily habit: %+v", got)
	}
}

func TestHabit_ShortColor(t *testing.T) {
	got, err := New().Habit(models.HabitInput{Name: "Read", Color: "#f0a"})
	if err != nil {
		t.Fatalf("Habit() error = %v", err)
	}
	if got.Color != "#ff00aa" {
		t.Errorf("Color = %q, want #ff00aa", got.Color)
	}
}

func TestSignup(t *testing.T) {
	v := New()

	got, err := v.Signup(models.SignupInput{Email: "  Ada@Example.COM ", Password: "secret1", ConfirmPassword: "secret1"})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("Email = %q, want normalized", got.Email)
	}

	tests := []struct {
		name    string
		in      models.SignupInput
		wantMsg string
	}{
		{"bad email", models.SignupInput{Email: "nope", Password: "secret1"}, "Invalid email address"},
		{"short password", models.SignupInput{Email: "a@b.co", Password: "12345"}, "password must be at least 6 characters"},
		{"mismatch", models.SignupInput{Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret2"}, "Passwords do not match"},
		{"short full name", models.SignupInput{Email: "a@b.co", Password: "secret1", FullName: strPtr(" A ")}, "fullName must be at least 2 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Signup(tt.in)
			var issues Issues
			if !errors.As(err, &issues) {
				t.Fatalf("expected Issues, got %v", err)
			}
			if !strings.Contains(issues.Error(), tt.wantMsg) {
				t.Errorf("message = %q, want to contain %q", issues.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	v := New()
	if _, err := v.Login(models.LoginInput{Email: "ADA@example.com", Password: "secret1"}); err != nil {
		t.Errorf("Login() error = %v", err)
	}
	if _, err := v.Login(models.LoginInput{Email: "ada@example.com"}); err == nil {
		t.Error("expected missing password to fail")
	}
}

func TestWeekdays(t *testing.T) {
	if Weekdays(nil) != nil {
		t.Error("expected nil for no days")
	}
	got := Weekdays([]int{0, 6})
	if len(got) != 2 || got[0].String() != "Sunday" || got[1].String() != "Saturday" {
		t.Errorf("Weekdays = %v", got)
	}
}
