package validation

import (
	"errors"
	"realty/pkg/logger"
	"realty/pkg/model"
	"testing"
)

func TestValidator_Struct(t *testing.T) {
	v := New(logger.Discard())

	tests := []struct {
		name       string
		input      any
		wantFields []string
	}{
		{
			name:  "valid signup",
			input: &model.SignupRequest{Email: "c@example.com", Password: "longenough", Name: "Chandra"},
		},
		{
			name:       "signup missing fields",
			input:      &model.SignupRequest{Email: "not-an-email", Password: "short"},
			wantFields: []string{"email", "password", "name"},
		},
		{
			name:       "unknown role",
			input:      &model.RoleUpdate{Role: "owner"},
			wantFields: []string{"role"},
		},
		{
			name:  "known role",
			input: &model.RoleUpdate{Role: "agent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T (%v)", err, err)
			}
			details := verrs.Details()
			for _, f := range tt.wantFields {
				if _, ok := details[f]; !ok {
					t.Errorf("expected error for field %q, got %v", f, details)
				}
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{{Field: "date", Message: "date is required"}}
	want := "validation failed: 1 error(s): [date: date is required]"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should render as empty string")
	}
}
