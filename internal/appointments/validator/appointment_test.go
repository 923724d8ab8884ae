package validator

import (
	"errors"
	"testing"

	"realty/internal/availability"
	"realty/pkg/logger"
	"realty/pkg/model"
	"realty/pkg/validation"
)

const propertyID = "652f1b2c9d3e4a5b6c7d8e9f"

func TestAppointmentValidator_ValidateRequest(t *testing.T) {
	v := NewAppointmentValidator(logger.Discard(), availability.NewEngine(availability.DefaultPolicy()))

	tests := []struct {
		name      string
		req       model.AppointmentRequest
		wantField string
	}{
		{
			name: "valid",
			req:  model.AppointmentRequest{PropertyID: propertyID, Date: "2026-10-20", Time: "09:00"},
		},
		{
			name:      "last label accepted, next rejected",
			req:       model.AppointmentRequest{PropertyID: propertyID, Date: "2026-10-20", Time: "18:00"},
			wantField: "time",
		},
		{
			name:      "sub hour granularity",
			req:       model.AppointmentRequest{PropertyID: propertyID, Date: "2026-10-20", Time: "09:30"},
			wantField: "time",
		},
		{
			name:      "malformed date",
			req:       model.AppointmentRequest{PropertyID: propertyID, Date: "20-10-2026", Time: "09:00"},
			wantField: "date",
		},
		{
			name:      "impossible date",
			req:       model.AppointmentRequest{PropertyID: propertyID, Date: "2026-02-30", Time: "09:00"},
			wantField: "date",
		},
		{
			name:      "missing property",
			req:       model.AppointmentRequest{Date: "2026-10-20", Time: "09:00"},
			wantField: "property_id",
		},
		{
			name:      "property not an object id",
			req:       model.AppointmentRequest{PropertyID: "villa-1", Date: "2026-10-20", Time: "09:00"},
			wantField: "property_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateRequest() unexpected error = %v", err)
				}
				return
			}

			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("ValidateRequest() error = %v, want ValidationErrors", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("errors %v missing field %q", verrs, tt.wantField)
			}
		})
	}
}

func TestAppointmentValidator_CustomHours(t *testing.T) {
	engine := availability.NewEngine(availability.Policy{DailyCap: 4, AgentCap: 2, FirstHour: 8, LastHour: 10})
	v := NewAppointmentValidator(logger.Discard(), engine)

	ok := model.AppointmentRequest{PropertyID: propertyID, Date: "2026-10-20", Time: "08:00"}
	if err := v.ValidateRequest(&ok); err != nil {
		t.Errorf("08:00 should be valid: %v", err)
	}
	late := model.AppointmentRequest{PropertyID: propertyID, Date: "2026-10-20", Time: "11:00"}
	if err := v.ValidateRequest(&late); err == nil {
		t.Error("11:00 should be outside the configured hours")
	}
}
