package validator

import (
	"realty/internal/availability"
	"realty/pkg/logger"
	"realty/pkg/model"
	"realty/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type AppointmentValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

// NewAppointmentValidator binds the slot_label tag to the engine's hourly labels.
func NewAppointmentValidator(log *logger.Logger, engine *availability.Engine) *AppointmentValidator {
	v := validation.New(log)
	v.MustRegister("slot_label", func(fl validator.FieldLevel) bool {
		return engine.IsLabel(fl.Field().String())
	})

	log.Info("Appointment validator initialized successfully")

	return &AppointmentValidator{
		validator: v,
		logger:    log,
	}
}

func (v *AppointmentValidator) ValidateRequest(req *model.AppointmentRequest) error {
	if err := v.validator.Struct(req); err != nil {
		v.logger.Warn("Appointment request validation failed",
			"property_id", req.PropertyID,
			"date", req.Date,
			"time", req.Time,
			"error", err,
		)
		return err
	}
	return nil
}

func (v *AppointmentValidator) Validate(appointment *model.Appointment) error {
	if err := v.validator.Struct(appointment); err != nil {
		v.logger.Warn("Appointment validation failed",
			"property_id", appointment.PropertyID,
			"date", appointment.Date,
			"time", appointment.Time,
			"error", err,
		)
		return err
	}
	return nil
}
