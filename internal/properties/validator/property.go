package validator

import (
	"realty/pkg/logger"
	"realty/pkg/model"
	"realty/pkg/validation"
)

type PropertyValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

func NewPropertyValidator(log *logger.Logger) *PropertyValidator {
	return &PropertyValidator{
		validator: validation.New(log),
		logger:    log,
	}
}

func (v *PropertyValidator) Validate(property *model.Property) error {
	if err := v.validator.Struct(property); err != nil {
		v.logger.Warn("Property validation failed", "title", property.Title, "error", err)
		return err
	}
	return nil
}

func (v *PropertyValidator) ValidateUpdate(update *model.PropertyUpdate) error {
	return v.validator.Struct(update)
}
