package validator

import (
	"realty/pkg/logger"
	"realty/pkg/model"
	"realty/pkg/validation"
)

type PromotionValidator struct {
	validator *validation.Validator
}

func NewPromotionValidator(log *logger.Logger) *PromotionValidator {
	return &PromotionValidator{validator: validation.New(log)}
}

func (v *PromotionValidator) Validate(promotion *model.Promotion) error {
	return v.validator.Struct(promotion)
}

func (v *PromotionValidator) ValidateUpdate(update *model.PromotionUpdate) error {
	return v.validator.Struct(update)
}
