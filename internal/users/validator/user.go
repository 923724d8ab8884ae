package validator

import (
	"realty/pkg/logger"
	"realty/pkg/model"
	"realty/pkg/validation"
)

type UserValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validator: validation.New(log),
		logger:    log,
	}
}

func (v *UserValidator) ValidateSignup(req *model.SignupRequest) error {
	if err := v.validator.Struct(req); err != nil {
		v.logger.Warn("Signup validation failed", "email", req.Email, "error", err)
		return err
	}
	return nil
}

func (v *UserValidator) ValidateLogin(req *model.LoginRequest) error {
	return v.validator.Struct(req)
}

func (v *UserValidator) ValidateRoleUpdate(req *model.RoleUpdate) error {
	return v.validator.Struct(req)
}
