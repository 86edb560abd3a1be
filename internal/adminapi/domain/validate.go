package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/rotator-admin/internal/validation"
)

// Validate checks the login form.
func (r *LoginRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
	return customValidation.WrapValidationError(err)
}

// Validate checks a config form. Generic configs need a target URL and method; LLM configs need a
// target base URL.
func (r *ProxyConfigInput) Validate() error {
	isGeneric := r.ConfigType == ConfigTypeGeneric
	isLLM := r.ConfigType == ConfigTypeLLM

	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 100),
		),
		validation.Field(&r.Slug, validation.Required, customValidation.Slug, validation.Length(1, 100)),
		validation.Field(&r.ConfigType, validation.Required, validation.In(ConfigTypeGeneric, ConfigTypeLLM)),
		validation.Field(&r.TargetURL,
			validation.When(isGeneric, validation.Required, customValidation.HTTPURL),
		),
		validation.Field(&r.Method,
			validation.When(isGeneric, validation.Required, customValidation.HTTPMethod),
		),
		validation.Field(&r.TargetBaseURL,
			validation.When(isLLM, validation.Required, customValidation.HTTPURL),
		),
		validation.Field(&r.APIKeyLocation,
			validation.In(KeyLocationHeader, KeyLocationQuery),
		),
		validation.Field(&r.APIKeyName, validation.NilOrNotEmpty, customValidation.NoWhitespace),
	)
	return customValidation.WrapValidationError(err)
}

// Validate checks the add-key form.
func (r *APIKeyInput) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.KeyValue,
			validation.Required,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
	)
	return customValidation.WrapValidationError(err)
}
