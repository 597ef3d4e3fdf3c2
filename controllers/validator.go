package controllers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateProductRequest defines the expected structure for creating a product
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	BasePrice   float64  `json:"basePrice" validate:"required,gt=0"`
	Currency    string   `json:"currency" validate:"required"`
	Images      []string `json:"img"`
	Slug        string   `json:"slug" validate:"required"`
}

// UpdateProductRequest carries optional fields; only set fields are merged.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	BasePrice   *float64  `json:"basePrice"`
	Currency    *string   `json:"currency"`
	Images      *[]string `json:"img"`
	Slug        *string   `json:"slug"`
}

// RequestValidator handles input validation for product payloads
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ValidateStruct runs the struct tags and returns a readable detail string.
func (rv *RequestValidator) ValidateStruct(s interface{}) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var details []string
	for _, fieldErr := range validationErrors {
		details = append(details, fmt.Sprintf("field '%s' failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(details, "; "))
}
