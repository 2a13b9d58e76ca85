package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. It is safe for concurrent use.
var validate = validator.New()

// ValidationError describes one or more violated input constraints.
// It is surfaced to clients as a 400 response with the detail list.
type ValidationError struct {
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
}

// searchParams is the shape of the /products/search query parameters.
type searchParams struct {
	Query string `validate:"required,min=3"`
}

// categoryParams is the shape of the /products/category path parameters.
type categoryParams struct {
	Category string `validate:"required,min=3"`
}

// ValidateSearchQuery checks the search query parameter.
// The query must be present and at least 3 characters long.
func ValidateSearchQuery(query string) error {
	if err := validate.Struct(searchParams{Query: query}); err != nil {
		return newValidationError("Invalid search query", err)
	}
	return nil
}

// ValidateCategory checks the category path parameter.
// The category must be present and at least 3 characters long.
func ValidateCategory(category string) error {
	if err := validate.Struct(categoryParams{Category: category}); err != nil {
		return newValidationError("Invalid category", err)
	}
	return nil
}

// ValidateProduct checks an upstream wire record against the schema.
// Malformed records are rejected before they can enter the cache, so a
// partial upstream payload never poisons cached results.
func ValidateProduct(r ProductRecord) error {
	if err := validate.Struct(r); err != nil {
		return newValidationError("Invalid product record", err)
	}
	return nil
}

// newValidationError translates validator field errors into a detail list.
func newValidationError(message string, err error) *ValidationError {
	verr := &ValidationError{Message: message}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.Details = []string{err.Error()}
		return verr
	}

	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			verr.Details = append(verr.Details, fmt.Sprintf("%s is required", field))
		case "min":
			verr.Details = append(verr.Details, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
		case "gte":
			verr.Details = append(verr.Details, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			verr.Details = append(verr.Details, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}

	return verr
}
