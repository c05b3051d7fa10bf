package middleware

import (
	"quiz-prep/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedAttemptIDKey holds the checked :id path parameter in fiber.Ctx locals.
const ValidatedAttemptIDKey = "validated_attempt_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateAttemptID validates the :id path parameter of attempt routes
func (vm *ValidationMiddleware) ValidateAttemptID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		attemptID := c.Params("id")
		if errs := vm.validator.ValidateID("attempt_id", attemptID); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals(ValidatedAttemptIDKey, attemptID)
		return c.Next()
	}
}
