package handler

import (
	"quiz-prep/internal/domain"
	"quiz-prep/internal/middleware"
	"quiz-prep/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the JSON body into dst and runs its validate tags.
func parseBody(c *fiber.Ctx, v *validation.Validator, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	if errs := v.Struct(dst); len(errs) > 0 {
		return errs
	}
	return nil
}

func requireUserID(c *fiber.Ctx) (string, error) {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return "", domain.NewUnauthorizedError("user id not found in context")
	}
	return userID, nil
}

// attemptIDParam prefers the id checked by ValidateAttemptID.
func attemptIDParam(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.ValidatedAttemptIDKey).(string); ok {
		return id
	}
	return c.Params("id")
}
