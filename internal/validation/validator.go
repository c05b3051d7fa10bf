package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/util"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("ulid", func(fl validator.FieldLevel) bool {
		return util.IsULID(fl.Field().String())
	})
	return &Validator{validate: v}
}

// fieldName reports a field by its json name, or by its snake_cased Go name.
func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return toSnake(f.Name)
}

func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Struct validates s by its `validate` tags and returns field errors, or nil.
func (v *Validator) Struct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ValidationErrors{domain.NewValidationError(err.Error())}
	}

	errs := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, toValidationError(fe))
	}
	return errs
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "oneof":
		ve := domain.NewInvalidFormatError(field, fe.Value())
		ve.Message = fmt.Sprintf("field must be one of [%s]", fe.Param())
		return ve
	case "gte", "min":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("field must be at least %s", fe.Param()),
			Value:   fe.Value(),
		}
	case "lte", "max":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("field must be at most %s", fe.Param()),
			Value:   fe.Value(),
		}
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

// ValidateQuizType checks the free-form quiz type tag.
func (v *Validator) ValidateQuizType(quizType string) domain.ValidationErrors {
	trimmed := strings.TrimSpace(quizType)
	if trimmed == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("quiz_type")}
	}
	if len(trimmed) > domain.MaxQuizTypeLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError("quiz_type", len(trimmed), 1, domain.MaxQuizTypeLength)}
	}
	return nil
}

// ValidateID checks a path or body identifier.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if !util.IsULID(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, id)}
	}
	return nil
}
