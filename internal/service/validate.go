package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"daily-diet/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ValidateMealRequest checks that name, description and is_on_diet are all
// present. Empty strings and a false flag are accepted.
func ValidateMealRequest(req *model.MealRequest) (model.MealFields, error) {
	if req == nil {
		return model.MealFields{}, model.NewInvalidInputError("request body is required")
	}

	if err := validate.Struct(req); err != nil {
		return model.MealFields{}, validationError(err)
	}

	return model.MealFields{
		Name:        *req.Name,
		Description: *req.Description,
		IsOnDiet:    *req.IsOnDiet,
	}, nil
}

// ValidateUserRequest checks a registration payload and normalises it.
func ValidateUserRequest(req *model.UserRequest) (model.UserRequest, error) {
	if req == nil {
		return model.UserRequest{}, model.NewInvalidInputError("request body is required")
	}

	normalised := model.UserRequest{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := validate.Struct(&normalised); err != nil {
		return model.UserRequest{}, validationError(err)
	}

	return normalised, nil
}

// ParseMealID parses a meal identifier.
func ParseMealID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, model.ErrInvalidMealID
	}
	return parsed, nil
}

// validationError turns the first failed rule into an INVALID_INPUT error.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return model.ErrInvalidInput
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return model.NewInvalidInputError(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return model.NewInvalidInputError(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	case "max":
		return model.NewInvalidInputError(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return model.NewInvalidInputError(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
