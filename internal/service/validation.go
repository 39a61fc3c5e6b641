package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/go-playground/validator/v10"
)

const (
	notBlankTag = "notblank"
	slotTag     = "slot"
	endDateTag  = "gtestart"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках используем имена из json тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(notBlankTag, notBlankValidation); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", notBlankTag, err))
	}
	v.RegisterStructValidation(availabilitySlotValidation, model.AvailabilitySlot{})
	v.RegisterStructValidation(enrollmentInputValidation, EnrollmentInput{})

	return v
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// availabilitySlotValidation проверяет слот тем же разбором, что и генератор
func availabilitySlotValidation(sl validator.StructLevel) {
	raw, ok := sl.Current().Interface().(model.AvailabilitySlot)
	if !ok {
		return
	}
	slot, err := schedule.ParseSlot(raw)
	if err == nil {
		err = slot.CheckRange()
	}
	if err != nil {
		sl.ReportError(raw.Day, "day", "Day", slotTag, err.Error())
	}
}

func enrollmentInputValidation(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(EnrollmentInput)
	if !ok {
		return
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		sl.ReportError(in.EndDate, "endDate", "EndDate", endDateTag, "")
	}
}

// validateInput проверяет структуру и сводит ошибки в одно сообщение
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &ValidationError{Fields: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case notBlankTag:
		return field + " cannot be blank"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case slotTag:
		return fmt.Sprintf("%s: %s", field, fe.Param())
	case endDateTag:
		return field + " must not be before startDate"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// ValidationError - ошибка входных данных с перечнем полей
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, "; ")
}
