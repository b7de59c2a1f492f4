package booking

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

// FieldError describes one failed request field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// MissingDataError lists the request fields that failed validation.
type MissingDataError struct {
	Fields []FieldError
}

func (e *MissingDataError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return ErrMissingData.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return slot.ValidClock(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})
	return v
}

func checkStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &MissingDataError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}
	return out
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "required_without", "required_without_all":
		return err.Field() + " is required"
	case "datetime":
		return err.Field() + " must be a date in YYYY-MM-DD format"
	case "hhmm":
		return err.Field() + " must be a time in HH:MM format"
	default:
		return err.Field() + " is invalid"
	}
}
