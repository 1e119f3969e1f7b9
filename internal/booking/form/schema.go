package form

import (
	"errors"
	"reflect"
	"strings"

	"studio/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Schema checks a Draft against the booking field rules. The rules are the validate
// tags of model.BookingRequest; the server layers its own extra rules on top.
type Schema struct {
	validate *validator.Validate
}

func NewSchema() *Schema {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("session_type", validateSessionType); err != nil {
		panic("form: register session_type: " + err.Error())
	}
	return &Schema{validate: v}
}

// Validate returns the trimmed draft and nil when every rule holds. Otherwise it returns
// the original draft and one message per failing field; the first failing rule of a
// field decides its message.
func (s *Schema) Validate(d Draft) (Draft, FieldErrors) {
	normalized := d.trimmed()
	req := normalized.Request()

	err := s.validate.Struct(&req)
	if err == nil {
		return normalized, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return d, FieldErrors{FieldName: model.MsgInvalidField}
	}
	return d, translate(validationErrs)
}

func translate(errs validator.ValidationErrors) FieldErrors {
	out := FieldErrors{}
	for _, fe := range errs {
		field, ok := FieldFromWire(fe.Field())
		if !ok {
			continue
		}
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = model.BookingFieldMessage(fe.Field(), fe.Tag())
	}
	return out
}

func validateSessionType(fl validator.FieldLevel) bool {
	return model.IsSessionType(fl.Field().String())
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
