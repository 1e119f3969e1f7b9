package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"studio/pkg/logger"
	"studio/pkg/model"

	"github.com/go-playground/validator/v10"
)

const MsgDateInPast = "Please choose a date that has not passed"

// MaxEventDetailsLength caps stored event details, in characters.
const MaxEventDetailsLength = 5000

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Fields keys the messages by wire field name, keeping the first message per field.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		if _, seen := out[err.Field]; !seen {
			out[err.Field] = err.Message
		}
	}
	return out
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
	now      func() time.Time
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)

	if err := v.RegisterValidation("session_type", validateSessionType); err != nil {
		log.Fatal("Failed to register 'session_type' validator",
			"error", err,
		)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
		now:      time.Now,
	}
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

// Validate checks the field rules shared with the booking form plus the server-only
// rules: event details length and event dates before today (UTC).
func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	var validationErrors ValidationErrors
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}
		validationErrors = v.translateValidationErrors(validationErrs)
	}

	reported := validationErrors.Fields()
	if _, seen := reported[model.WireEventDetails]; !seen && utf8.RuneCountInString(req.EventDetails) > MaxEventDetailsLength {
		validationErrors = append(validationErrors, ValidationError{Field: model.WireEventDetails, Message: model.MsgMessageTooLong})
	}
	if _, seen := reported[model.WireEventDate]; !seen {
		if msg := v.checkEventDate(req.EventDate); msg != "" {
			validationErrors = append(validationErrors, ValidationError{Field: model.WireEventDate, Message: msg})
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

func (v *BookingValidator) checkEventDate(value string) string {
	eventDate, err := time.Parse(model.EventDateLayout, value)
	if err != nil {
		return model.MsgDateInvalid
	}
	today := v.now().UTC().Truncate(24 * time.Hour)
	if eventDate.Before(today) {
		return MsgDateInPast
	}
	return ""
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: model.BookingFieldMessage(err.Field(), err.Tag()),
		})
	}

	return validationErrors
}
