package form

import (
	"fmt"
	"maps"
	"strings"

	"studio/pkg/model"
)

// Field names a booking form input.
type Field string

const (
	FieldName          Field = "name"
	FieldEmail         Field = "email"
	FieldPhone         Field = "phone"
	FieldSessionType   Field = "sessionType"
	FieldPreferredDate Field = "preferredDate"
	FieldMessage       Field = "message"
)

// Fields lists the inputs in form order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldSessionType, FieldPreferredDate, FieldMessage}

var wireNames = map[Field]string{
	FieldName:          model.WireName,
	FieldEmail:         model.WireEmail,
	FieldPhone:         model.WirePhone,
	FieldSessionType:   model.WireSessionType,
	FieldPreferredDate: model.WireEventDate,
	FieldMessage:       model.WireEventDetails,
}

// WireName is the member name of f in the booking request body.
func (f Field) WireName() string {
	return wireNames[f]
}

func FieldFromWire(name string) (Field, bool) {
	for f, wire := range wireNames {
		if wire == name {
			return f, true
		}
	}
	return "", false
}

func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := wireNames[f]; !ok {
		return "", fmt.Errorf("unknown booking field %q", s)
	}
	return f, nil
}

// Draft is the booking form as typed, before validation.
type Draft struct {
	Name          string
	Email         string
	Phone         string
	SessionType   string
	PreferredDate string
	Message       string
}

func (d Draft) Value(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldSessionType:
		return d.SessionType
	case FieldPreferredDate:
		return d.PreferredDate
	case FieldMessage:
		return d.Message
	}
	return ""
}

// With returns a copy of d with f set to value.
func (d Draft) With(f Field, value string) (Draft, error) {
	switch f {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldSessionType:
		d.SessionType = value
	case FieldPreferredDate:
		d.PreferredDate = value
	case FieldMessage:
		d.Message = value
	default:
		return d, fmt.Errorf("unknown booking field %q", f)
	}
	return d, nil
}

// IsZero reports whether nothing has been typed.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

func (d Draft) trimmed() Draft {
	return Draft{
		Name:          strings.TrimSpace(d.Name),
		Email:         strings.TrimSpace(d.Email),
		Phone:         strings.TrimSpace(d.Phone),
		SessionType:   strings.TrimSpace(d.SessionType),
		PreferredDate: strings.TrimSpace(d.PreferredDate),
		Message:       strings.TrimSpace(d.Message),
	}
}

// Request projects d onto the wire request. Callers must only send the result of a
// draft that Schema.Validate accepted.
func (d Draft) Request() model.BookingRequest {
	return model.BookingRequest{
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		SessionType:  d.SessionType,
		EventDate:    d.PreferredDate,
		EventDetails: d.Message,
	}
}

// FieldErrors holds at most one message per field.
type FieldErrors map[Field]string

func (e FieldErrors) Clone() FieldErrors {
	if e == nil {
		return nil
	}
	return maps.Clone(e)
}

// Without returns a copy of e with f's message removed. Other entries are untouched.
func (e FieldErrors) Without(f Field) FieldErrors {
	if _, ok := e[f]; !ok {
		return e.Clone()
	}
	out := make(FieldErrors, len(e)-1)
	for k, v := range e {
		if k != f {
			out[k] = v
		}
	}
	return out
}

// FromWire converts server-side errors keyed by wire member names. Unknown members are
// dropped.
func FromWire(errs map[string]string) FieldErrors {
	if len(errs) == 0 {
		return nil
	}
	out := FieldErrors{}
	for wire, msg := range errs {
		if f, ok := FieldFromWire(wire); ok {
			out[f] = msg
		}
	}
	return out
}
