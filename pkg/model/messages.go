package model

// Field messages shown next to booking form inputs. The server reports the same text.
const (
	MsgNameRequired        = "Name is required"
	MsgNameTooLong         = "Name must be at most 100 characters"
	MsgEmailInvalid        = "Please enter a valid email"
	MsgEmailTooLong        = "Email must be at most 255 characters"
	MsgPhoneRequired       = "Phone is required"
	MsgSessionTypeRequired = "Please select a session type"
	MsgSessionTypeInvalid  = "Please select a valid session type"
	MsgDateRequired        = "Please select a date"
	MsgDateInvalid         = "Please enter a valid date"
	MsgMessageRequired     = "Please tell me about your event"
	MsgMessageTooLong      = "Please keep the event details under 5000 characters"

	MsgInvalidField = "This field is invalid"
)

// Wire names of the booking request members.
const (
	WireName         = "name"
	WireEmail        = "email"
	WirePhone        = "phone"
	WireSessionType  = "session_type"
	WireEventDate    = "event_date"
	WireEventDetails = "event_details"
)

var bookingMessages = map[string]map[string]string{
	WireName: {
		"required": MsgNameRequired,
		"max":      MsgNameTooLong,
	},
	WireEmail: {
		"required": MsgEmailInvalid,
		"email":    MsgEmailInvalid,
		"max":      MsgEmailTooLong,
	},
	WirePhone: {
		"required": MsgPhoneRequired,
	},
	WireSessionType: {
		"required":     MsgSessionTypeRequired,
		"session_type": MsgSessionTypeInvalid,
	},
	WireEventDate: {
		"required": MsgDateRequired,
		"datetime": MsgDateInvalid,
	},
	WireEventDetails: {
		"required": MsgMessageRequired,
	},
}

// BookingFieldMessage maps a failed validation tag on a wire field to its message.
func BookingFieldMessage(field, tag string) string {
	if msg, ok := bookingMessages[field][tag]; ok {
		return msg
	}
	return MsgInvalidField
}
