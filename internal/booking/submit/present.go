package submit

import "studio/internal/booking/form"

// View is what the user sees for a Snapshot.
type View struct {
	Redirect      string
	Alert         string
	FieldMessages form.FieldErrors
	Values        form.Draft
	Busy          bool
}

// Present maps a snapshot to its view. Success is only a redirect. A failure keeps the
// typed values next to the alert.
func Present(s Snapshot) View {
	switch s.State {
	case Succeeded:
		return View{Redirect: ConfirmationRoute}
	case Failed:
		v := View{Values: s.Draft, FieldMessages: s.FieldErrors}
		if s.Outcome != nil {
			v.Alert = s.Outcome.Message
		}
		return v
	case Validating, Submitting:
		return View{Values: s.Draft, Busy: true}
	default:
		return View{Values: s.Draft, FieldMessages: s.FieldErrors}
	}
}
