package submit

import (
	"testing"

	"studio/internal/booking/form"
	"studio/pkg/model"

	"github.com/google/go-cmp/cmp"
)

func TestPresent(t *testing.T) {
	draft := form.Draft{Name: "Ada", Email: "bad"}
	errs := form.FieldErrors{form.FieldEmail: model.MsgEmailInvalid}

	tests := []struct {
		name string
		snap Snapshot
		want View
	}{
		{
			name: "idle without errors",
			snap: Snapshot{State: Idle, Draft: draft},
			want: View{Values: draft},
		},
		{
			name: "rejected by validation",
			snap: Snapshot{State: Idle, Draft: draft, FieldErrors: errs},
			want: View{Values: draft, FieldMessages: errs},
		},
		{
			name: "submitting",
			snap: Snapshot{State: Submitting, Draft: draft},
			want: View{Values: draft, Busy: true},
		},
		{
			name: "failed",
			snap: Snapshot{State: Failed, Draft: draft, Outcome: &Outcome{Message: "Date unavailable", Reason: ReasonRejected}},
			want: View{Values: draft, Alert: "Date unavailable"},
		},
		{
			name: "succeeded",
			snap: Snapshot{State: Succeeded, Outcome: &Outcome{Succeeded: true, BookingID: 3}},
			want: View{Redirect: ConfirmationRoute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Present(tt.snap)); diff != "" {
				t.Errorf("Present() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		Idle: "idle", Validating: "validating", Submitting: "submitting",
		Succeeded: "succeeded", Failed: "failed", State(42): "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
