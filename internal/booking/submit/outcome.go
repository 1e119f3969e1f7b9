package submit

import (
	"encoding/json"

	"studio/internal/booking/form"
	"studio/pkg/client"
	"studio/pkg/model"
)

const (
	MsgNetwork = "Network error: Unable to connect to the server. Please check your connection."
	MsgGeneric = "Failed to submit booking request. Please try again."
)

// Reason classifies a failed submission.
type Reason string

const (
	ReasonConnectivity Reason = "connectivity"
	ReasonRejected     Reason = "rejected"
	ReasonDecode       Reason = "decode"
)

// Outcome is the result of one submission attempt.
type Outcome struct {
	Succeeded bool
	BookingID int64
	Status    string

	Message     string
	Reason      Reason
	FieldErrors form.FieldErrors
}

func succeeded(data *model.BookingResponse) Outcome {
	o := Outcome{Succeeded: true}
	if data != nil {
		o.BookingID = data.ID
		o.Status = data.Status
	}
	return o
}

func failed(reason Reason, message string) Outcome {
	if message == "" {
		message = MsgGeneric
	}
	return Outcome{Reason: reason, Message: message}
}

// interpret turns a booking response into an Outcome. Success needs both a 2xx status
// and success=true in the body.
func interpret(resp *client.Response) Outcome {
	var body model.BookingAPIResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return failed(ReasonDecode, MsgGeneric)
	}

	if resp.IsSuccess() && body.Success {
		return succeeded(body.Data)
	}

	o := failed(ReasonRejected, body.Message)
	o.FieldErrors = form.FromWire(body.Errors)
	return o
}
