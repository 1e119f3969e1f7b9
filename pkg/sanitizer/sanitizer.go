package sanitizer

import (
	"strings"
	"unicode"

	"studio/pkg/model"

	"github.com/nyaruka/phonenumbers"
	"github.com/samber/lo"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// DefaultPhoneRegion is used for numbers written without a country code.
const DefaultPhoneRegion = "US"

// TrimAndNormalize trims s and collapses every whitespace run to a single space.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return Pipeline{strings.TrimSpace, strings.ToLower}.Apply(email)
}

// NormalizePhone formats parseable numbers as E.164 and returns anything else trimmed.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// NormalizeText keeps line structure but trims each line, drops control characters, and
// removes leading and trailing blank lines.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := lo.Map(strings.Split(text, "\n"), func(line string, _ int) string {
		return strings.TrimSpace(stripControl(line))
	})
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// BookingRequest returns a normalized copy of req.
func BookingRequest(req model.BookingRequest) model.BookingRequest {
	return model.BookingRequest{
		Name:         NormalizeName(req.Name),
		Email:        NormalizeEmail(req.Email),
		Phone:        NormalizePhone(req.Phone),
		SessionType:  strings.ToLower(strings.TrimSpace(req.SessionType)),
		EventDate:    strings.TrimSpace(req.EventDate),
		EventDetails: NormalizeText(req.EventDetails),
	}
}
