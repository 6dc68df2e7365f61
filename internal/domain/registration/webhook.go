package registration

import (
	"errors"

	"github.com/riskibarqy/cricket-league/internal/platform/loosemap"
)

// Shape names the webhook payload layout a Contact was read from.
type Shape string

const (
	ShapeNestedTrigger Shape = "nested_trigger"
	ShapeFlatEntry     Shape = "flat_entry"
	ShapeFlat          Shape = "flat"
)

var (
	ErrEmptyPayload  = errors.New("empty webhook payload")
	ErrMissingFields = errors.New("missing required fields")
)

// Contact is what the confirmation email needs from a registration.
type Contact struct {
	EntryUID      string
	FullName      string
	Email         string
	Phone         string
	PreferredRole string
	PreferredTeam string
}

// ParseWebhookPayload reads a Contact from one of three layouts, tried in
// order: {data|trigger: {entry: {...}}}, {entry: {...}}, then the fields at
// the top level. The first layout whose entry object exists wins.
func ParseWebhookPayload(payload map[string]any) (Contact, Shape, error) {
	if len(payload) == 0 {
		return Contact{}, "", ErrEmptyPayload
	}

	entry, shape := selectEntry(payload)
	contact := Contact{
		EntryUID:      loosemap.String(entry, "uid", "entry_uid"),
		FullName:      loosemap.String(entry, "full_name", "name", "title"),
		Email:         loosemap.String(entry, "email"),
		Phone:         loosemap.String(entry, "phone"),
		PreferredRole: loosemap.String(entry, "preferred_role"),
		PreferredTeam: loosemap.String(entry, "preferred_team"),
	}
	if contact.FullName == "" || contact.Email == "" {
		return Contact{}, shape, ErrMissingFields
	}
	return contact, shape, nil
}

func selectEntry(payload map[string]any) (map[string]any, Shape) {
	for _, wrapper := range []string{"data", "trigger"} {
		if outer, ok := payload[wrapper].(map[string]any); ok {
			if entry, ok := outer["entry"].(map[string]any); ok {
				return entry, ShapeNestedTrigger
			}
		}
	}
	if entry, ok := payload["entry"].(map[string]any); ok {
		return entry, ShapeFlatEntry
	}
	return payload, ShapeFlat
}
