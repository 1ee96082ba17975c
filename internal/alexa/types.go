// Package alexa holds the skill request/response envelope shapes and the
// translation between abstract dialog output and the native speech format.
package alexa

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Request types delivered by the platform.
const (
	RequestTypeLaunch       = "LaunchRequest"
	RequestTypeIntent       = "IntentRequest"
	RequestTypeSessionEnded = "SessionEndedRequest"
)

// Intent names declared in the skill's interaction model.
const (
	IntentSlack       = "SlackIntent"
	IntentDialogSlack = "DialogSlackIntent"
	IntentHelp        = "AMAZON.HelpIntent"
	IntentStop        = "AMAZON.StopIntent"
	IntentCancel      = "AMAZON.CancelIntent"
)

// Slot names from the interaction model.
const (
	SlotEmployees = "Employees"
	SlotVisitors  = "Visitor"
)

// RequestEnvelope is the inbound skill invocation payload.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session" validate:"required"`
	Request Request `json:"request" validate:"required"`
}

type Session struct {
	New        bool              `json:"new"`
	SessionID  string            `json:"sessionId" validate:"required"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Request struct {
	Type      string  `json:"type" validate:"required"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

type Intent struct {
	Name  string             `json:"name"`
	Slots map[string]RawSlot `json:"slots,omitempty"`
}

// RawSlot is a slot as the platform delivers it: present with or without
// a value. An absent slot simply has no map entry.
type RawSlot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Slot returns the named slot, or nil if it was absent from this turn.
func (i *Intent) Slot(name string) *RawSlot {
	if i == nil {
		return nil
	}
	s, ok := i.Slots[name]
	if !ok {
		return nil
	}
	return &s
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateEnvelope checks the decoded envelope for the fields every
// request must carry.
func ValidateEnvelope(env *RequestEnvelope) error {
	if err := validate.Struct(env); err != nil {
		return fmt.Errorf("alexa: invalid request envelope: %w", err)
	}
	return nil
}
