package domain

// Field names one of the two roles the dialog collects.
type Field string

const (
	FieldRecipient Field = "recipient"
	FieldRequester Field = "requester"
)

// Trigger classifies the inbound event for one turn.
type Trigger int

const (
	// TriggerDirectRequest is a single utterance naming both roles at once.
	TriggerDirectRequest Trigger = iota
	// TriggerDialogContinuation is a turn whose slot content is ambiguous
	// as to role; the session decides which question comes next.
	TriggerDialogContinuation
	TriggerHelp
	TriggerCancel
	TriggerLaunch
	TriggerSessionEnded
)

// Slot is one named value extracted upstream from the current utterance.
// A nil *Slot means the slot was absent; an empty Value means it was
// present without a value.
type Slot struct {
	Name  string
	Value string
}

// HasValue reports whether the slot carries a usable value.
func (s *Slot) HasValue() bool {
	return s != nil && s.Value != ""
}

// TurnSlots holds the slot values extracted for a single turn. Immutable
// once produced for a turn.
type TurnSlots struct {
	Recipient *Slot
	Requester *Slot
}

// SessionState is the conversation-scoped attribute record. Empty string
// means the field is not yet known.
type SessionState struct {
	Recipient string
	Requester string
}

func (s SessionState) HasRecipient() bool { return s.Recipient != "" }
func (s SessionState) HasRequester() bool { return s.Requester != "" }

// Complete reports whether both roles are known.
func (s SessionState) Complete() bool { return s.HasRecipient() && s.HasRequester() }
