package domain

// DecisionKind tags the resolver's classification of a turn.
type DecisionKind int

const (
	// DecisionNeedField asks for exactly one missing role.
	DecisionNeedField DecisionKind = iota
	// DecisionComplete carries both resolved names.
	DecisionComplete
	// DecisionUnintelligible reprompts the open question.
	DecisionUnintelligible
)

// Decision is the resolver's output for one turn. Produced fresh each
// turn, never stored.
type Decision struct {
	Kind      DecisionKind
	Missing   Field  // set for DecisionNeedField
	Recipient string // set for DecisionComplete
	Requester string // set for DecisionComplete
}

func NeedField(f Field) Decision {
	return Decision{Kind: DecisionNeedField, Missing: f}
}

func Complete(recipient, requester string) Decision {
	return Decision{Kind: DecisionComplete, Recipient: recipient, Requester: requester}
}

func Unintelligible() Decision {
	return Decision{Kind: DecisionUnintelligible}
}
