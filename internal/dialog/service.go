package dialog

import (
	"context"
	"errors"
	"log/slog"

	"sideslacker/internal/domain"
)

// SessionStore is the conversation-scoped attribute store. Lifetime is
// one conversation; no cross-conversation visibility.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (domain.SessionState, error)
	Save(ctx context.Context, sessionID string, state domain.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// Notifier delivers the completed request to its destination. Delivery is
// fire-and-forget: the dialog never surfaces a failure to the visitor.
type Notifier interface {
	Notify(ctx context.Context, recipientHandle, requesterName string) error
}

// Directory is a read-only lookup from a spoken recipient name to a
// delivery handle.
type Directory interface {
	Lookup(name string) (string, bool)
}

// Service routes triggers and resolves the two-field dialog state. One
// trigger in, one abstract output out; no background work.
type Service struct {
	store     SessionStore
	notifier  Notifier
	directory Directory
}

func NewService(store SessionStore, notifier Notifier, directory Directory) (*Service, error) {
	if store == nil {
		return nil, errors.New("dialog: session store must not be nil")
	}
	if notifier == nil {
		return nil, errors.New("dialog: notifier must not be nil")
	}
	if directory == nil {
		return nil, errors.New("dialog: directory must not be nil")
	}
	return &Service{store: store, notifier: notifier, directory: directory}, nil
}

// Route maps one inbound trigger to its abstract output. Only unknown
// triggers and store failures produce an error; every in-domain outcome,
// including not understanding the visitor, is a normal output.
func (s *Service) Route(ctx context.Context, trigger domain.Trigger, sessionID string, slots domain.TurnSlots) (domain.Output, error) {
	switch trigger {
	case domain.TriggerLaunch:
		return welcomeOutput(), nil
	case domain.TriggerHelp:
		return helpOutput(), nil
	case domain.TriggerCancel:
		return goodbyeOutput(), nil
	case domain.TriggerDirectRequest:
		return s.finish(ctx, resolveOneShot(slots)), nil
	case domain.TriggerDialogContinuation:
		// When both fields arrive in one continuation turn, treat it as
		// a one-shot.
		if slots.Recipient.HasValue() && slots.Requester.HasValue() {
			return s.finish(ctx, resolveOneShot(slots)), nil
		}
		decision, err := s.resolveContinuation(ctx, sessionID, slots)
		if err != nil {
			return domain.Output{}, NewError(ErrorInternal, "session_store_error", err)
		}
		return s.finish(ctx, decision), nil
	default:
		return domain.Output{}, NewError(ErrorUnknownIntent, "unroutable_trigger", nil)
	}
}

// EndSession drops the conversation's stored attributes. Called on the
// platform's session-ended event.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return NewError(ErrorInternal, "session_delete_error", err)
	}
	return nil
}

// resolveOneShot handles an utterance that names both roles at once. The
// field check is slot-only and ordered recipient first; it does not
// consult the session.
func resolveOneShot(slots domain.TurnSlots) domain.Decision {
	if !slots.Recipient.HasValue() {
		return domain.NeedField(domain.FieldRecipient)
	}
	if !slots.Requester.HasValue() {
		return domain.NeedField(domain.FieldRequester)
	}
	return domain.Complete(slots.Recipient.Value, slots.Requester.Value)
}

// resolveContinuation handles a turn whose single slot value is
// disambiguated by what the session already holds: the resolver asks for
// exactly the one field not yet known.
func (s *Service) resolveContinuation(ctx context.Context, sessionID string, slots domain.TurnSlots) (domain.Decision, error) {
	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Decision{}, err
	}

	switch {
	case slots.Recipient.HasValue():
		state.Recipient = slots.Recipient.Value
		if err := s.store.Save(ctx, sessionID, state); err != nil {
			return domain.Decision{}, err
		}
		if state.HasRequester() {
			return domain.Complete(state.Recipient, state.Requester), nil
		}
		return domain.NeedField(domain.FieldRequester), nil

	case slots.Requester.HasValue():
		state.Requester = slots.Requester.Value
		if err := s.store.Save(ctx, sessionID, state); err != nil {
			return domain.Decision{}, err
		}
		if state.HasRecipient() {
			return domain.Complete(state.Recipient, state.Requester), nil
		}
		return domain.NeedField(domain.FieldRecipient), nil

	default:
		// No usable slot. A completed conversation that gets another
		// turn repeats its confirmation instead of re-asking.
		if state.Complete() {
			return domain.Complete(state.Recipient, state.Requester), nil
		}
		return domain.Unintelligible(), nil
	}
}

// finish renders the decision and, on completion, sends the notification.
// Delivery failure is logged and otherwise invisible to the visitor.
func (s *Service) finish(ctx context.Context, decision domain.Decision) domain.Output {
	if decision.Kind == domain.DecisionComplete {
		handle, ok := s.directory.Lookup(decision.Recipient)
		if !ok {
			handle = decision.Recipient
		}
		if err := s.notifier.Notify(ctx, handle, decision.Requester); err != nil {
			slog.Error("notification delivery failed",
				"recipient", decision.Recipient, "err", err)
		}
	}
	return buildOutput(decision)
}
