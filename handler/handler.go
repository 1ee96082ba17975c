package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"sideslacker/internal/alexa"
	"sideslacker/internal/dialog"
	"sideslacker/internal/domain"
)

// DialogService is the core consumed by the handler.
type DialogService interface {
	Route(ctx context.Context, trigger domain.Trigger, sessionID string, slots domain.TurnSlots) (domain.Output, error)
	EndSession(ctx context.Context, sessionID string) error
}

// Handler decodes the skill envelope, dispatches it to the dialog core
// and renders the result back into the native response format.
type Handler struct {
	dialog DialogService
}

func NewHandler(d DialogService) (*Handler, error) {
	if d == nil {
		return nil, errors.New("handler: dialog service must not be nil")
	}
	return &Handler{dialog: d}, nil
}

// Handle is the Lambda entrypoint. Recoverable dialog outcomes render as
// responses; unknown intents and internal failures propagate as
// invocation errors for the platform to apologize for.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (alexa.ResponseEnvelope, error) {
	var env alexa.RequestEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return alexa.ResponseEnvelope{}, dialog.NewError(dialog.ErrorInvalidEnvelope, "malformed_request_json", err)
	}
	if err := alexa.ValidateEnvelope(&env); err != nil {
		return alexa.ResponseEnvelope{}, dialog.NewError(dialog.ErrorInvalidEnvelope, "missing_required_fields", err)
	}

	requestID := env.Request.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := slog.With("requestId", requestID, "sessionId", env.Session.SessionID)

	switch env.Request.Type {
	case alexa.RequestTypeLaunch:
		log.Info("session launched")
		return h.route(ctx, domain.TriggerLaunch, env, log)

	case alexa.RequestTypeSessionEnded:
		log.Info("session ended", "reason", env.Request.Reason)
		if err := h.dialog.EndSession(ctx, env.Session.SessionID); err != nil {
			log.Error("failed to drop session state", "err", err)
		}
		return alexa.EmptyResponse(), nil

	case alexa.RequestTypeIntent:
		trigger, err := triggerForIntent(env.Request.Intent)
		if err != nil {
			return alexa.ResponseEnvelope{}, err
		}
		log.Info("intent received", "intent", env.Request.Intent.Name)
		return h.route(ctx, trigger, env, log)

	default:
		return alexa.ResponseEnvelope{}, dialog.NewError(dialog.ErrorUnknownIntent, "unknown_request_type", nil)
	}
}

func (h *Handler) route(ctx context.Context, trigger domain.Trigger, env alexa.RequestEnvelope, log *slog.Logger) (alexa.ResponseEnvelope, error) {
	out, err := h.dialog.Route(ctx, trigger, env.Session.SessionID, turnSlots(env.Request.Intent))
	if err != nil {
		log.Error("turn resolution failed", "err", err)
		return alexa.ResponseEnvelope{}, err
	}
	return alexa.FromOutput(out), nil
}

// triggerForIntent maps the interaction-model intent names onto the
// closed trigger set.
func triggerForIntent(intent *alexa.Intent) (domain.Trigger, error) {
	if intent == nil {
		return 0, dialog.NewError(dialog.ErrorInvalidEnvelope, "intent_request_without_intent", nil)
	}
	switch intent.Name {
	case alexa.IntentSlack:
		return domain.TriggerDirectRequest, nil
	case alexa.IntentDialogSlack:
		return domain.TriggerDialogContinuation, nil
	case alexa.IntentHelp:
		return domain.TriggerHelp, nil
	case alexa.IntentStop, alexa.IntentCancel:
		return domain.TriggerCancel, nil
	default:
		return 0, dialog.NewError(dialog.ErrorUnknownIntent, "unrecognized_intent_name", nil)
	}
}

// turnSlots extracts this turn's two role slots from the intent.
func turnSlots(intent *alexa.Intent) domain.TurnSlots {
	var slots domain.TurnSlots
	if raw := intent.Slot(alexa.SlotEmployees); raw != nil {
		slots.Recipient = &domain.Slot{Name: string(domain.FieldRecipient), Value: raw.Value}
	}
	if raw := intent.Slot(alexa.SlotVisitors); raw != nil {
		slots.Requester = &domain.Slot{Name: string(domain.FieldRequester), Value: raw.Value}
	}
	return slots
}
