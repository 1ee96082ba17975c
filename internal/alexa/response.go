package alexa

import "sideslacker/internal/domain"

const (
	speechTypePlainText = "PlainText"
	speechTypeSSML      = "SSML"

	cardTypeSimple = "Simple"

	envelopeVersion = "1.0"
)

// ResponseEnvelope is the outbound skill response payload.
type ResponseEnvelope struct {
	Version           string            `json:"version"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
	Response          Response          `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	SSML string `json:"ssml,omitempty"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech,omitempty"`
}

func speech(text string, isMarkup bool) *OutputSpeech {
	if isMarkup {
		return &OutputSpeech{Type: speechTypeSSML, SSML: text}
	}
	return &OutputSpeech{Type: speechTypePlainText, Text: text}
}

// NewAskResponse builds a question response that keeps the session open.
// The markup flags select SSML over plain text per field.
func NewAskResponse(prompt string, promptIsMarkup bool, reprompt string, repromptIsMarkup bool) ResponseEnvelope {
	return ResponseEnvelope{
		Version: envelopeVersion,
		Response: Response{
			OutputSpeech:     speech(prompt, promptIsMarkup),
			Reprompt:         &Reprompt{OutputSpeech: speech(reprompt, repromptIsMarkup)},
			ShouldEndSession: false,
		},
	}
}

// NewTellResponse builds a final statement response that ends the session,
// with an optional display card.
func NewTellResponse(text string, card *Card) ResponseEnvelope {
	return ResponseEnvelope{
		Version: envelopeVersion,
		Response: Response{
			OutputSpeech:     speech(text, false),
			Card:             card,
			ShouldEndSession: true,
		},
	}
}

// EmptyResponse is used for lifecycle events that take no speech output.
func EmptyResponse() ResponseEnvelope {
	return ResponseEnvelope{Version: envelopeVersion}
}

// FromOutput renders the abstract dialog output into the native envelope.
func FromOutput(out domain.Output) ResponseEnvelope {
	if out.Kind == domain.OutputTell {
		var card *Card
		if out.Card != nil {
			card = &Card{Type: cardTypeSimple, Title: out.Card.Title, Content: out.Card.Body}
		}
		return NewTellResponse(out.Text, card)
	}
	return NewAskResponse(out.Prompt, out.PromptIsMarkup, out.Reprompt, out.RepromptIsMarkup)
}
