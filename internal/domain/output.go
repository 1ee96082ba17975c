package domain

// OutputKind distinguishes a question that keeps the session open from a
// final statement that ends it.
type OutputKind int

const (
	OutputAsk OutputKind = iota
	OutputTell
)

// Card is a structured summary for display-capable devices. Emission is
// best-effort; there is no error path.
type Card struct {
	Title string
	Body  string
}

// Output is the abstract response for one turn, independent of the
// hosting platform's speech format. For Ask outputs the markup flags
// tell the renderer whether prompt/reprompt are speech markup rather
// than plain text.
type Output struct {
	Kind OutputKind

	// Ask fields.
	Prompt           string
	PromptIsMarkup   bool
	Reprompt         string
	RepromptIsMarkup bool

	// Tell fields.
	Text string
	Card *Card
}

// Ask builds a plain-text question output with its reprompt.
func Ask(prompt, reprompt string) Output {
	return Output{Kind: OutputAsk, Prompt: prompt, Reprompt: reprompt}
}

// Tell builds a final statement output with an optional card.
func Tell(text string, card *Card) Output {
	return Output{Kind: OutputTell, Text: text, Card: card}
}
