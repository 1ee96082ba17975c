package dialog

import (
	"fmt"

	"sideslacker/internal/domain"
)

const cardTitle = "SideSlacker"

const (
	promptRecipient = "Who are you here to see?"
	promptRequester = "What's your name?"

	welcomePrompt   = "Welcome to Sidebench, who are you here to see? I can send them a message for you"
	welcomeReprompt = "I can help send a message to whoever you're here to see"

	unintelligiblePrompt = "Sorry, I didn't understand that, please say your name or who you're here to visit."

	goodbyeText = "Goodbye"
)

func welcomeOutput() domain.Output {
	return domain.Ask(welcomePrompt, welcomeReprompt)
}

func helpOutput() domain.Output {
	prompt := "I can send a message to anybody in the office. Just tell me your name and who you're here to see" +
		" in a form like, I'm Bob here to see Kevin." + promptRecipient
	return domain.Ask(prompt, promptRecipient)
}

func goodbyeOutput() domain.Output {
	return domain.Tell(goodbyeText, nil)
}

func promptFor(f domain.Field) string {
	if f == domain.FieldRequester {
		return promptRequester
	}
	return promptRecipient
}

// buildOutput renders a resolver decision into the abstract output. For
// questions the reprompt equals the prompt.
func buildOutput(d domain.Decision) domain.Output {
	switch d.Kind {
	case domain.DecisionComplete:
		text := fmt.Sprintf("Ok, %s, I just sent a message to %s, please have a seat and wait.",
			d.Requester, d.Recipient)
		return domain.Tell(text, &domain.Card{Title: cardTitle, Body: text})
	case domain.DecisionUnintelligible:
		return domain.Ask(unintelligiblePrompt, unintelligiblePrompt)
	default:
		prompt := promptFor(d.Missing)
		return domain.Ask(prompt, prompt)
	}
}
