package deckgen

import (
	"fmt"
	"strings"
)

const deckSystemPrompt = `You are an experienced language teacher who writes vocabulary flashcards. Each card pairs a term in the target language with a short English definition.`

func buildDeckUserMessage(input Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Target language: %s\n", input.Language)
	fmt.Fprintf(&b, "Learner level: %s\n", input.Level)
	fmt.Fprintf(&b, "Number of cards: %d\n", input.Count)

	if len(input.Avoid) > 0 {
		b.WriteString("\nThe learner already has these terms, do not repeat them:\n")
		for _, t := range input.Avoid {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString(`
Instructions:
1. Write exactly the requested number of cards, all related to the topic.
2. Terms must be common, natural words or short phrases a native speaker would use. Include the article for nouns where the language has one.
3. Definitions are in English and at most five words. No example sentences.
4. Match the learner level. Beginners get high-frequency everyday words.
5. Every term must be distinct.`)

	return b.String()
}
