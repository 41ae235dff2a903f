// Package gemini provides an implementation of the generation interface
// using Google's Gemini API.
package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	// Premise is the submitted story premise to continue
	Premise string
}

// defaultPromptTemplate is used when no template path is configured. It
// instructs the model to continue the premise as a screenplay excerpt and
// to return only the script text, so the response needs no parsing.
const defaultPromptTemplate = `You are a screenwriter. Continue the following story premise as an excerpt
from a movie script, using standard screenplay format (scene headings,
action lines, character names and dialogue).

Story premise:
{{.Premise}}

Respond with only the script text. Do not add commentary, headings, or
markdown fences.`
