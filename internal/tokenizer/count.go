package tokenizer

import (
	"errors"
)

// Summary describes the token cost of a rendering.
type Summary struct {
	Model  string
	Lines  int
	Tokens int
}

// CountRendering counts the tokens of rendering and the lines it spans.
func CountRendering(counter Counter, model string, rendering string) (Summary, error) {
	if counter == nil {
		return Summary{}, errors.New("nil tokenizer counter")
	}
	tokens, err := counter.CountString(rendering)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Model: model, Lines: countLines(rendering), Tokens: tokens}, nil
}

func countLines(rendering string) int {
	lineCount := 0
	for _, character := range rendering {
		if character == '\n' {
			lineCount++
		}
	}
	if rendering != "" && rendering[len(rendering)-1] != '\n' {
		lineCount++
	}
	return lineCount
}
