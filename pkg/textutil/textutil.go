// Package textutil formats help text for terminal output.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap splits text into lines no wider than width display cells. Whitespace runs collapse to a
// single space. A word wider than width is kept on its own line.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines        []string
		currentLine  []string
		currentWidth int
	)
	for _, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case len(currentLine) == 0:
			currentLine = []string{word}
			currentWidth = w
		case currentWidth+1+w > width:
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = []string{word}
			currentWidth = w
		default:
			currentLine = append(currentLine, word)
			currentWidth += 1 + w
		}
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines
}
