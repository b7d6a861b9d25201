// Package ui provides terminal helpers for the CLI.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether the writer is an interactive terminal.
// Non-file writers (buffers, pipes wrapped in custom types) report false.
func IsTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}

// Width returns the terminal width of the writer, or fallback when the writer
// is not a terminal or the size cannot be determined.
func Width(writer io.Writer, fallback int) int {
	file, ok := writer.(*os.File)
	if !ok {
		return fallback
	}

	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}

	return width
}
