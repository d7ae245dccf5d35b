// Package terminal provides utilities for terminal operations such as clearing text
// and reading secrets without echo.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// clearScreenSeq erases the display and homes the cursor.
const clearScreenSeq = "\x1b[2J\x1b[0;0f"

// ClearScreen erases the whole terminal and moves the cursor to the top-left corner.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, clearScreenSeq)
}

// Width returns the current terminal width, or 80 when stdout is not a terminal.
func Width() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsInteractive reports whether both stdin and stdout are attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ClearPreviousLines clears text from the terminal that was previously printed.
// It calculates how many lines were used by the provided text based on the current
// terminal width, then moves up and clears each line.
//
// This is useful for cleaning up prompts after a secret has been entered.
//
// Parameters:
//   - textLength: The total number of characters in the text to clear (prompt + user input)
func ClearPreviousLines(textLength int) {
	termWidth := Width()

	totalLines := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if totalLines < 1 {
		totalLines = 1
	}

	// After Enter, cursor is on a NEW line below the input.
	linesToClear := totalLines + 1

	for i := 0; i < linesToClear; i++ {
		fmt.Print("\r\x1b[2K") // Move to start and clear entire line
		if i < linesToClear-1 {
			fmt.Print("\x1b[1A") // Move up one line (don't move up on last iteration)
		}
	}
}
