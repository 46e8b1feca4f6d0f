package display

import (
	"fmt"
	"io"
	"strings"
)

// Notice is a user-facing warning box, used for problems outside the
// structure report itself (for example a submission folder whose name is not
// a valid candidate number).
type Notice struct {
	// Title is the headline of the notice.
	Title string
	// Message is an optional detailed explanation.
	Message string
	// Suggestion is an optional action the submitter should take.
	Suggestion string
}

// Display writes the notice to out, in yellow when color is enabled.
func (n Notice) Display(out io.Writer, opts Options) {
	var b strings.Builder

	if opts.Color {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("! Warning: ")
	b.WriteString(n.Title)
	b.WriteString("\n")

	if n.Message != "" {
		b.WriteString("    ")
		b.WriteString(n.Message)
		b.WriteString("\n")
	}
	if n.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(n.Suggestion)
		b.WriteString("\n")
	}
	if opts.Color {
		b.WriteString("\x1b[0m")
	}

	fmt.Fprint(out, b.String())
}
