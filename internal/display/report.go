package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/report"
)

// Options controls how a rendered report is written out.
type Options struct {
	// Color enables ANSI colors on section headers and the verdict line.
	Color bool

	// SuppressInformation omits the INFORMATION section. The underlying
	// report is unchanged; this is purely a rendering choice.
	SuppressInformation bool
}

// DetectColor reports whether w is a terminal that should receive colored
// output. Respects NO_COLOR through the color package's global switch.
func DetectColor(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// sectionColor maps each severity to its header color.
func sectionColor(sev report.Severity) *color.Color {
	switch sev {
	case report.Fatal:
		return color.New(color.FgRed, color.Bold)
	case report.Warning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

// RenderReport writes the three report sections to w. A section whose list
// is empty is omitted entirely; a fully clean report renders a single
// verdict line instead.
func RenderReport(w io.Writer, rendered *report.Rendered, opts Options) {
	sections := []struct {
		sev      report.Severity
		findings []report.Finding
	}{
		{report.Fatal, rendered.Fatal},
		{report.Warning, rendered.Warnings},
		{report.Information, rendered.Information},
	}

	wrote := false
	for _, section := range sections {
		if len(section.findings) == 0 {
			continue
		}
		if section.sev == report.Information && opts.SuppressInformation {
			continue
		}

		if wrote {
			fmt.Fprintln(w)
		}
		wrote = true

		header := section.sev.String()
		if opts.Color {
			header = sectionColor(section.sev).Sprint(header)
		}
		fmt.Fprintf(w, "%s\n", header)
		for _, f := range section.findings {
			fmt.Fprintf(w, "  - %s\n", f.String())
		}
	}

	fatal, warnings, _ := rendered.Counts()
	if fatal == 0 && warnings == 0 {
		verdict := "Submission matches the expected structure."
		if opts.Color {
			verdict = color.New(color.FgGreen).Sprint(verdict)
		}
		if wrote {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", okMark(opts), verdict)
		return
	}

	if wrote {
		fmt.Fprintln(w)
	}
	verdict := fmt.Sprintf("Found %d fatal problem(s) and %d warning(s).", fatal, warnings)
	if opts.Color {
		verdict = color.New(color.FgRed).Sprint(verdict)
	}
	fmt.Fprintf(w, "%s %s\n", failMark(opts), verdict)
}

func okMark(opts Options) string {
	if opts.Color {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return "✓"
}

func failMark(opts Options) string {
	if opts.Color {
		return color.New(color.FgRed).Sprint("✗")
	}
	return "✗"
}
