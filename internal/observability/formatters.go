// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/candyhouse/talent-profile/internal/profile"
	"github.com/candyhouse/talent-profile/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfileState outputs the store flags and a summary of the resume.
func (p *Printer) PrintProfileState(st profile.State) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Busy:     %t\n", st.IsBusy)
	if st.ErrorMessage != "" {
		fmt.Fprintf(&sb, "Error:    %s\n", st.ErrorMessage)
	}
	sb.WriteString("\n")
	writeResumeSummary(&sb, st.Resume)

	p.printBox("PROFILE STATE", sb.String())
}

// PrintResume outputs a human-readable summary of a resume.
func (p *Printer) PrintResume(r types.Resume) {
	var sb strings.Builder
	writeResumeSummary(&sb, r)
	p.printBox("RESUME", sb.String())
}

// PrintTransition outputs one line for the n-th store transition.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTransition(n int, st profile.State) {
	name := strings.TrimSpace(st.FirstName + " " + st.LastName)
	fmt.Fprintf(p.out, "→ #%d busy=%t error=%q name=%q\n", n, st.IsBusy, st.ErrorMessage, name)
}

// PrintOutcome outputs the result of a store orchestration.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutcome(op string, o profile.Outcome, elapsed time.Duration) {
	fmt.Fprintf(p.out, "%s: %s (%s)\n", op, o, elapsed.Round(time.Millisecond))
}

func writeResumeSummary(sb *strings.Builder, r types.Resume) {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(sb, "Name:     %s\n", name)
	if r.AccountID != "" {
		fmt.Fprintf(sb, "Account:  %s\n", r.AccountID)
	}
	if r.Location != "" {
		fmt.Fprintf(sb, "Location: %s\n", r.Location)
	}
	fmt.Fprintf(sb, "Years:    %g\n", r.TotalYearOfExperience)

	if len(r.Skills) > 0 {
		shown := r.Skills[:min(len(r.Skills), maxItemsToShow)]
		fmt.Fprintf(sb, "Skills:   %s", strings.Join(shown, ", "))
		if len(r.Skills) > maxItemsToShow {
			fmt.Fprintf(sb, " (+%d more)", len(r.Skills)-maxItemsToShow)
		}
		sb.WriteString("\n")
	}

	if len(r.Experiences) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(r.Experiences), maxItemsToShow)
		for _, e := range r.Experiences[:count] {
			fmt.Fprintf(sb, "  • %s, %s", e.Title, e.Company)
			if e.IsCurrentlyWorking {
				sb.WriteString(" (current)")
			}
			sb.WriteString("\n")
		}
		if len(r.Experiences) > maxItemsToShow {
			fmt.Fprintf(sb, "  ... and %d more\n", len(r.Experiences)-maxItemsToShow)
		}
	}

	if len(r.Educations) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, e := range r.Educations[:min(len(r.Educations), maxItemsToShow)] {
			fmt.Fprintf(sb, "  • %s, %s %s\n", e.Degree, e.Institute, e.PassYear)
		}
	}
}
