// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-review/internal/types"
	"github.com/jonathan/resume-review/internal/workflow"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFeedback outputs a human-readable summary of the AI review scores.
func (p *Printer) PrintFeedback(feedback *types.Feedback) {
	if feedback == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall Score: %.0f/100\n\n", feedback.OverallScore))

	for _, category := range feedback.Categories() {
		improve := 0
		for _, tip := range category.Tips {
			if tip.Type == types.TipImprove {
				improve++
			}
		}
		sb.WriteString(fmt.Sprintf("%-14s %5.0f", category.Name, category.Score))
		if improve > 0 {
			sb.WriteString(fmt.Sprintf("   (%d to improve)", improve))
		}
		sb.WriteString("\n")
	}

	p.printBox("RESUME FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the top pending suggestions with priority markers.
func (p *Printer) PrintSuggestions(suggestions []types.PendingSuggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total suggestions: %d\n\n", len(suggestions)))

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := suggestions[i]
		text := s.Suggestion
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", text))
		sb.WriteString(fmt.Sprintf("  [%s/%s, impact %.0f]\n", s.Priority, s.Type, s.EstimatedImpact))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more suggestions", len(suggestions)-maxItemsToShow))
	}

	p.printBox("PENDING SUGGESTIONS", sb.String())
}

// PrintQuestions outputs the optimization questions for the current phase.
func (p *Printer) PrintQuestions(questions []types.OptimizationQuestion) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for i, q := range questions {
		text := q.Question
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, text))
		sb.WriteString(fmt.Sprintf("   section: %s\n", q.Section))
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("OPTIMIZATION QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSessionProgress outputs the session phase checklist and score gains.
func (p *Printer) PrintSessionProgress(session *types.OptimizationSession, progress *workflow.Progress) {
	if session == nil || progress == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:  %s\n", session.ID))
	sb.WriteString(fmt.Sprintf("Phases:   %d/%d completed\n", progress.CompletedPhases, progress.TotalPhases))
	sb.WriteString(fmt.Sprintf("Gain:     %+.1f points\n\n", progress.ScoreImprovement))

	for _, phase := range session.Phases {
		marker := " "
		if phase.Completed {
			marker = "✓"
		} else if phase.Phase == session.CurrentPhase {
			marker = "→"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, phase.Name))
	}

	p.printBox("OPTIMIZATION PROGRESS", strings.TrimSuffix(sb.String(), "\n"))
}
