// Package clifmt renders issues and status lines for the command-line
// interface: success/error/warning markers and compact/detailed issue
// views.
package clifmt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git-issue.sh/core/internal/domain"
)

var (
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	blue   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	bold   = lipgloss.NewStyle().Bold(true)
	dim    = lipgloss.NewStyle().Faint(true)
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// Printer renders lines with or without color, depending on how it was
// built.
type Printer struct {
	color bool
}

// New returns a Printer. color controls whether the returned strings carry
// ANSI escapes.
func New(color bool) Printer {
	return Printer{color: color}
}

func (p Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Success formats a line with the ✓ marker.
func (p Printer) Success(message string) string {
	return fmt.Sprintf("%s %s", p.style(green, "✓"), message)
}

// Error formats a line with the ✗ marker.
func (p Printer) Error(message string) string {
	return fmt.Sprintf("%s %s", p.style(red, "✗"), message)
}

// Warning formats a line with the ! marker.
func (p Printer) Warning(message string) string {
	return fmt.Sprintf("%s %s", p.style(yellow, "!"), message)
}

func (p Printer) statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusTodo:
		return p.style(yellow, "TODO")
	case domain.StatusInProgress:
		return p.style(blue, "IN PROGRESS")
	case domain.StatusDone:
		return p.style(green, "DONE")
	default:
		return s.String()
	}
}

// Compact renders a one-line summary of issue, suitable for `list`.
func (p Printer) Compact(issue domain.Issue) string {
	return fmt.Sprintf("#%s %s [%s]", p.style(bold, fmt.Sprint(issue.ID)), issue.Title, p.statusLabel(issue.Status))
}

// Detailed renders the full multi-line view of issue, suitable for `show`.
func (p Printer) Detailed(issue domain.Issue) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Issue %s: %s\n",
		p.style(cyan, fmt.Sprintf("#%d", issue.ID)),
		p.style(bold, issue.Title))
	fmt.Fprintf(&b, "Status: %s\n", p.statusLabel(issue.Status))
	if issue.Priority != domain.PriorityNone {
		fmt.Fprintf(&b, "Priority: %s\n", issue.Priority)
	}
	fmt.Fprintf(&b, "Created by: %s (%s) on %s\n",
		p.style(green, issue.CreatedBy.Name),
		issue.CreatedBy.Email,
		issue.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Last updated: %s\n", issue.UpdatedAt.Format("2006-01-02 15:04:05"))

	for _, a := range issue.Assignees {
		fmt.Fprintf(&b, "Assigned to: %s (%s)\n", p.style(green, a.Name), a.Email)
	}

	if len(issue.Labels) > 0 {
		labels := make([]string, len(issue.Labels))
		for i, l := range issue.Labels {
			labels[i] = p.style(magenta, l)
		}
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(labels, ", "))
	}

	if issue.Description != "" {
		b.WriteString("\nDescription:\n")
		fmt.Fprintf(&b, "%s\n", issue.Description)
	}

	if len(issue.Comments) > 0 {
		b.WriteString("\nComments:\n")
		for _, c := range issue.Comments {
			fmt.Fprintf(&b, "  %s by %s on %s:\n",
				p.style(dim, c.ID),
				p.style(green, c.Author.Name),
				c.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(&b, "    %s\n", c.Content)
		}
	}

	return b.String()
}
