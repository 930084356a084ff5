package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lmarten/coursemap/pkg/catalog"
)

// Color palette shared by all terminal output.
var (
	colorCyan  = lipgloss.Color("36")  // Teal - subject codes
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// styleSubject for subject codes.
	styleSubject = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleCount for per-subject course counts.
	styleCount = lipgloss.NewStyle().Foreground(colorGray)

	// styleCourses for course number lists.
	styleCourses = lipgloss.NewStyle().Foreground(colorWhite)

	// styleTotals for the closing totals line.
	styleTotals = lipgloss.NewStyle().Foreground(colorDim)
)

// renderSummary formats a catalog as a styled per-subject summary:
// one line per subject in catalog order, followed by a totals line.
func renderSummary(c *catalog.Catalog) string {
	var b strings.Builder

	width := 0
	for _, s := range c.Subjects() {
		if len(s) > width {
			width = len(s)
		}
	}

	for _, s := range c.Subjects() {
		courses, _ := c.Courses(s)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			styleSubject.Render(fmt.Sprintf("%-*s", width, s)),
			styleCount.Render(fmt.Sprintf("%3d", len(courses))),
			styleCourses.Render(strings.Join(courses, ", ")),
		))
	}
	b.WriteString(styleTotals.Render(fmt.Sprintf("%d subjects, %d courses", c.SubjectCount(), c.CourseCount())))
	b.WriteString("\n")
	return b.String()
}
