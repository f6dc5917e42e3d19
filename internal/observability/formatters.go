// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/team-survey/internal/survey"
	"github.com/jonathan/team-survey/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// questionTextWidth bounds question text inside ranking lists
	questionTextWidth = 40
)

// Printer handles formatted output for the stats command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDashboard outputs the dashboard with sections in catalog order.
func (p *Printer) PrintDashboard(d *survey.Dashboard, catalog *survey.Catalog) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Submissions:    %d\n", d.TotalSubmissions))
	sb.WriteString(fmt.Sprintf("Overall score:  %d\n", d.OverallScore))
	sb.WriteString(fmt.Sprintf("Highest:        %s (%d)\n", d.HighestScoringSection.Name, d.HighestScoringSection.Score))
	sb.WriteString(fmt.Sprintf("Lowest:         %s (%d)", d.LowestScoringSection.Name, d.LowestScoringSection.Score))
	p.printBox("TEAM EFFECTIVENESS", sb.String())

	if d.TotalSubmissions == 0 {
		return
	}

	sb.Reset()
	for i, section := range catalog.Sections() {
		c := d.SectionCounts[section.Name]
		sb.WriteString(fmt.Sprintf("%-26s %3d  Y:%d M:%d N:%d",
			section.Name, d.SectionScores[section.Name], c.Yes, c.Maybe, c.No))
		if i < len(catalog.Sections())-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("SECTION SCORES", sb.String())

	p.printRanking("TOP STRENGTHS", d.TopStrengths, func(q survey.QuestionSummary) int { return q.YesCount })
	p.printRanking("TOP PROBLEMS", d.TopProblems, func(q survey.QuestionSummary) int { return q.NoCount })

	if len(d.PerformanceByDept) > 0 {
		depts := make([]string, 0, len(d.PerformanceByDept))
		for dept := range d.PerformanceByDept {
			depts = append(depts, dept)
		}
		sort.Strings(depts)

		sb.Reset()
		for i, dept := range depts {
			sb.WriteString(fmt.Sprintf("%-40s %3d", truncate(dept, 40), d.PerformanceByDept[dept]))
			if i < len(depts)-1 {
				sb.WriteString("\n")
			}
		}
		p.printBox("PERFORMANCE BY DEPARTMENT", sb.String())
	}
}

func (p *Printer) printRanking(title string, questions []survey.QuestionSummary, count func(survey.QuestionSummary) int) {
	if len(questions) == 0 {
		return
	}
	var sb strings.Builder
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("#%d  Q%-2d %-*s %d", i+1, q.ID, questionTextWidth, truncate(q.Text, questionTextWidth), count(q)))
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(title, sb.String())
}

// PrintFilterOptions lists the known departments and locations.
func (p *Printer) PrintFilterOptions(opts *types.FilterOptions) {
	if opts == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Departments (%d):\n", len(opts.Departments)))
	for _, d := range opts.Departments {
		sb.WriteString(fmt.Sprintf("  • %s\n", d))
	}
	sb.WriteString(fmt.Sprintf("Locations (%d):", len(opts.Locations)))
	for _, l := range opts.Locations {
		sb.WriteString(fmt.Sprintf("\n  • %s", l))
	}
	p.printBox("FILTER OPTIONS", sb.String())
}
