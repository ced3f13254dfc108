// Package report renders a generated Plan for the CLI (SPEC_FULL.md §4.9):
// either stable-order JSON or a human-scannable table. Rendering never
// touches Plan contents — it is a pure read. Grounded on the teacher's
// internal/cli/formatter (RenderTable's column-width + StyleHeader/StyleDim
// shape, Header()'s underline convention).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/oposita/studyplan/internal/domain"
)

// Format selects the output rendering.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
)

// WritePlan renders plan to w in the requested format.
func WritePlan(w io.Writer, plan domain.Plan, format Format) error {
	if format == FormatJSON {
		return encodeJSON(w, plan)
	}
	color := ColorCapable(w)

	fmt.Fprintf(w, "Plan for %s stage, exam %s, generated %s\n",
		plan.Meta.Stage, plan.Meta.ExamDateISO, plan.Meta.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if plan.Debug != nil {
		fmt.Fprintf(w, "Buffer status: %s\n", plan.Debug.Capacity.BufferStatus)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, header("Days", color))
	fmt.Fprint(w, RenderTable([]string{"Date", "Blocks"}, dayRows(plan), color))
	fmt.Fprintln(w)

	fmt.Fprintln(w, header("Weekly summary", color))
	fmt.Fprint(w, RenderTable([]string{"Week of", "Hours"}, weekRows(plan), color))

	if len(plan.Explanations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, header("Notes", color))
		for _, note := range plan.Explanations {
			fmt.Fprintf(w, "  - %s\n", note)
		}
	}
	return nil
}

// WriteCapacity renders a capacity-only summary (the `planner capacity`
// subcommand never runs the generator).
func WriteCapacity(w io.Writer, cap domain.PlanCapacity, format Format) error {
	if format == FormatJSON {
		return encodeJSON(w, cap)
	}
	fmt.Fprintf(w, "Total weeks: %d (effective planning weeks: %d)\n", cap.TotalWeeks, cap.EffectivePlanningWeeks)
	fmt.Fprintf(w, "Units: %d\n", cap.UnitsCount)
	fmt.Fprintf(w, "Planned minutes: theory=%d cases=%d programming=%d total=%d\n",
		cap.TheoryPlanned, cap.CasesPlanned, cap.ProgrammingPlanned, cap.PlannedMinutes)
	fmt.Fprintf(w, "Available minutes: %d\n", cap.AvailableEffectiveMin)
	fmt.Fprintf(w, "Buffer: %d minutes (%.0f%%) - %s\n", cap.BufferMinutes, cap.BufferRatio*100, cap.BufferStatus)
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func dayRows(plan domain.Plan) [][]string {
	rows := make([][]string, 0, len(plan.Days))
	for _, day := range plan.Days {
		if len(day.Blocks) == 0 {
			continue
		}
		var parts []string
		for _, b := range day.Blocks {
			unit := b.Unit
			if unit == "" {
				unit = "NA"
			}
			parts = append(parts, fmt.Sprintf("%s[%s](%dm)", b.Activity, unit, b.DurationMinutes))
		}
		rows = append(rows, []string{day.DateISO, strings.Join(parts, ", ")})
	}
	return rows
}

func weekRows(plan domain.Plan) [][]string {
	rows := make([][]string, 0, len(plan.WeeklySummaries))
	for _, week := range plan.WeeklySummaries {
		rows = append(rows, []string{week.WeekStartISO, fmt.Sprintf("%.1f", week.TotalHours)})
	}
	return rows
}

// header renders a section header with the header style and an underline,
// mirroring the teacher's formatter.Header. Styling is skipped when color is
// false (stdout isn't a TTY).
func header(text string, color bool) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("-", len(upper))
	if !color {
		return fmt.Sprintf("%s\n%s", upper, line)
	}
	return fmt.Sprintf("%s\n%s", styleHeader.Render(upper), styleDim.Render(line))
}

// RenderTable renders a simple aligned table with a header separator line,
// padding each column to its widest cell (teacher's formatter.RenderTable).
func RenderTable(headers []string, rows [][]string, color bool) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)
	const colGap = 2

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderHeader := func(s string) string {
		if !color {
			return s
		}
		return styleHeader.Render(s)
	}
	renderRule := func(s string) string {
		if !color {
			return s
		}
		return styleDim.Render(s)
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(renderHeader(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")
	for i, w := range widths {
		b.WriteString(renderRule(strings.Repeat("-", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < cols-1 {
				pad := widths[i] - lipgloss.Width(cell)
				if pad < 0 {
					pad = 0
				}
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ColorCapable reports whether w is a terminal that should receive ANSI
// styling (teacher's pattern of gating color output on isatty).
func ColorCapable(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
