package results

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Group aggregates the trials sharing one target size. TargetSize 0 collects
// records whose targets are unknown, as read back from a results file.
type Group struct {
	TargetSize      int
	Trials          int
	Detected        int
	MeanConcealment float64
	MinConcealment  float64
	MaxConcealment  float64
}

// DetectionRate is the share of trials in which the targets stayed together.
func (g Group) DetectionRate() float64 {
	if g.Trials == 0 {
		return 0
	}
	return float64(g.Detected) / float64(g.Trials)
}

// Summary aggregates a set of trials overall and per target size.
type Summary struct {
	Total  Group
	Groups []Group
}

type accumulator struct {
	group Group
	sum   float64
}

func (a *accumulator) add(rec *Record) {
	if a.group.Trials == 0 {
		a.group.MinConcealment = math.Inf(1)
		a.group.MaxConcealment = math.Inf(-1)
	}
	a.group.Trials++
	if rec.Detected {
		a.group.Detected++
	}
	a.sum += rec.Concealment
	a.group.MinConcealment = min(a.group.MinConcealment, rec.Concealment)
	a.group.MaxConcealment = max(a.group.MaxConcealment, rec.Concealment)
}

func (a *accumulator) result() Group {
	if a.group.Trials > 0 {
		a.group.MeanConcealment = a.sum / float64(a.group.Trials)
	}
	return a.group
}

// Summarize aggregates records. Groups are ordered by target size.
func Summarize(records []*Record) Summary {
	total := &accumulator{}
	bySize := make(map[int]*accumulator)

	for _, rec := range records {
		total.add(rec)
		size := len(rec.Targets)
		acc, ok := bySize[size]
		if !ok {
			acc = &accumulator{group: Group{TargetSize: size}}
			bySize[size] = acc
		}
		acc.add(rec)
	}

	sizes := make([]int, 0, len(bySize))
	for size := range bySize {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)

	summary := Summary{Total: total.result(), Groups: make([]Group, 0, len(sizes))}
	for _, size := range sizes {
		summary.Groups = append(summary.Groups, bySize[size].result())
	}
	return summary
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)
)

// RenderSummary draws s as a table with one row per target size and a total row.
func RenderSummary(s Summary) string {
	rows := make([][]string, 0, len(s.Groups)+1)
	for _, g := range s.Groups {
		label := strconv.Itoa(g.TargetSize)
		if g.TargetSize == 0 {
			label = "-"
		}
		rows = append(rows, groupRow(label, g))
	}
	rows = append(rows, groupRow("all", s.Total))
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))).
		Headers("targets", "trials", "detected", "rate", "mean", "min", "max").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case last:
				return totalStyle
			}
			return cellStyle
		})

	return t.String()
}

func groupRow(label string, g Group) []string {
	if g.Trials == 0 {
		return []string{label, "0", "0", "-", "-", "-", "-"}
	}
	return []string{
		label,
		strconv.Itoa(g.Trials),
		strconv.Itoa(g.Detected),
		fmt.Sprintf("%.2f", g.DetectionRate()),
		fmt.Sprintf("%.4f", g.MeanConcealment),
		fmt.Sprintf("%.4f", g.MinConcealment),
		fmt.Sprintf("%.4f", g.MaxConcealment),
	}
}
