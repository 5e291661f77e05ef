package fp_serv

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rskv-p/fpmine/pkg/x_data"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
	"github.com/rskv-p/fpmine/pkg/x_log"

	"github.com/charmbracelet/lipgloss"
)

// ---------- Report styles ----------

type reportStyles struct {
	title   lipgloss.Style
	brace   lipgloss.Style
	item    lipgloss.Style
	support lipgloss.Style
}

func newReportStyles(color bool) reportStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return reportStyles{title: plain, brace: plain, item: plain, support: plain}
	}
	return reportStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(x_log.ColorBlue60)),
		brace:   lipgloss.NewStyle().Foreground(lipgloss.Color(x_log.ColorGray60)),
		item:    lipgloss.NewStyle().Foreground(lipgloss.Color(x_log.ColorTeal40)),
		support: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(x_log.ColorGreen50)),
	}
}

// ---------- Report ----------

// Report writes the tree (when rendered), every itemset in mining order,
// the total and the elapsed time. color enables lipgloss styling.
func Report(w io.Writer, sum *RunSummary, color bool) error {
	st := newReportStyles(color)
	var b strings.Builder

	if sum.Tree != "" {
		b.WriteString(st.title.Render("Constructed FP-tree Structure:") + "\n")
		b.WriteString(sum.Tree)
		b.WriteString("\n")
	}

	if sum.Itemsets != nil {
		b.WriteString(st.title.Render("Frequent Itemsets Found:") + "\n")
		for _, set := range sum.Itemsets {
			b.WriteString(formatItemset(set, st))
			b.WriteByte('\n')
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s %d\n", st.title.Render("Total Frequent Itemsets Found:"), sum.Result.Itemsets)
	fmt.Fprintf(&b, "%s %s seconds.\n", st.title.Render("Algorithm finished in"),
		strconv.FormatFloat(sum.Elapsed.Seconds(), 'f', -1, 64))

	_, err := io.WriteString(w, b.String())
	return err
}

// formatItemset renders set as "{ a b } : n" with cleaned item names.
func formatItemset(set x_fptree.Itemset, st reportStyles) string {
	var b strings.Builder
	b.WriteString(st.brace.Render("{"))
	b.WriteByte(' ')
	for _, it := range set.Items {
		b.WriteString(st.item.Render(x_data.CleanItem(it)))
		b.WriteByte(' ')
	}
	b.WriteString(st.brace.Render("}"))
	b.WriteString(" : ")
	b.WriteString(st.support.Render(strconv.FormatUint(set.Support, 10)))
	return b.String()
}

// PlainItemset renders set without styling.
func PlainItemset(set x_fptree.Itemset) string {
	return formatItemset(set, newReportStyles(false))
}
