package report

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kihuha/flighter/internal"
)

// RenderCounts prints one row per table plus a total footer.
func RenderCounts(w io.Writer, counts []internal.TableCount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Rows"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Rows", Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	total := 0
	for _, c := range counts {
		t.AppendRow(table.Row{c.Table, humanize.Comma(int64(c.Rows))})
		total += c.Rows
	}
	t.AppendFooter(table.Row{"total", humanize.Comma(int64(total))})

	t.Render()
}
