package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"fieldlens/internal/batch"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
)

func renderTable(headers []string, rows [][]string, rightAlign []bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(rightAlign) && rightAlign[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func printRunSummary(w io.Writer, pipeline string, summary batch.Summary) {
	colorize := shouldColorize(w)
	count := func(n int, warnColor string) string {
		s := strconv.Itoa(n)
		if colorize && n > 0 && warnColor != "" {
			return warnColor + s + ansiReset
		}
		return s
	}
	rows := [][]string{{
		pipeline,
		strconv.Itoa(summary.Discovered),
		strconv.Itoa(summary.Skipped),
		strconv.Itoa(summary.Processed),
		count(summary.Issues, ansiYellow),
		count(summary.Failed, ansiRed),
	}}
	fmt.Fprintln(w, renderTable(
		[]string{"Pipeline", "Found", "Skipped", "Processed", "Issues", "Failed"},
		rows,
		[]bool{false, true, true, true, true, true},
	))
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
