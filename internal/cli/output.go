package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
	labelStyle = lipgloss.NewStyle().
			Faint(true).
			Width(28)
	valueStyle = lipgloss.NewStyle()
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("output format must be table, json or yaml, got %q", format)
}

// render writes a stream table or a single result row in the given format.
func render(w io.Writer, v any, format string) error {
	if tbl, ok := v.(*table.Table); ok {
		return renderTable(w, tbl, format)
	}

	row, err := result.ToMap(v)
	if err != nil {
		return err
	}
	switch format {
	case formatJSON:
		return writeJSON(w, row)
	case formatYAML:
		return writeYAML(w, row)
	}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(k), valueStyle.Render(fmt.Sprint(row[k])))
	}
	return nil
}

func renderTable(w io.Writer, tbl *table.Table, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, tbl.Rows())
	case formatYAML:
		return writeYAML(w, tbl.Rows())
	}

	rows := make([][]string, tbl.Len())
	for i := range rows {
		values := tbl.Values(i)
		cells := make([]string, len(values))
		for j, v := range values {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return valueStyle
		}).
		Headers(tbl.Columns()...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d rows\n", tbl.Len())
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
