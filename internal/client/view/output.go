package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format формат вывода команд
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat разбирает значение флага --output
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Printer печатает результаты команд в выбранном формате
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter создает Printer
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

// Format возвращает выбранный формат
func (p *Printer) Format() Format {
	return p.format
}

// Print выводит v как JSON или YAML, а для табличного формата вызывает table
func (p *Printer) Print(v any, table func() Table) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return table().Render(p.out)
	}
}

// PrintPage выводит страницу списка. В табличном формате добавляется строка пагинации.
func PrintPage[T any](p *Printer, page Page[T], pageNum, pageSize int, headers []string, row func(T) []string) error {
	if p.format != FormatTable {
		return p.Print(struct {
			List  []T `json:"list" yaml:"list"`
			Total int `json:"total" yaml:"total"`
		}{List: page.Rows, Total: page.Total}, nil)
	}
	if err := page.Table(headers, row).Render(p.out); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out, page.Footer(pageNum, pageSize))
	return err
}

// KeyValues печатает пары "ключ: значение" с выравниванием
func KeyValues(w io.Writer, pairs [][2]string) {
	width := 0
	for _, kv := range pairs {
		width = max(width, len(kv[0]))
	}
	for _, kv := range pairs {
		_, _ = fmt.Fprintf(w, "%-*s  %s\n", width+1, kv[0]+":", kv[1])
	}
}
