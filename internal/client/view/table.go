package view

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// Table - данные для табличного вывода
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render печатает таблицу. Пустая таблица печатает строку "No data".
func (t Table) Render(w io.Writer) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	data := pterm.TableData{t.Headers}
	data = append(data, t.Rows...)

	out, err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Page - страница списка с общим числом записей на сервере
type Page[T any] struct {
	Rows  []T
	Total int
}

// NewPage строит Page из ответа API
func NewPage[T any](resp *pkgapi.PageResponse[T]) Page[T] {
	if resp == nil {
		return Page[T]{}
	}
	return Page[T]{Rows: resp.List, Total: resp.Total}
}

// Table строит таблицу из строк страницы: одна строка на элемент
func (p Page[T]) Table(headers []string, row func(T) []string) Table {
	rows := make([][]string, 0, len(p.Rows))
	for _, item := range p.Rows {
		rows = append(rows, row(item))
	}
	return Table{Headers: headers, Rows: rows}
}

// Footer возвращает строку пагинации
func (p Page[T]) Footer(page, pageSize int) string {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || p.Total == 0 {
		return fmt.Sprintf("Total: %d", p.Total)
	}
	pages := (p.Total + pageSize - 1) / pageSize
	return fmt.Sprintf("Total: %d  Page %d/%d", p.Total, page, pages)
}
