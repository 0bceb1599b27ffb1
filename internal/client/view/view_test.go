package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

func userRow(u pkgapi.User) []string {
	return []string{u.Username, StatusText(u.Status)}
}

// Страница из двух пользователей: две строки и total = 2
func TestPrintPage_TwoRows(t *testing.T) {
	page := NewPage(&pkgapi.PageResponse[pkgapi.User]{
		Total: 2,
		List: []pkgapi.User{
			{UserID: 1, Username: "admin-one", Status: 1},
			{UserID: 2, Username: "user-two", Status: 0},
		},
	})

	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable)
	require.NoError(t, PrintPage(p, page, 1, 10, []string{"USERNAME", "STATUS"}, userRow))

	out := buf.String()
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "admin-one") || strings.Contains(line, "user-two") {
			rows++
		}
	}
	assert.Equal(t, 2, rows)
	assert.Contains(t, out, "Total: 2  Page 1/1")
	assert.Len(t, page.Table(nil, userRow).Rows, 2)
}

func TestPrintPage_JSON(t *testing.T) {
	page := Page[pkgapi.User]{Total: 7, Rows: []pkgapi.User{{UserID: 1, Username: "a"}}}

	var buf bytes.Buffer
	require.NoError(t, PrintPage(NewPrinter(&buf, FormatJSON), page, 1, 1, nil, userRow))
	assert.Contains(t, buf.String(), `"total": 7`)
	assert.Contains(t, buf.String(), `"username": "a"`)
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML)
	require.NoError(t, p.Print(pkgapi.SetupStatus{Initialized: true}, nil))
	assert.Equal(t, "initialized: true\n", buf.String())
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table{Headers: []string{"A"}}.Render(&buf))
	assert.Equal(t, "No data\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "table": FormatTable, "JSON": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPage_Footer(t *testing.T) {
	p := Page[int]{Total: 25}
	assert.Equal(t, "Total: 25  Page 2/3", p.Footer(2, 10))
	assert.Equal(t, "Total: 25", p.Footer(1, 0))
	assert.Equal(t, "Total: 0", Page[int]{}.Footer(1, 10))
}

func TestNotifier_NoColor(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf, true)
	n.Error("permission denied")
	n.Success("saved")

	assert.Equal(t, "✗ permission denied\n✓ saved\n", buf.String())
}

func TestKeyValues(t *testing.T) {
	var buf bytes.Buffer
	KeyValues(&buf, [][2]string{{"User", "admin"}, {"Role ID", "1"}})
	assert.Equal(t, "User:     admin\nRole ID:  1\n", buf.String())
}
