package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/view"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// defaultPageSize размер страницы списков по умолчанию
const defaultPageSize = 10

func addPageFlags(cmd *cobra.Command, p *pkgapi.PageParams) {
	cmd.Flags().IntVar(&p.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&p.PageSize, "page-size", defaultPageSize, "rows per page")
}

// intFlag возвращает значение флага, только если он указан явно
func intFlag(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// printDetails печатает одну сущность: пары ключ-значение или JSON/YAML
func (c *Cli) printDetails(v any, pairs [][2]string) error {
	if c.printer.Format() != view.FormatTable {
		return c.printer.Print(v, nil)
	}
	view.KeyValues(c.io, pairs)
	return nil
}

func (c *Cli) printUser(u *pkgapi.User) error {
	role := ""
	if u.Role != nil {
		role = u.Role.RoleName
	}
	return c.printDetails(u, [][2]string{
		{"ID", strconv.Itoa(u.UserID)},
		{"Username", u.Username},
		{"Email", u.Email},
		{"Role", role},
		{"Status", view.StatusText(u.Status)},
		{"VIP", view.VIPText(u, c.now())},
		{"Emby user", u.EmbyUserID},
		{"Created", view.DateTime(u.CreatedAt)},
		{"Updated", view.DateTime(u.UpdatedAt)},
	})
}

var userHeaders = []string{"ID", "USERNAME", "EMAIL", "ROLE", "STATUS", "VIP", "CREATED"}

func (c *Cli) userRow(u pkgapi.User) []string {
	role := ""
	if u.Role != nil {
		role = u.Role.RoleName
	}
	return []string{
		strconv.Itoa(u.UserID),
		u.Username,
		u.Email,
		role,
		view.StatusText(u.Status),
		view.VIPText(&u, c.now()),
		view.Date(u.CreatedAt),
	}
}
