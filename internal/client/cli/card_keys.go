package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/permission"
	"github.com/iudanet/hubctl/internal/client/view"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

func (c *Cli) newCardKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "card-keys",
		Short:       "Manage registration and VIP card keys",
		Annotations: page("card-keys"),
	}
	cmd.AddCommand(
		c.newCardKeysListCmd(),
		c.newCardKeysCreateCmd(),
		c.newCardKeysGetCmd(),
		c.newCardKeysToggleCmd("disable", "Disable a card key", c.disableCardKey),
		c.newCardKeysToggleCmd("enable", "Enable a disabled card key", c.enableCardKey),
		c.newCardKeysDeleteCmd(),
		c.newCardKeysStatsCmd(),
		c.newCardKeysValidateCmd(),
		c.newCardKeysUseCmd(),
	)
	return cmd
}

var cardKeyHeaders = []string{"ID", "CODE", "TYPE", "DAYS", "STATUS", "USED BY", "CREATED", "REMARK"}

func cardKeyRow(k pkgapi.CardKey) []string {
	usedBy := ""
	switch {
	case k.UsedByUser != nil:
		usedBy = k.UsedByUser.Username
	case k.UsedBy != nil:
		usedBy = strconv.Itoa(*k.UsedBy)
	}
	return []string{
		strconv.Itoa(k.ID),
		k.CardCode,
		view.CardKeyTypeText(k.CardType),
		strconv.Itoa(k.Duration),
		view.CardKeyStatusText(k.Status),
		usedBy,
		view.Date(k.CreatedAt),
		k.Remark,
	}
}

func (c *Cli) newCardKeysListCmd() *cobra.Command {
	var (
		params   pkgapi.CardKeyListParams
		status   int
		cardType int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List card keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.CardKeyView); err != nil {
				return err
			}
			params.Status = intFlag(cmd, "status", status)
			params.CardType = intFlag(cmd, "type", cardType)

			resp, err := c.client.ListCardKeys(cmd.Context(), params)
			if err != nil {
				return err
			}
			return view.PrintPage(c.printer, view.NewPage(resp), params.Page, params.PageSize, cardKeyHeaders, cardKeyRow)
		},
	}
	cmd.Flags().IntVar(&status, "status", 0, "filter by status: 0 disabled, 1 unused, 2 used")
	cmd.Flags().IntVar(&cardType, "type", 0, "filter by type: 1 register, 2 vip")
	cmd.Flags().StringVarP(&params.Keyword, "keyword", "k", "", "search by code or remark")
	addPageFlags(cmd, &params.PageParams)
	return cmd
}

func (c *Cli) newCardKeysCreateCmd() *cobra.Command {
	req := pkgapi.CardKeyCreateRequest{
		Count:    1,
		CardType: pkgapi.CardKeyTypeVIP,
		Duration: 30,
	}
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Generate card keys",
		Example: `  hubctl card-keys create --type 2 --count 10 --duration 30 --remark "spring promo"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.CardKeyCreate); err != nil {
				return err
			}
			keys, err := c.client.CreateCardKeys(cmd.Context(), req)
			if err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("Generated %d card keys", len(keys)))
			return c.printer.Print(keys, func() view.Table {
				t := view.Table{Headers: cardKeyHeaders}
				for _, k := range keys {
					t.Rows = append(t.Rows, cardKeyRow(k))
				}
				return t
			})
		},
	}
	cmd.Flags().IntVar(&req.CardType, "type", req.CardType, "card type: 1 register, 2 vip")
	cmd.Flags().IntVar(&req.Count, "count", req.Count, "number of keys (1-100)")
	cmd.Flags().IntVar(&req.Duration, "duration", req.Duration, "validity in days (1-365)")
	cmd.Flags().StringVar(&req.Remark, "remark", "", "remark")
	return cmd
}

func (c *Cli) newCardKeysGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a card key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.CardKeyView); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			k, err := c.client.GetCardKey(cmd.Context(), id)
			if err != nil {
				return err
			}
			row := cardKeyRow(*k)
			return c.printDetails(k, [][2]string{
				{"ID", row[0]},
				{"Code", k.CardCode},
				{"Type", row[2]},
				{"Duration", row[3] + " days"},
				{"Status", row[4]},
				{"Used by", row[5]},
				{"Used at", view.DateTimePtr(k.UsedAt)},
				{"Expires", view.DateTimePtr(k.ExpireAt)},
				{"Created", view.DateTime(k.CreatedAt)},
				{"Remark", k.Remark},
			})
		},
	}
}

func (c *Cli) disableCardKey(cmd *cobra.Command, id int) error {
	return c.client.DisableCardKey(cmd.Context(), id)
}

func (c *Cli) enableCardKey(cmd *cobra.Command, id int) error {
	return c.client.EnableCardKey(cmd.Context(), id)
}

func (c *Cli) newCardKeysToggleCmd(use, short string, action func(*cobra.Command, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.CardKeyEdit); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := action(cmd, id); err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("Card key %d %sd", id, use))
			return nil
		},
	}
}

func (c *Cli) newCardKeysDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a card key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.CardKeyDelete); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if ok, err := c.confirm(yes, fmt.Sprintf("Delete card key %d?", id)); err != nil || !ok {
				return err
			}
			if err := c.client.DeleteCardKey(cmd.Context(), id); err != nil {
				return err
			}
			c.notifier.Success("Card key deleted")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *Cli) newCardKeysStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show card key counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.CardKeyView); err != nil {
				return err
			}
			s, err := c.client.CardKeyStatistics(cmd.Context())
			if err != nil {
				return err
			}
			return c.printDetails(s, [][2]string{
				{"Total", view.Number(s.TotalCards)},
				{"Unused", view.Number(s.UnusedCards)},
				{"Used", view.Number(s.UsedCards)},
				{"Disabled", view.Number(s.DisabledCards)},
			})
		},
	}
}

func (c *Cli) newCardKeysValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate CODE",
		Short: "Check whether a card code can be used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.client.ValidateCardKey(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !res.Valid {
				c.notifier.Warning("Card key is not valid")
				return c.printDetails(res, [][2]string{{"Valid", "no"}})
			}
			return c.printDetails(res, [][2]string{
				{"Valid", "yes"},
				{"Type", view.CardKeyTypeText(res.CardType)},
				{"Duration", strconv.Itoa(res.Duration) + " days"},
			})
		},
	}
}

func (c *Cli) newCardKeysUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "use CODE",
		Short:   "Apply a VIP card key to your account",
		Example: `  hubctl card-keys use 'TL|ABCDEFGHIJKLMNOPQRSTUVWX'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireLogin(); err != nil {
				return err
			}
			user, err := c.auth.UseVIPCard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.notifier.Success("VIP activated")
			c.io.Printf("VIP: %s\n", view.VIPText(user, c.now()))
			return nil
		},
	}
}
