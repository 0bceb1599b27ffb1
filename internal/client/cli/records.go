package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/export"
	"github.com/iudanet/hubctl/internal/client/export/sqlite"
	"github.com/iudanet/hubctl/internal/client/permission"
	"github.com/iudanet/hubctl/internal/client/view"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

func (c *Cli) newAccessRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "access-records",
		Short:       "Browse and export the access log",
		Annotations: page("access-records"),
	}
	cmd.AddCommand(c.newAccessRecordsListCmd(), c.newAccessRecordsExportCmd())
	return cmd
}

func addAccessRecordFilters(cmd *cobra.Command, q *pkgapi.AccessRecordQuery) {
	cmd.Flags().IntVar(&q.UserID, "user-id", 0, "filter by user id")
	cmd.Flags().StringVar(&q.Resource, "resource", "", "filter by resource name")
	cmd.Flags().StringVar(&q.StartTime, "start", "", "start time, e.g. 2026-01-01 00:00:00")
	cmd.Flags().StringVar(&q.EndTime, "end", "", "end time")
}

func (c *Cli) newAccessRecordsListCmd() *cobra.Command {
	var q pkgapi.AccessRecordQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List access records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.StatsView); err != nil {
				return err
			}
			resp, err := c.client.ListAccessRecords(cmd.Context(), q)
			if err != nil {
				return err
			}
			headers := []string{"ID", "USER", "RESOURCE", "IP", "DEVICE", "TIME"}
			return view.PrintPage(c.printer, view.NewPage(resp), q.Page, q.PageSize, headers, func(r pkgapi.AccessRecord) []string {
				user := strconv.Itoa(r.UserID)
				if r.User != nil && r.User.Username != "" {
					user = r.User.Username
				}
				return []string{
					strconv.FormatInt(r.RecordID, 10),
					user,
					r.Resource,
					r.IPAddress,
					r.DeviceInfo,
					view.DateTime(r.AccessTime),
				}
			})
		},
	}
	addAccessRecordFilters(cmd, &q)
	addPageFlags(cmd, &q.PageParams)
	return cmd
}

func (c *Cli) newAccessRecordsExportCmd() *cobra.Command {
	var (
		q   pkgapi.AccessRecordQuery
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export access records into a local SQLite file",
		Long: `Fetch every page of the access log matching the filters and store it in a
SQLite database. Running the export again updates existing rows.`,
		Example: `  hubctl access-records export --out audit.db --start "2026-01-01 00:00:00"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.StatsView); err != nil {
				return err
			}
			ctx := cmd.Context()

			db, err := sqlite.New(ctx, out)
			if err != nil {
				return fmt.Errorf("failed to open export file: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					c.logger.Error("failed to close export file", "error", err)
				}
			}()

			saved, err := export.AccessRecords(ctx, c.client, db, q, func(saved, total int) {
				c.logger.Info("export progress", "saved", saved, "total", total)
			})
			if err != nil {
				return err
			}

			total, err := db.Count(ctx)
			if err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("Exported %s records to %s (%s in file)",
				view.Number(int64(saved)), out, view.Number(total)))
			return nil
		},
	}
	addAccessRecordFilters(cmd, &q)
	cmd.Flags().StringVar(&out, "out", "access-records.db", "SQLite file to write")
	cmd.Flags().IntVar(&q.PageSize, "page-size", export.DefaultPageSize, "records per request")
	return cmd
}

func (c *Cli) newConfigsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "configs",
		Short:       "View and change system configuration",
		Annotations: page("configs"),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.SystemView); err != nil {
				return err
			}
			configs, err := c.client.ListConfigs(cmd.Context())
			if err != nil {
				return err
			}
			return c.printer.Print(configs, func() view.Table {
				t := view.Table{Headers: []string{"KEY", "VALUE", "DESCRIPTION", "UPDATED"}}
				for _, cfg := range configs {
					t.Rows = append(t.Rows, []string{cfg.ConfigKey, cfg.ConfigValue, cfg.Description, view.DateTime(cfg.UpdatedAt)})
				}
				return t
			})
		},
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.require(permission.SystemEdit); err != nil {
				return err
			}
			if err := c.client.UpdateConfig(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("%s updated", args[0]))
			return nil
		},
	}

	cmd.AddCommand(list, set)
	return cmd
}

func (c *Cli) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "stats",
		Short:       "Show dashboard statistics",
		Annotations: page("stats"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.StatsView); err != nil {
				return err
			}
			stats, err := c.client.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			if c.printer.Format() != view.FormatTable {
				return c.printer.Print(stats, nil)
			}
			return c.renderStats(stats)
		},
	}
}

func (c *Cli) renderStats(s *pkgapi.Statistics) error {
	pairs := [][2]string{
		{"Total users", view.Number(s.TotalUsers)},
		{"Active users", view.Number(s.ActiveUsers)},
		{"Today access", view.Number(s.TodayAccess)},
	}
	if s.TotalUsers > 0 {
		pairs = append(pairs, [2]string{"Active share", view.Percent(float64(s.ActiveUsers)/float64(s.TotalUsers), 1)})
	}
	if v := s.VIPStats; v != nil {
		pairs = append(pairs,
			[2]string{"VIP users", view.Number(v.TotalVIP)},
			[2]string{"VIP expired", view.Number(v.ExpiredVIP)},
			[2]string{"VIP expiring in 3 days", view.Number(v.Expiring3Day)},
			[2]string{"VIP expiring in 7 days", view.Number(v.Expiring7Day)},
		)
	}
	if k := s.CardKeyStats; k != nil {
		pairs = append(pairs,
			[2]string{"Card keys", view.Number(k.TotalCards)},
			[2]string{"Card keys unused", view.Number(k.UnusedCards)},
			[2]string{"Card keys used", view.Number(k.UsedCards)},
		)
	}
	view.KeyValues(c.io, pairs)

	if len(s.TopUsers) > 0 {
		c.io.Println()
		c.io.Println("Top users:")
		t := view.Table{Headers: []string{"USER", "ACCESS"}}
		for _, u := range s.TopUsers {
			t.Rows = append(t.Rows, []string{u.Username, view.Number(u.AccessCount)})
		}
		if err := t.Render(c.io); err != nil {
			return err
		}
	}

	if len(s.AccessTrend) > 0 {
		c.io.Println()
		c.io.Println("Access trend:")
		t := view.Table{Headers: []string{"DATE", "COUNT"}}
		for _, p := range s.AccessTrend {
			t.Rows = append(t.Rows, []string{p.Date, view.Number(p.Count)})
		}
		if err := t.Render(c.io); err != nil {
			return err
		}
	}
	return nil
}
