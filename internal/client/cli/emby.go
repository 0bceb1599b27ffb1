package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/api"
	"github.com/iudanet/hubctl/internal/client/permission"
	"github.com/iudanet/hubctl/internal/client/view"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// ticksPerSecond единица RunTimeTicks в Emby - 100 наносекунд
const ticksPerSecond = 10_000_000

func (c *Cli) newEmbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "emby",
		Short:       "Emby server connection and user synchronization",
		Annotations: page("emby"),
	}

	test := &cobra.Command{
		Use:   "test",
		Short: "Test the connection to the Emby server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.EmbyConfig); err != nil {
				return err
			}
			msg, err := c.client.TestEmby(cmd.Context())
			if err != nil {
				return err
			}
			c.notifier.Success(msg)
			return nil
		},
	}

	sync := &cobra.Command{
		Use:   "sync",
		Short: "Import Emby users into the hub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.EmbySync); err != nil {
				return err
			}
			res, err := c.client.SyncEmbyUsers(cmd.Context())
			if err != nil {
				return err
			}
			c.notifier.Success(fmt.Sprintf("Synchronized %d users", res.SyncCount))
			return nil
		},
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "List users on the Emby server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.EmbyView); err != nil {
				return err
			}
			list, err := c.client.ListEmbyUsers(cmd.Context())
			if err != nil {
				return err
			}
			return c.printer.Print(list, func() view.Table {
				t := view.Table{Headers: []string{"ID", "NAME", "PASSWORD", "LAST LOGIN", "LAST ACTIVITY"}}
				for _, u := range list {
					t.Rows = append(t.Rows, []string{u.ID, u.Name, yesNo(u.HasPassword), c.embyDate(u.LastLoginDate), c.embyDate(u.LastActivityDate)})
				}
				return t
			})
		},
	}

	cmd.AddCommand(test, sync, users)
	return cmd
}

func (c *Cli) newMediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "media",
		Short:       "Browse Emby media libraries",
		Annotations: page("media"),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Медиатеки доступны любому вошедшему пользователю
			if err := c.setup(cmd, args); err != nil {
				return err
			}
			return c.requireLogin()
		},
	}
	cmd.AddCommand(
		c.newMediaServerURLCmd(),
		c.newMediaLibrariesCmd(),
		c.newMediaItemsCmd(),
		c.newMediaItemCmd(),
		c.newMediaLatestCmd(),
		c.newMediaImageURLCmd(),
	)
	return cmd
}

func (c *Cli) newMediaServerURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server-url",
		Short: "Show the public Emby server URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.client.MediaServerURL(cmd.Context())
			if err != nil {
				return err
			}
			c.io.Println(u)
			return nil
		},
	}
}

func (c *Cli) newMediaLibrariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "libraries",
		Short: "List media libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			libs, err := c.client.ListLibraries(cmd.Context())
			if err != nil {
				return err
			}
			return c.printer.Print(libs, func() view.Table {
				t := view.Table{Headers: []string{"ID", "NAME", "TYPE", "LOCATIONS"}}
				for _, l := range libs {
					t.Rows = append(t.Rows, []string{l.LibraryID(), l.Name, l.CollectionType, strings.Join(l.Locations, ", ")})
				}
				return t
			})
		},
	}
}

var mediaHeaders = []string{"ID", "NAME", "TYPE", "YEAR", "RATING", "RUNTIME"}

func mediaRow(m pkgapi.MediaItem) []string {
	name := m.Name
	if m.SeriesName != "" {
		name = m.SeriesName + " / " + m.Name
	}
	year := ""
	if m.ProductionYear > 0 {
		year = strconv.Itoa(m.ProductionYear)
	}
	rating := ""
	if m.CommunityRating > 0 {
		rating = strconv.FormatFloat(m.CommunityRating, 'f', 1, 64)
	}
	return []string{m.ID, name, m.Type, year, rating, runtimeText(m.RunTimeTicks)}
}

// runtimeText переводит RunTimeTicks в "1h 42m"
func runtimeText(ticks int64) string {
	if ticks <= 0 {
		return ""
	}
	d := time.Duration(ticks/ticksPerSecond) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func (c *Cli) newMediaItemsCmd() *cobra.Command {
	var q pkgapi.MediaItemsQuery
	cmd := &cobra.Command{
		Use:     "items",
		Short:   "List items of a library",
		Example: `  hubctl media items --parent 3 --type Movie --sort-by DateCreated --sort-order Descending`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.client.ListMediaItems(cmd.Context(), q)
			if err != nil {
				return err
			}
			return view.PrintPage(c.printer, view.NewPage(resp), q.Page, q.PageSize, mediaHeaders, mediaRow)
		},
	}
	cmd.Flags().StringVar(&q.ParentID, "parent", "", "library id")
	cmd.Flags().StringVar(&q.Type, "type", "", "item type, e.g. Movie, Series")
	cmd.Flags().StringVar(&q.SortBy, "sort-by", "", "sort field, e.g. SortName, DateCreated")
	cmd.Flags().StringVar(&q.SortOrder, "sort-order", "", "Ascending or Descending")
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "search term")
	addPageFlags(cmd, &q.PageParams)
	return cmd
}

func (c *Cli) newMediaItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item ID",
		Short: "Show a media item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := c.client.GetMediaItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			row := mediaRow(*item)
			return c.printDetails(item, [][2]string{
				{"ID", item.ID},
				{"Name", row[1]},
				{"Type", item.Type},
				{"Year", row[3]},
				{"Rating", row[4]},
				{"Official rating", item.OfficialRating},
				{"Runtime", row[5]},
				{"Genres", strings.Join(item.Genres, ", ")},
				{"Premiere", item.PremiereDate},
				{"Overview", item.Overview},
			})
		},
	}
}

func (c *Cli) newMediaLatestCmd() *cobra.Command {
	var q pkgapi.LatestMediaQuery
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "List recently added items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := c.client.LatestMedia(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.printer.Print(items, func() view.Table {
				t := view.Table{Headers: mediaHeaders}
				for _, m := range items {
					t.Rows = append(t.Rows, mediaRow(m))
				}
				return t
			})
		},
	}
	cmd.Flags().StringVar(&q.ParentID, "parent", "", "library id")
	cmd.Flags().IntVar(&q.Limit, "limit", 16, "number of items")
	return cmd
}

func (c *Cli) newMediaImageURLCmd() *cobra.Command {
	var (
		imageType string
		tag       string
		maxWidth  int
	)
	cmd := &cobra.Command{
		Use:   "image-url ID",
		Short: "Print the image URL of a media item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverURL, err := c.client.MediaServerURL(cmd.Context())
			if err != nil {
				return err
			}
			c.io.Println(api.ImageURL(serverURL, args[0], imageType, tag, maxWidth))
			return nil
		},
	}
	cmd.Flags().StringVar(&imageType, "type", "Primary", "image type: Primary, Backdrop, Thumb")
	cmd.Flags().StringVar(&tag, "tag", "", "image tag for cache busting")
	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "maximum width in pixels")
	return cmd
}

// embyDate форматирует дату Emby как относительное время
func (c *Cli) embyDate(raw string) string {
	if raw == "" {
		return "never"
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	return view.RelativeTime(t, c.now())
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
