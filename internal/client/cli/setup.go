package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/hubctl/internal/client/api"
	"github.com/iudanet/hubctl/internal/client/permission"
	"github.com/iudanet/hubctl/internal/client/view"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// setupFile файл мастера настройки: учетная запись администратора и конфигурация backend.
// Секцию config можно получить командой `hubctl setup config`.
type setupFile struct {
	AdminUser  string             `yaml:"admin_user"`
	AdminPass  string             `yaml:"admin_pass"`
	AdminEmail string             `yaml:"admin_email"`
	License    string             `yaml:"license"`
	Config     pkgapi.SetupConfig `yaml:"config"`
}

func readSetupFile(path string) (*setupFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read setup file: %w", err)
	}
	var f setupFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse setup file: %w", err)
	}
	return &f, nil
}

func (c *Cli) newSetupCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "First-run setup wizard of the backend",
		Long: `Steps of the setup wizard as separate commands:

  hubctl setup status
  hubctl setup config > setup.yaml       # edit, add admin_user/admin_pass/admin_email
  hubctl setup test-database --file setup.yaml
  hubctl setup test-emby --file setup.yaml
  hubctl setup test-email --file setup.yaml
  hubctl setup finish --file setup.yaml --wait`,
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "setup.yaml", "setup file")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether the backend is initialized",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.client.SetupStatus(cmd.Context())
			if err != nil {
				return err
			}
			return c.printDetails(s, [][2]string{{"Initialized", yesNo(s.Initialized)}})
		},
	}

	config := &cobra.Command{
		Use:   "config",
		Short: "Print the default backend configuration as a setup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.client.SetupConfig(cmd.Context())
			if err != nil {
				return err
			}
			f := setupFile{Config: *cfg}
			if c.printer.Format() == view.FormatJSON {
				return c.printer.Print(f.Config, nil)
			}
			// Табличного вида у конфигурации нет, выводим готовый к правке YAML
			return view.NewPrinter(c.io, view.FormatYAML).Print(f, nil)
		},
	}

	license := &cobra.Command{
		Use:   "verify-license [LICENSE]",
		Short: "Verify a license code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code string
			if len(args) == 1 {
				code = args[0]
			} else {
				f, err := readSetupFile(file)
				if err != nil {
					return err
				}
				code = f.License
			}
			msg, err := c.client.VerifyLicense(cmd.Context(), code)
			if err != nil {
				return err
			}
			c.notifier.Success(msg)
			return nil
		},
	}

	testDatabase := c.setupTestCmd("test-database", "Test the database connection", &file,
		func(cmd *cobra.Command, f *setupFile) (string, error) {
			return c.client.TestDatabase(cmd.Context(), f.Config.Database)
		})
	testEmby := c.setupTestCmd("test-emby", "Test the Emby connection", &file,
		func(cmd *cobra.Command, f *setupFile) (string, error) {
			return c.client.TestEmbySetup(cmd.Context(), f.Config.Emby)
		})
	testEmail := c.setupTestCmd("test-email", "Test the SMTP connection", &file,
		func(cmd *cobra.Command, f *setupFile) (string, error) {
			return c.client.TestEmailSetup(cmd.Context(), f.Config.Email)
		})

	var (
		wait     bool
		interval time.Duration
		attempts int
	)
	finish := &cobra.Command{
		Use:   "finish",
		Short: "Save the configuration, create the admin and restart the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readSetupFile(file)
			if err != nil {
				return err
			}
			msg, err := c.client.FinishSetup(cmd.Context(), pkgapi.FinishSetupRequest{
				AdminUser:  f.AdminUser,
				AdminPass:  f.AdminPass,
				AdminEmail: f.AdminEmail,
				Config:     f.Config,
			})
			if err != nil {
				return err
			}
			c.notifier.Success(msg)
			if !wait {
				return nil
			}

			c.notifier.Info("Waiting for the backend to restart...")
			if err := c.client.WaitReady(cmd.Context(), interval, attempts); err != nil {
				return err
			}
			c.notifier.Success("Backend is ready, run `hubctl login`")
			return nil
		},
	}
	finish.Flags().BoolVar(&wait, "wait", false, "wait until the backend is back up")
	finish.Flags().DurationVar(&interval, "wait-interval", api.DefaultReadyInterval, "poll interval while waiting")
	finish.Flags().IntVar(&attempts, "wait-attempts", api.DefaultReadyAttempts, "poll attempts while waiting")

	cmd.AddCommand(status, config, license, testDatabase, testEmby, testEmail, finish)
	return cmd
}

func (c *Cli) setupTestCmd(
	use, short string,
	file *string,
	run func(*cobra.Command, *setupFile) (string, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readSetupFile(*file)
			if err != nil {
				return err
			}
			msg, err := run(cmd, f)
			if err != nil {
				return err
			}
			c.notifier.Success(msg)
			return nil
		},
	}
}

func (c *Cli) newEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Email settings",
	}
	var to string
	test := &cobra.Command{
		Use:   "test",
		Short: "Send a test email with the current SMTP settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.require(permission.SystemEdit); err != nil {
				return err
			}
			msg, err := c.client.TestEmail(cmd.Context(), pkgapi.SendCodeRequest{Email: to})
			if err != nil {
				return err
			}
			c.notifier.Success(msg)
			return nil
		},
	}
	test.Flags().StringVar(&to, "to", "", "recipient address")
	_ = test.MarkFlagRequired("to")
	cmd.AddCommand(test)
	return cmd
}

func (c *Cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Annotations: noSession(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.io.Println("hubctl - Emby Hub administration client")
			c.io.Printf("Version:    %s\n", c.build.Version)
			c.io.Printf("Build Date: %s\n", c.build.BuildDate)
			c.io.Printf("Git Commit: %s\n", c.build.GitCommit)
			return nil
		},
	}
}
