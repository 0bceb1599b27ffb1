package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/token"
	"github.com/iudanet/hubctl/internal/validation"
	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// EnvPassword пароль для неинтерактивного входа
const EnvPassword = "HUBCTL_PASSWORD"

// passwordSource источники пароля
type passwordSource struct {
	FromFile string
	FromArgs string
}

// readPassword получает пароль из источников в порядке приоритета:
// 1. Переменная окружения HUBCTL_PASSWORD
// 2. Файл из --password-file
// 3. Параметр --password
// 4. Интерактивный ввод
func (c *Cli) readPassword(src passwordSource, prompt string) (string, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv(EnvPassword); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if src.FromFile != "" {
		content, err := os.ReadFile(src.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: CLI parameter
	if src.FromArgs != "" {
		return src.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// readNewPassword читает новый пароль с подтверждением и показывает его надежность.
// Пароль из флага или окружения не переспрашивается.
func (c *Cli) readNewPassword(src passwordSource) (string, error) {
	interactive := os.Getenv(EnvPassword) == "" && src.FromFile == "" && src.FromArgs == ""

	password, err := c.readPassword(src, "New password: ")
	if err != nil {
		return "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", err
	}

	if interactive {
		strength := validation.PasswordStrength(password)
		c.io.Printf("Password strength: %s\n", strength.Level)
		for _, tip := range strength.Tips {
			c.io.Printf("  - %s\n", tip)
		}

		confirm, err := c.io.ReadPassword("Repeat password: ")
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		if confirm != password {
			return "", fmt.Errorf("%w: passwords do not match", validation.ErrValidation)
		}
	}
	return password, nil
}

func addPasswordFlags(cmd *cobra.Command, src *passwordSource) {
	cmd.Flags().StringVar(&src.FromArgs, "password", "", "password (not recommended, use "+EnvPassword+" or --password-file)")
	cmd.Flags().StringVar(&src.FromFile, "password-file", "", "read password from file")
}

func (c *Cli) newLoginCmd() *cobra.Command {
	var (
		username string
		src      passwordSource
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend",
		Example: `  hubctl login
  hubctl login -u admin --password-file ~/.hubctl-password
  HUBCTL_PASSWORD=secret hubctl --server https://hub.example.com login -u admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runLogin(cmd.Context(), username, src)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	addPasswordFlags(cmd, &src)
	return cmd
}

func (c *Cli) runLogin(ctx context.Context, username string, src passwordSource) error {
	if username == "" {
		prompt := "Username: "
		last := c.auth.LastUsername(ctx)
		if last != "" {
			prompt = fmt.Sprintf("Username [%s]: ", last)
		}
		input, err := c.io.ReadInput(prompt)
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = input
		if username == "" {
			username = last
		}
	}

	password, err := c.readPassword(src, "Password: ")
	if err != nil {
		return err
	}

	user, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.notifier.Success("Login successful")
	if user != nil {
		c.io.Printf("Username: %s\n", user.Username)
		if user.Role != nil {
			c.io.Printf("Role:     %s\n", user.Role.RoleName)
		}
	}
	return nil
}

func (c *Cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and remove the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			c.notifier.Success("Logged out")
			return nil
		},
	}
}

func (c *Cli) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user profile from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireLogin(); err != nil {
				return err
			}
			user, err := c.auth.RefreshProfile(cmd.Context())
			if err != nil {
				return err
			}
			return c.printUser(user)
		},
	}
}

func (c *Cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local session status without contacting the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runStatus()
		},
	}
}

func (c *Cli) runStatus() error {
	c.io.Println("=== Session Status ===")
	c.io.Printf("Server: %s\n", c.client.BaseURL())

	if !c.session.IsAuthenticated() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'hubctl login' to authenticate.")
		return nil
	}

	c.io.Println("Status: Authenticated")
	if user := c.session.UserInfo(); user != nil {
		c.io.Printf("Username: %s\n", user.Username)
		if user.Role != nil {
			c.io.Printf("Role: %s\n", user.Role.RoleName)
		}
	}

	expiresAt, err := token.ExpiresAt(c.session.Token())
	if err != nil {
		c.io.Println("Token expires: unknown")
		return nil
	}
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

	remaining := expiresAt.Sub(c.now())
	switch {
	case remaining <= 0:
		c.io.Println("! Token has expired. Please login again.")
	case remaining < c.cfg.RefreshThreshold:
		c.io.Printf("Time remaining: %s (will be renewed on next request)\n", remaining.Round(time.Second))
	default:
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	}
	return nil
}

func (c *Cli) newRegisterCmd() *cobra.Command {
	var (
		req      pkgapi.RegisterRequest
		src      passwordSource
		sendCode bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account with an email verification code",
		Example: `  hubctl register --email me@example.com --send-code
  hubctl register --email me@example.com --code 123456 --username alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if sendCode {
				if err := c.client.SendCode(ctx, pkgapi.SendCodeRequest{Email: req.Email, Type: "register"}); err != nil {
					return err
				}
				c.notifier.Success("Verification code sent to " + req.Email)
				return nil
			}

			password, err := c.readNewPassword(src)
			if err != nil {
				return err
			}
			req.Password = password

			resp, err := c.auth.Register(ctx, req)
			if err != nil {
				return err
			}
			msg := resp.Message
			if msg == "" {
				msg = "Registration successful"
			}
			c.notifier.Success(msg)
			c.io.Printf("User ID: %d\n", resp.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Code, "code", "", "verification code from the email")
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().BoolVar(&sendCode, "send-code", false, "only send a verification code to --email")
	addPasswordFlags(cmd, &src)
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *Cli) newPasswordCmd() *cobra.Command {
	var src passwordSource
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password of the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireLogin(); err != nil {
				return err
			}
			password, err := c.readNewPassword(src)
			if err != nil {
				return err
			}
			if err := c.auth.ChangePassword(cmd.Context(), password); err != nil {
				return err
			}
			c.notifier.Success("Password changed")
			return nil
		},
	}
	addPasswordFlags(cmd, &src)
	return cmd
}

func (c *Cli) newForgotPasswordCmd() *cobra.Command {
	var (
		email    string
		code     string
		sendCode bool
		src      passwordSource
	)
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Reset a forgotten password with an email code",
		Example: `  hubctl forgot-password --email me@example.com --send-code
  hubctl forgot-password --email me@example.com --code 123456`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if sendCode {
				if err := c.client.SendResetCode(ctx, pkgapi.SendCodeRequest{Email: email}); err != nil {
					return err
				}
				c.notifier.Success("Reset code sent to " + email)
				return nil
			}

			password, err := c.readNewPassword(src)
			if err != nil {
				return err
			}
			req := pkgapi.ResetPasswordRequest{Email: email, Code: code, Password: password}
			if err := c.client.ResetPassword(ctx, req); err != nil {
				return err
			}
			c.notifier.Success("Password reset, you can log in now")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&code, "code", "", "reset code from the email")
	cmd.Flags().BoolVar(&sendCode, "send-code", false, "only send a reset code to --email")
	addPasswordFlags(cmd, &src)
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
