// Package cli реализует команды hubctl поверх API клиента Emby Hub
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/hubctl/internal/client/api"
	"github.com/iudanet/hubctl/internal/client/auth"
	"github.com/iudanet/hubctl/internal/client/config"
	"github.com/iudanet/hubctl/internal/client/iocli"
	"github.com/iudanet/hubctl/internal/client/logging"
	"github.com/iudanet/hubctl/internal/client/pageview"
	"github.com/iudanet/hubctl/internal/client/permission"
	"github.com/iudanet/hubctl/internal/client/session"
	"github.com/iudanet/hubctl/internal/client/storage"
	"github.com/iudanet/hubctl/internal/client/storage/boltdb"
	"github.com/iudanet/hubctl/internal/client/view"
	"github.com/iudanet/hubctl/internal/validation"
)

// EnvSessionPassphrase включает шифрование токена на диске
const EnvSessionPassphrase = "HUBCTL_SESSION_PASSPHRASE"

// Аннотации команд
const (
	// annotationNoSession - команде не нужны хранилище и API клиент
	annotationNoSession = "hubctl/no-session"
	// annotationPage - раздел для журнала доступа
	annotationPage = "hubctl/page"
)

// ErrNotLoggedIn команда требует входа, а сессии нет
var ErrNotLoggedIn = errors.New("not logged in, run `hubctl login` first")

// BuildInfo сведения о сборке для команды version
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// globalFlags значения общих флагов. Остальные общие флаги читает config.Load.
type globalFlags struct {
	configFile string
	verbose    bool
}

// Cli держит зависимости одного запуска hubctl
type Cli struct {
	io       iocli.IO
	errOut   io.Writer
	build    BuildInfo
	now      func() time.Time
	flags    globalFlags
	cfg      *config.Config
	logger   *slog.Logger
	closers  []io.Closer
	session  *session.Store
	client   *api.Client
	auth     *auth.Service
	perms    *permission.Checker
	recorder *pageview.Recorder
	notifier *view.Notifier
	printer  *view.Printer
}

// New создает Cli. Вывод команд идет в out, журнал и уведомления - в errOut.
func New(in io.Reader, out, errOut io.Writer, build BuildInfo) *Cli {
	return &Cli{
		io:     iocli.New(in, out),
		errOut: errOut,
		build:  build,
		now:    time.Now,
	}
}

// Execute выполняет команду. Ошибка уже показана пользователю.
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.Root()
	root.SetArgs(args)
	root.SetOut(c.io)
	root.SetErr(c.errOut)

	err := root.ExecuteContext(ctx)
	c.close()

	if err != nil && !reported(err) {
		_, _ = fmt.Fprintf(c.errOut, "Error: %v\n", err)
	}
	return err
}

// Root строит дерево команд
func (c *Cli) Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "hubctl",
		Short: "Emby Hub administration client",
		Long: `hubctl manages an Emby Hub backend: users, roles, card keys,
Emby synchronization, media libraries, access records and system settings.

Session token is stored in a local BoltDB file. Set ` + EnvSessionPassphrase + `
to keep it encrypted at rest.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configFile, "config", "", "config file (default "+filepath.Join(config.DefaultDir(), "config.yaml")+")")
	pf.String("server", config.DefaultServer, "backend URL")
	pf.String("api-prefix", config.DefaultAPIPrefix, "API path prefix")
	pf.String("db", "", "path to local session database")
	pf.Duration("timeout", config.DefaultTimeout, "request timeout")
	pf.Duration("refresh-threshold", config.DefaultRefreshThreshold, "renew token when it expires sooner than this")
	pf.String("log-file", "", "write logs to file instead of stderr")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	pf.Bool("no-color", false, "disable colored output")
	pf.StringP("output", "o", config.DefaultOutput, "output format: table, json, yaml")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newWhoamiCmd(),
		c.newStatusCmd(),
		c.newRegisterCmd(),
		c.newPasswordCmd(),
		c.newForgotPasswordCmd(),
		c.newUsersCmd(),
		c.newRolesCmd(),
		c.newPermissionsCmd(),
		c.newAccessRecordsCmd(),
		c.newConfigsCmd(),
		c.newStatsCmd(),
		c.newEmbyCmd(),
		c.newMediaCmd(),
		c.newCardKeysCmd(),
		c.newSetupCmd(),
		c.newEmailCmd(),
		c.newVersionCmd(),
	)
	return root
}

// setup загружает конфигурацию и собирает зависимости перед запуском команды
func (c *Cli) setup(cmd *cobra.Command, _ []string) error {
	if annotation(cmd, annotationNoSession) != "" {
		return nil
	}
	ctx := cmd.Context()

	cfg, err := config.Load(c.flags.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger, logCloser, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Verbose:    c.flags.verbose,
	}, c.errOut)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	c.closers = append(c.closers, logCloser)
	c.logger = logger
	slog.SetDefault(logger)

	format, err := view.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	c.notifier = view.NewNotifier(c.errOut, cfg.NoColor)
	c.printer = view.NewPrinter(c.io, format)

	if err := os.MkdirAll(filepath.Dir(cfg.DB), 0o700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	boltStorage, err := boltdb.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.closers = append(c.closers, boltStorage)

	// По умолчанию токен лежит в файле как есть, с парольной фразой - запечатан
	var sessionStorage storage.SessionStorage = boltStorage
	if passphrase := os.Getenv(EnvSessionPassphrase); passphrase != "" {
		sealed, err := session.NewSealedStorage(ctx, boltStorage, boltStorage, passphrase)
		if err != nil {
			return fmt.Errorf("failed to init sealed storage: %w", err)
		}
		sessionStorage = sealed
	}

	c.session = session.New(sessionStorage)
	if err := c.session.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	clientID, err := session.ClientID(ctx, boltStorage)
	if err != nil {
		return fmt.Errorf("failed to get client id: %w", err)
	}

	c.client = api.NewClient(cfg.Server, c.session,
		api.WithPrefix(cfg.APIPrefix),
		api.WithTimeout(cfg.Timeout),
		api.WithRefreshThreshold(cfg.RefreshThreshold),
		api.WithNotifier(c.notifier),
		api.WithNavigator(&loginNavigator{out: c.errOut}),
		api.WithLogger(logger),
		api.WithClientID(clientID),
	)
	c.auth = auth.NewService(c.client, c.session, boltStorage)
	c.perms = permission.NewChecker(c.session)
	c.recorder = pageview.NewRecorder(c.client, c.session, "", c.deviceInfo(), logger)

	if page := annotation(cmd, annotationPage); page != "" {
		c.recorder.Record(ctx, page)
	}
	return nil
}

// close дожидается фоновых записей и закрывает ресурсы в обратном порядке
func (c *Cli) close() {
	if c.recorder != nil {
		c.recorder.Wait()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			slog.Error("failed to close resource", "error", err)
		}
	}
	c.closers = nil
}

func (c *Cli) deviceInfo() string {
	version := c.build.Version
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("hubctl/%s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

// requireLogin проверяет наличие сессии
func (c *Cli) requireLogin() error {
	if !c.session.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

// require проверяет вход и наличие хотя бы одного из прав.
// Это подсказка для пользователя: окончательно права проверяет backend.
func (c *Cli) require(keys ...string) error {
	if err := c.requireLogin(); err != nil {
		return err
	}
	if len(keys) > 0 && !c.perms.HasAny(keys...) {
		return fmt.Errorf("%w: requires %s", api.ErrPermissionDenied, strings.Join(keys, " or "))
	}
	return nil
}

// loginNavigator сообщает о потере сессии один раз за запуск
type loginNavigator struct {
	out  io.Writer
	once sync.Once
}

func (n *loginNavigator) ToLogin() {
	n.once.Do(func() {
		_, _ = fmt.Fprintln(n.out, "session expired, run `hubctl login`")
	})
}

// reported сообщает, показал ли API клиент уведомление об этой ошибке
func reported(err error) bool {
	var be *api.BusinessError
	if errors.As(err, &be) {
		return true
	}
	var se *api.StatusError
	if errors.As(err, &se) {
		return true
	}
	return errors.Is(err, api.ErrNetworkUnavailable) || errors.Is(err, api.ErrMalformedResponse)
}

// annotation ищет аннотацию у команды и ее родителей
func annotation(cmd *cobra.Command, key string) string {
	for p := cmd; p != nil; p = p.Parent() {
		if v, ok := p.Annotations[key]; ok {
			return v
		}
	}
	return ""
}

func page(name string) map[string]string {
	return map[string]string{annotationPage: name}
}

func noSession() map[string]string {
	return map[string]string{annotationNoSession: "true"}
}

// parseID разбирает числовой идентификатор из аргумента
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", validation.ErrValidation, arg)
	}
	return id, nil
}

// parseIDs разбирает список идентификаторов
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
