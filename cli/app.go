// Package cli exposes every order, query and strategy operation as a cobra
// subcommand, plus an interactive menu that dispatches to the same handlers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"futuresBot/config"
	"futuresBot/exchange"
	"futuresBot/logger"
	"futuresBot/util"
)

// ClientFactory builds the exchange client for one command run.
type ClientFactory func(ctx context.Context, cfg config.Exchange, log *zap.SugaredLogger) (exchange.ExchangeClient, error)

func defaultClientFactory(ctx context.Context, cfg config.Exchange, log *zap.SugaredLogger) (exchange.ExchangeClient, error) {
	c, err := exchange.NewFuturesClient(ctx, cfg, exchange.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return c, nil
}

type App struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	envFile   string
	cfg       config.Config
	hasConfig bool
	log       *zap.SugaredLogger
	sync      func() error

	newClient ClientFactory
	clock     util.Clock
}

type Option func(*App)

// WithConfig skips .env and environment loading.
func WithConfig(cfg config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
		a.hasConfig = true
	}
}

// WithLogger skips building the file logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *App) { a.log = log }
}

func WithClientFactory(f ClientFactory) Option {
	return func(a *App) { a.newClient = f }
}

func WithClock(clock util.Clock) Option {
	return func(a *App) { a.clock = clock }
}

func NewApp(in io.Reader, out, errOut io.Writer, opts ...Option) *App {
	a := &App{
		in:        in,
		out:       out,
		errOut:    errOut,
		newClient: defaultClientFactory,
		clock:     util.RealClock{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// reportedError has already been printed to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the command line and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.Root()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if a.sync != nil {
		_ = a.sync()
	}
	if err == nil {
		return 0
	}
	var rep reportedError
	if !errors.As(err, &rep) {
		fmt.Fprintf(a.errOut, "Error: %v\n", err)
	}
	return 1
}

func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:               "futuresBot",
		Short:             "Binance USDT-M futures order tool",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup() },
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "path to a .env file (default ./.env)")

	root.AddCommand(
		a.marketCmd(),
		a.limitCmd(),
		a.closeCmd(),
		a.priceCmd(),
		a.infoCmd(),
		a.statsCmd(),
		a.orderCmd(),
		a.ocoCmd(),
		a.stopLimitCmd(),
		a.twapCmd(),
		a.gridCmd(),
		a.cancelCmd(),
		a.cancelAllCmd(),
		a.positionsCmd(),
		a.balanceCmd(),
		a.openOrdersCmd(),
		a.menuCmd(),
	)
	return root
}

func (a *App) setup() error {
	if !a.hasConfig {
		a.cfg = config.LoadFromEnv(a.envFile)
		a.hasConfig = true
	}
	if a.log == nil {
		zl, err := logger.New(a.cfg.Log)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		a.log = zl.Sugar()
		a.sync = zl.Sync
	}
	return nil
}

func (a *App) client(ctx context.Context) (exchange.ExchangeClient, error) {
	return a.newClient(ctx, a.cfg.Exchange, a.log)
}

// handler validates its own arguments before it touches the network.
type handler func(ctx context.Context, args []string) error

// command wires a handler with a fixed argument count; a failure prints
// "<failed line>" and "Error: ..." and is logged.
func (a *App) command(use, short, failed string, nargs int, h handler) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.Name(), failed, nargs, args, h)
		},
	}
}

func (a *App) run(ctx context.Context, name, failed string, nargs int, args []string, h handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	err := checkArgs(nargs, args)
	if err == nil {
		err = h(ctx, args)
	}
	if err == nil {
		return nil
	}
	a.log.Errorw("command_failed", "command", name, "err", err)
	if failed != "" {
		fmt.Fprintln(a.out, failed)
	}
	fmt.Fprintf(a.out, "Error: %v\n", err)
	return reportedError{err}
}

func checkArgs(n int, args []string) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

func (a *App) printf(format string, v ...any) {
	fmt.Fprintf(a.out, format, v...)
}

func (a *App) println(v ...any) {
	fmt.Fprintln(a.out, v...)
}

// Stdio wires the app to the process streams.
func Stdio(opts ...Option) *App {
	return NewApp(os.Stdin, os.Stdout, os.Stderr, opts...)
}
