package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portfolio-server/internal/config"
	"portfolio-server/internal/server"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRootCommand(loadConfig func() (*config.Config, error), out io.Writer, opts ...server.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio-server",
		Short: "Serve the portfolio directory to every machine on the local network",
		Long: `Serves the directory holding this executable on port 8080 of every
interface, with permissive CORS headers, caching disabled and a JSON listing
API at /api/listdir?path=<relative directory>.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadAndValidateConfig(loadConfig)
			if err != nil {
				return err
			}

			initializeLogger(out)
			logEffectiveConfig(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.Run(ctx, cfg, out, opts...); err != nil {
				return err
			}

			server.ReportStopped(out)
			return nil
		},
	}
}

// run executes the root command and returns the process exit code.
func run(ctx context.Context, args []string, loadConfig func() (*config.Config, error), out, errOut io.Writer, opts ...server.Option) int {
	cmd := newRootCommand(loadConfig, out, opts...)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		server.ReportError(errOut, err)
		return 1
	}
	return 0
}

func loadAndValidateConfig(loadConfig func() (*config.Config, error)) (*config.Config, error) {
	cfg, err := loadConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, errors.Wrap(err, "configuration error")
	}
	return cfg, nil
}

func initializeLogger(out io.Writer) {
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
}

func logEffectiveConfig(cfg *config.Config) {
	log.Println("Effective configuration:")
	log.Printf("  Root Directory: %s\n", cfg.RootDirectory)
	log.Printf("  Bind Address: %s\n", cfg.Addr())
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], config.Default, color.Output, color.Error))
}
