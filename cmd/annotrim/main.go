// Command annotrim renames image/annotation pairs in a dataset directory
// to generated names and optionally quarantines stray files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/backmassage/annotrim/internal/check"
	"github.com/backmassage/annotrim/internal/config"
	"github.com/backmassage/annotrim/internal/display"
	"github.com/backmassage/annotrim/internal/logging"
	"github.com/backmassage/annotrim/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// errLogged marks an error the logger has already reported, so run does
// not print it a second time.
var errLogged = errors.New("already logged")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errLogged) {
			fmt.Fprintf(stderr, "annotrim: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := config.NewViper()
	var configFile string

	cmd := &cobra.Command{
		Use:           "annotrim [flags] <dir>",
		Short:         "Rename image/annotation pairs and sort stray files",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configFile, args[0])
			if err != nil {
				return err
			}
			return runPipeline(cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/annotrim/config.yaml)")
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}

	cmd.AddCommand(newCheckCmd(&configFile, stdout, stderr), newVersionCmd())
	return cmd
}

func newCheckCmd(configFile *string, stdout, stderr io.Writer) *cobra.Command {
	v := config.NewViper()
	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "Report pairs and stray files without changing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, *configFile, args[0])
			if err != nil {
				return err
			}
			cfg.LogFile = ""

			log, err := logging.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Close()
			log.SetOutput(stdout, stderr)

			dir, err := check.ResolveRoot(cfg.Root)
			if err != nil {
				log.Error("Path <%s> not a valid path", cfg.Root)
				return fmt.Errorf("%w: %w", errLogged, err)
			}
			if !check.RunCheck(cmd.Context(), dir, cfg.Recursive(), log) {
				return errLogged
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringP(config.KeyScan, "s", string(config.ScanShallow), "Scan type: shallow | deep")
	fs.Bool(config.KeyNoColor, false, "Disable colored logs")
	for _, key := range []string{config.KeyScan, config.KeyNoColor} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "annotrim %s (%s)\n", version, commit)
		},
	}
}

// loadConfig reads the optional config file into v, builds the Config, and
// validates it. A missing default config file is not an error.
func loadConfig(v *viper.Viper, configFile, dir string) (*config.Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "annotrim"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	cfg.Root = config.NormalizeDirArg(dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runPipeline(cfg *config.Config, stdout, stderr io.Writer) error {
	// Bootstrap errors before this point go to stderr via run; from here on
	// all output goes through the logger.
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()
	log.SetOutput(stdout, stderr)

	display.PrintBanner(stdout)
	log.Info("=== annotrim v%s (%s) ===", version, commit)

	// Cancel on SIGINT/SIGTERM so the run stops between files.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing current file")
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := pipeline.Run(ctx, cfg, log, pipeline.Options{}); err != nil {
		return fmt.Errorf("%w: %w", errLogged, err)
	}
	return nil
}
