package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/listbench/internal/bench"
	"github.com/bft-labs/listbench/internal/cliconfig"
	"github.com/bft-labs/listbench/internal/logging"
	"github.com/bft-labs/listbench/internal/watch"
	"github.com/bft-labs/listbench/pkg/log"
)

const longHelp = `
Build a container of N integers (0..N-1) and, when sumFlag is nonzero, sum it
once. Nothing is printed on success; time the process externally.

Options come from flags, LISTBENCH_* environment variables and
$HOME/.listbench/config.toml, in that order of precedence.`

var exampleUsage = strings.TrimSpace(`
  listbench 1000000 1
  listbench --container map 1000000 0
  listbench --report --log-level info 50000000 1
  listbench -1 1
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries what RunE needs between invocations of the same command.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  zerolog.Logger
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "listbench <N> <sumFlag>",
		Short:         "Measure list and map construction and iteration cost",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := cliconfig.ParseArgs(args)
			if err != nil {
				return err
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := a.cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			flagCfg := a.cfg
			cfg, err := resolveConfig(flagCfg, cfgFile, changed)
			if err != nil {
				return err
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			logger.Debug().Interface("config", cfg).Int("n", parsed.N).Bool("sum", parsed.Sum).Msg("configuration")

			adapter := log.NewZerologAdapter(logger)
			if err := runOnce(cfg, parsed, adapter); err != nil {
				return err
			}

			if !cfg.Watch {
				return nil
			}
			if !cliconfig.FileExists(cfgFile) {
				return fmt.Errorf("watch: config file %q does not exist", cfgFile)
			}

			return watch.Run(cmd.Context(), cfgFile, cfg.Debounce, adapter, func() error {
				next, err := resolveConfig(flagCfg, cfgFile, changed)
				if err != nil {
					return err
				}
				return runOnce(next, parsed, adapter)
			})
		},
	}

	root.Flags().StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.listbench/config.toml)")
	root.Flags().StringVar(&a.cfg.Container, "container", a.cfg.Container, "workload to run: list or map")
	root.Flags().BoolVar(&a.cfg.Report, "report", a.cfg.Report, "log phase timings and the sum at info level (raises the default log level to info)")
	root.Flags().StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (trace, debug, info, warn, error; default warn, or info with --report)")
	root.Flags().StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format: auto, console or json")
	root.Flags().BoolVar(&a.cfg.Watch, "watch", a.cfg.Watch, "rerun whenever the config file changes")
	root.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period before a watched change reruns")

	return root
}

// resolveConfig layers the config file and environment under the flag values
// in base, then validates the result.
func resolveConfig(base cliconfig.Config, cfgFile string, changed map[string]bool) (cliconfig.Config, error) {
	cfg := base
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runOnce(cfg cliconfig.Config, args cliconfig.Args, logger log.Logger) error {
	w, err := bench.ParseWorkload(cfg.Container)
	if err != nil {
		return err
	}
	res := bench.Run(w, args.N, args.Sum, logger)
	if cfg.Report {
		bench.Report(logger, res)
	}
	return nil
}

func main() {
	logger, err := logging.New(os.Stderr, zerolog.ErrorLevel.String(), logging.FormatAuto)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a := &app{cfg: cliconfig.DefaultConfig(), logger: logger}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newRootCommand(a), os.Args[1:]); err != nil {
		a.logger.Error().Err(err).Msg("listbench")
		stop()
		os.Exit(1)
	}
}
