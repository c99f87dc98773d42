package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akoreshkov/adbhelper/internal/adb"
	"github.com/akoreshkov/adbhelper/internal/cli"
	"github.com/akoreshkov/adbhelper/internal/config"
	"github.com/akoreshkov/adbhelper/internal/device"
	"github.com/akoreshkov/adbhelper/internal/logging"
)

var version = "dev"

// app carries the persistent flag values and the per-invocation wiring
// (config, logger, adb runner) shared by every subcommand.
type app struct {
	adbFlag    string
	serialFlag string
	timeout    int
	dryRun     bool
	verbose    bool
	quiet      bool

	cfg *config.Config
	log *logging.Log
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.log = logging.Setup(a.verbose, a.quiet)
	return nil
}

func (a *app) close() {
	if a.log != nil {
		a.log.Close()
	}
}

// effectiveTimeout resolves the one-shot command timeout: flag, then config,
// then the built-in default.
func (a *app) effectiveTimeout() time.Duration {
	if a.timeout > 0 {
		return time.Duration(a.timeout) * time.Second
	}
	return time.Duration(a.cfg.DefaultTimeout) * time.Second
}

func (a *app) runner() (*adb.Runner, error) {
	path := a.adbFlag
	if path == "" {
		path = a.cfg.ADBPath
	}
	return adb.NewRunner(path, a.effectiveTimeout(), a.dryRun, a.log.Logger)
}

// pick resolves the target device from --serial, the configured default, or
// the single connected device.
func (a *app) pick(r *adb.Runner) (string, error) {
	preferred := a.serialFlag
	if preferred == "" {
		preferred = a.cfg.DefaultSerial
	}
	if r.DryRun() && preferred != "" {
		return preferred, nil
	}
	return device.Pick(r, preferred)
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "adbhelper",
		Short:         "Convenience CLI over adb for everyday Android dev/QA tasks",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.adbFlag, "adb", "", "Path to the adb binary or a platform-tools directory")
	pf.StringVar(&a.serialFlag, "serial", "", "Device serial (adb -s)")
	pf.IntVar(&a.timeout, "timeout", 0, "Per-command timeout in seconds (default 30)")
	pf.BoolVar(&a.dryRun, "dry-run", false, "Print adb commands instead of executing them")
	pf.BoolVar(&a.verbose, "verbose", false, "Verbose diagnostic log")
	pf.BoolVar(&a.quiet, "quiet", false, "Warnings and errors only")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &cli.ArgumentError{Msg: err.Error()}
	})

	rootCmd.AddCommand(devicesCmd(a))
	rootCmd.AddCommand(installCmd(a))
	rootCmd.AddCommand(uninstallCmd(a))
	rootCmd.AddCommand(screenshotCmd(a))
	rootCmd.AddCommand(recordCmd(a))
	rootCmd.AddCommand(logcatCmd(a))
	rootCmd.AddCommand(analyzeCmd(a))
	rootCmd.AddCommand(appCmd(a))
	rootCmd.AddCommand(inputCmd(a))
	rootCmd.AddCommand(shellCmd(a))
	rootCmd.AddCommand(pullCmd(a))
	rootCmd.AddCommand(pushCmd(a))
	rootCmd.AddCommand(deviceInfoCmd(a))
	rootCmd.AddCommand(tcpipCmd(a))
	rootCmd.AddCommand(screenCmd(a))
	rootCmd.AddCommand(historyCmd(a))
	rootCmd.AddCommand(doctorCmd(a))

	err := rootCmd.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

// exactArgs is cobra.ExactArgs with the arity failure mapped to the
// invalid-arguments exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return cli.Argumentf("expected %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
