// Package main provides the CLI entrypoint for evhz.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meizfl/evhz2/internal/config"
	"github.com/meizfl/evhz2/internal/model"
	"github.com/meizfl/evhz2/internal/monitor"
	"github.com/meizfl/evhz2/internal/source"
	"github.com/meizfl/evhz2/internal/tui"
)

var (
	monitorNonverbose bool
	monitorLive       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "evhz",
		Short:         "Input device event rate meter",
		Long:          "evhz measures how many events per second your input devices deliver,\nreporting the latest instantaneous rate and a sliding-window average per device.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runMonitorCmd,
	}

	rootCmd.Flags().BoolVarP(&monitorNonverbose, "nonverbose", "n", false, "suppress per-event lines, show only final averages")
	rootCmd.Flags().BoolVar(&monitorLive, "live", false, "show a live table instead of per-event lines")

	rootCmd.AddCommand(newDevicesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runMonitorCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "nonverbose", &monitorNonverbose, fileCfg.Monitor.Nonverbose)
	applyBoolConfig(cmd, "live", &monitorLive, fileCfg.Monitor.Live)

	cfg := model.Config{
		Nonverbose: monitorNonverbose,
		Live:       monitorLive,
	}

	src, err := source.New()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logErrf("failed to close source: %v\n", cerr)
		}
	}()

	fmt.Printf("Event Hz Tester - %s\n", platformName())
	fmt.Printf("====================\n\n")

	if runtime.GOOS != "windows" && os.Geteuid() != 0 {
		fmt.Printf("Warning: evhz should be run as superuser for full access\n\n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Live && term.IsTerminal(int(os.Stdout.Fd())) {
		return runLive(ctx, src)
	}

	if !cfg.Nonverbose {
		for _, info := range src.Devices() {
			fmt.Printf("%s: %s\n", info.ID, info.Name)
		}
		fmt.Println()
	}
	fmt.Printf("Press CTRL-C to exit.\n\n")

	mon := monitor.New(monitor.Options{Verbose: !cfg.Nonverbose})
	if err := mon.Run(ctx, src); err != nil {
		return err
	}
	return mon.WriteReport(os.Stdout)
}

func runLive(ctx context.Context, src source.Source) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := tui.NewModel(cancel)
	program := tea.NewProgram(view, tea.WithAltScreen())

	mon := monitor.New(monitor.Options{
		OnSample: func(s model.Sample) {
			program.Send(tui.SampleMsg(s))
		},
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- mon.Run(runCtx, src)
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-errCh
		return fmt.Errorf("failed to run live view: %w", err)
	}
	cancel()
	if err := <-errCh; err != nil {
		return err
	}
	return mon.WriteReport(os.Stdout)
}

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List detected input devices",
		Args:  cobra.NoArgs,
		RunE:  runDevicesCmd,
	}
}

func runDevicesCmd(cmd *cobra.Command, _ []string) error {
	src, err := source.New()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logErrf("failed to close source: %v\n", cerr)
		}
	}()
	return monitor.WriteDeviceTable(cmd.OutOrStdout(), src.Devices())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func platformName() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	default:
		return runtime.GOOS
	}
}

func defaultConfigTemplate() string {
	return `# evhz configuration
# Uncomment a value to enable it. CLI flags override config values.

[monitor]
# nonverbose = false    # Suppress per-event lines, show only final averages
# live = false          # Show a live table instead of per-event lines
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
