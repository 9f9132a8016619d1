package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mecusp/odecamtakeoff/internal/app"
	"github.com/Mecusp/odecamtakeoff/internal/config"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/internal/quantity"
	"github.com/Mecusp/odecamtakeoff/pkg/overlay"
	"github.com/Mecusp/odecamtakeoff/pkg/script"
	"github.com/Mecusp/odecamtakeoff/pkg/watcher"
)

var (
	replayCSV     string
	replayOverlay string
	replayWatch   bool
	replayStrict  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Replay a takeoff event script and print the quantities",
	Long: `Feed every event of a script through a takeoff session, then print the
quantities table. Recoverable problems (a rejected calibration answer, a
declined confirmation) are reported as warnings; --strict turns them into
failures.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().String("scope", "", "aggregate the whole project or the active sheet (project|active)")
	replayCmd.Flags().StringVar(&replayCSV, "csv", "", "also write quantities as CSV to this file (- for stdout)")
	replayCmd.Flags().StringVar(&replayOverlay, "overlay", "", "write the active sheet drawn over the plan to this PNG")
	replayCmd.Flags().BoolVarP(&replayWatch, "watch", "w", false, "replay again whenever the script or plan changes")
	replayCmd.Flags().BoolVar(&replayStrict, "strict", false, "fail on warnings")

	_ = viper.BindPFlag("scope", replayCmd.Flags().Lookup("scope"))
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	scriptFile := args[0]
	out := cmd.OutOrStdout()

	inputs, err := replayOnce(cfg, scriptFile, out)
	if err != nil && !replayWatch {
		return err
	}
	if !replayWatch {
		return nil
	}
	if err != nil {
		fmt.Fprintln(out, warnStyle.Render(err.Error()))
	}

	return watchAndReplay(cmd.Context(), cfg, scriptFile, inputs, out)
}

// replayOnce runs the script in a fresh session and returns every file it
// read, for watching
func replayOnce(cfg config.Config, scriptFile string, out io.Writer) ([]string, error) {
	inputs := []string{scriptFile}

	scope, err := project.ParseScope(cfg.Scope)
	if err != nil {
		return inputs, err
	}

	events, err := script.ParseFile(scriptFile)
	if err != nil {
		return inputs, err
	}
	baseDir := filepath.Dir(scriptFile)
	for _, ev := range events {
		if ev.Op == script.OpImage {
			path := ev.Text
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			inputs = append(inputs, path)
		}
	}

	session, err := app.FromConfig(cfg, nil, os.Stderr)
	if err != nil {
		return inputs, err
	}

	warnings, err := session.Replay(events, baseDir)
	for _, w := range warnings {
		fmt.Fprintln(out, warnStyle.Render("warning: "+w.Error()))
	}
	if err != nil {
		return inputs, err
	}
	if replayStrict && len(warnings) > 0 {
		return inputs, fmt.Errorf("%d warning(s) in strict mode", len(warnings))
	}

	groups, err := session.Groups(scope)
	if err != nil {
		return inputs, err
	}
	rows := quantity.Report(groups, session.Format)

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Quantitativos (%s)", scope)))
	fmt.Fprintln(out, renderReport(rows, quantity.Sum(groups), session.Format))

	if replayCSV != "" {
		if err := exportCSV(replayCSV, out, groups); err != nil {
			return inputs, err
		}
	}

	if replayOverlay != "" {
		img, err := session.RenderOverlay()
		if err != nil {
			return inputs, err
		}
		if err := overlay.SavePNG(replayOverlay, img); err != nil {
			return inputs, err
		}
		fmt.Fprintln(out, mutedStyle.Render("overlay written to "+replayOverlay))
	}

	return inputs, nil
}

func exportCSV(target string, stdout io.Writer, groups []quantity.Group) error {
	if target == "-" {
		return writeCSV(stdout, groups)
	}
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if err := writeCSV(f, groups); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// watchAndReplay replays again on every change until interrupted
func watchAndReplay(ctx context.Context, cfg config.Config, scriptFile string, inputs []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(cfg.WatchDebounce(), nil)
	if err != nil {
		return err
	}
	defer fw.Close()

	changed := make(chan string, 1)
	notify := func(path string) {
		select {
		case changed <- path:
		default:
		}
	}
	if err := fw.Watch(inputs, notify); err != nil {
		return err
	}
	fw.Start(ctx)

	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("watching %d file(s), Ctrl+C to stop", len(inputs))))

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changed:
			fmt.Fprintln(out, mutedStyle.Render("changed: "+path))
			next, err := replayOnce(cfg, scriptFile, out)
			if err != nil {
				fmt.Fprintln(out, warnStyle.Render(err.Error()))
			}
			// the script may now reference other plan images
			if err := fw.RemoveAll(); err != nil {
				return err
			}
			if err := fw.Watch(next, notify); err != nil {
				return err
			}
		}
	}
}
