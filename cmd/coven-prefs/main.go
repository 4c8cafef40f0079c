// ABOUTME: Entry point for coven-prefs
// ABOUTME: Saves, shows and watches the preferences file of a sample host

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2389/coven-prefs/internal/config"
	"github.com/2389/coven-prefs/internal/prefs"
	"github.com/2389/coven-prefs/internal/watch"
	"github.com/2389/coven-prefs/internal/world"
)

// version is set by goreleaser at build time.
var version = "dev"

type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	closeLog   func() error
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := &app{}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coven-prefs",
		Short:         "Persist host preferences to prefs.toml",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "path to the config file")

	root.AddCommand(a.saveCmd(), a.showCmd(), a.watchCmd(), a.runCmd())
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, closeLog, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

func (a *app) saveCmd() *cobra.Command {
	var (
		always   bool
		volume   float32
		quality  string
		language string
		width    uint32
		height   uint32
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Apply changes to the sample host and save them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := newHostWorld()
			flags := cmd.Flags()

			if flags.Changed("volume") {
				world.Mutate(w, func(v *MasterVolume) { *v = MasterVolume(volume) })
			}
			if flags.Changed("language") {
				world.Mutate(w, func(l *Language) { *l = Language(language) })
			}
			if flags.Changed("width") || flags.Changed("height") {
				world.Mutate(w, func(win *Window) {
					if flags.Changed("width") {
						win.Width = width
					}
					if flags.Changed("height") {
						win.Height = height
					}
				})
			}
			if flags.Changed("quality") {
				q, err := parseQuality(quality)
				if err != nil {
					return err
				}
				world.Mutate(w, func(s *world.State[GraphicsQuality]) { s.Set(q) })
			}

			mode := prefs.IfChanged
			if always {
				mode = prefs.Always
			}
			if mode == prefs.IfChanged && !w.Changed().IsSet() {
				a.logger.Info("nothing changed, not saving")
				return nil
			}

			saver := prefs.NewSaver(w, a.cfg.Prefs.Dir, a.logger)
			if err := saver.SaveWorld(mode); err != nil {
				return err
			}
			a.logger.Info("saved preferences", "path", saver.Path())
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&always, "always", false, "save even when nothing changed")
	f.Float32Var(&volume, "volume", 0, "master volume (0-1)")
	f.StringVar(&quality, "quality", "", "graphics quality: low, medium, high")
	f.StringVar(&language, "language", "", "interface language")
	f.Uint32Var(&width, "width", 0, "window width")
	f.Uint32Var(&height, "height", 0, "window height")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := prefs.ReadDocument(a.cfg.Prefs.Dir)
			if doc == nil {
				return err
			}
			if err != nil {
				a.logger.Warn("some entries could not be read", "error", err)
			}
			printTable(cmd.OutOrStdout(), "", doc)
			return nil
		},
	}
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report changes to the preferences file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := a.cfg.Prefs.Dir
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}

			w, err := watch.New(dir, prefs.FileName, a.logger)
			if err != nil {
				return err
			}
			a.logger.Info("watching preferences", "path", w.Path())

			out := cmd.OutOrStdout()
			return w.Run(cmd.Context(), func(e watch.Event) {
				if e.Op == watch.Removed {
					color.New(color.FgYellow).Fprintf(out, "%s removed\n", e.Path)
					return
				}
				doc, err := prefs.ReadDocument(dir)
				if doc == nil {
					if !errors.Is(err, prefs.ErrNotFound) {
						a.logger.Warn("could not read preferences", "error", err)
					}
					return
				}
				color.New(color.FgGreen).Fprintf(out, "%s changed\n", e.Path)
				printTable(out, "", doc)
			})
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	var cycle time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sample host, cycling graphics quality, with autosave",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cycle <= 0 {
				return fmt.Errorf("--cycle must be positive, got %s", cycle)
			}

			w := newHostWorld()
			saver := prefs.NewSaver(w, a.cfg.Prefs.Dir, a.logger)

			autosaver := prefs.NewAutosaver(saver, a.cfg.Autosave.Interval)
			autosaver.Start(cmd.Context())
			defer autosaver.Close()

			a.logger.Info("host running", "autosave", a.cfg.Autosave.Interval, "path", saver.Path())

			ticker := time.NewTicker(cycle)
			defer ticker.Stop()
			for {
				select {
				case <-cmd.Context().Done():
					a.logger.Info("host stopping")
					return nil
				case <-ticker.C:
					world.Mutate(w, func(s *world.State[GraphicsQuality]) {
						s.Set((s.Get() + 1) % GraphicsQuality(len(qualityNames)))
					})
					world.Mutate(w, func(st *sessionStats) { st.Frames++ })
				}
			}
		},
	}
	cmd.Flags().DurationVar(&cycle, "cycle", time.Second, "how often the host changes graphics quality")
	return cmd
}
