package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dixieflatline76/Mosaic/config"
	"github.com/dixieflatline76/Mosaic/pkg/collage"
	"github.com/dixieflatline76/Mosaic/pkg/monitor"
	"github.com/dixieflatline76/Mosaic/pkg/wallpaper"
	"github.com/dixieflatline76/Mosaic/util/log"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "mosaic",
		Short:         "Mosaic - collage wallpaper for multi-monitor desktops",
		Long:          "Mosaic composes a grid of images per monitor into a single wallpaper spanning the virtual desktop.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to settings.toml")

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newMonitorsCmd())
	rootCmd.AddCommand(newPreviousCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newApplyCmd() *cobra.Command {
	var (
		selection string
		count     int
		fitMode   string
		same      bool
		fade      bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Compose and apply the collage wallpaper immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("selection") {
				cfg.General.Selection = selection
			}
			if cmd.Flags().Changed("count") {
				cfg.General.CollageCount = count
			}
			if cmd.Flags().Changed("fit") {
				cfg.Display.FitMode = fitMode
			}
			if cmd.Flags().Changed("same") {
				cfg.General.CollageSameForAll = same
			}
			if cmd.Flags().Changed("fade") {
				cfg.General.FadeIn = fade
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			engine, req, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Collage %d imgs | Selection: %s | Monitors: %d\n",
				cfg.General.CollageCount, cfg.General.Selection, len(req.Monitors))

			out, err := composeAndApply(engine, req, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Wallpaper applied -> %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&selection, "selection", "", "random | sequential")
	cmd.Flags().IntVar(&count, "count", 0, "images per monitor (1-8)")
	cmd.Flags().StringVar(&fitMode, "fit", "", "fill | fit | stretch | center | span")
	cmd.Flags().BoolVar(&same, "same", false, "use the same images on every monitor")
	cmd.Flags().BoolVar(&fade, "fade", false, "cross-fade from the previous wallpaper")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rotate the wallpaper automatically at the configured interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.General.Interval <= 0 {
				return errors.New("set interval > 0 in settings.toml to use watch")
			}

			engine, req, err := buildPipeline(cfg)
			if err != nil {
				return err
			}

			interval := time.Duration(cfg.General.Interval) * time.Second
			fmt.Printf("Rotating wallpaper every %v. Ctrl+C to exit.\n", interval)

			sched := wallpaper.NewScheduler(interval, req.Folder, func() error {
				_, err := composeAndApply(engine, req, cfg)
				return err
			})

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sig
				sched.Stop()
			}()

			sched.Run()
			return nil
		},
	}
}

func newMonitorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitors",
		Short: "List detected monitors and the virtual desktop bounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			monitors, err := detectMonitors(cfg)
			if err != nil {
				return err
			}
			for _, m := range monitors {
				fmt.Printf("%d: %s %dx%d at (%d,%d)\n",
					m.ID, m.Name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y)
			}
			bounds := monitor.VirtualDesktop(monitors)
			fmt.Printf("virtual desktop: %dx%d at (%d,%d)\n",
				bounds.Dx(), bounds.Dy(), bounds.Min.X, bounds.Min.Y)
			return nil
		},
	}
}

func newPreviousCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "previous",
		Short: "Re-apply the previous composition's image list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			engine, req, err := buildPipeline(cfg)
			if err != nil {
				return err
			}

			paths := engine.Selector().LastApplied(req.Folder)
			if len(paths) == 0 {
				return errors.New("no previous composition recorded")
			}

			comp, err := engine.Replay(req, paths)
			if err != nil {
				return err
			}
			applier := wallpaper.NewApplier(cfg.Paths.OutputFolder)
			out, err := applier.Apply(comp.Canvas, cfg.General.FadeIn)
			if err != nil {
				return err
			}
			fmt.Printf("Wallpaper applied -> %s\n", out)
			return nil
		},
	}
}

// buildPipeline wires the state store, engine and composition request from the
// validated config.
func buildPipeline(cfg *config.Config) (*collage.Engine, collage.Request, error) {
	mode, err := collage.ParseFitMode(cfg.Display.FitMode)
	if err != nil {
		return nil, collage.Request{}, err
	}
	policy, err := collage.ParseSelectionPolicy(cfg.General.Selection)
	if err != nil {
		return nil, collage.Request{}, err
	}
	monitors, err := detectMonitors(cfg)
	if err != nil {
		return nil, collage.Request{}, err
	}

	stateDir, err := config.GetPath()
	if err != nil {
		return nil, collage.Request{}, err
	}
	store := collage.NewFileStore(filepath.Join(stateDir, config.StateFile))

	req := collage.Request{
		Folder:     cfg.Paths.WallpapersFolder,
		Mode:       mode,
		Count:      cfg.General.CollageCount,
		Policy:     policy,
		SameForAll: cfg.General.CollageSameForAll,
		SmartCrop:  cfg.Display.SmartCrop,
		Monitors:   monitors,
	}
	return collage.NewEngine(store), req, nil
}

// composeAndApply runs one full composition and records the used image list
// for the previous command.
func composeAndApply(engine *collage.Engine, req collage.Request, cfg *config.Config) (string, error) {
	comp, err := engine.Compose(req)
	if err != nil {
		return "", err
	}

	applier := wallpaper.NewApplier(cfg.Paths.OutputFolder)
	out, err := applier.Apply(comp.Canvas, cfg.General.FadeIn)
	if err != nil {
		return "", err
	}

	if err := engine.Selector().RecordApplied(req.Folder, comp.Used); err != nil {
		log.Printf("recording applied image list: %v", err)
	}
	return out, nil
}

// detectMonitors prefers a static monitor list from config, falling back to
// native detection.
func detectMonitors(cfg *config.Config) ([]monitor.Monitor, error) {
	if len(cfg.Display.Monitors) > 0 {
		static := &monitor.StaticDetector{}
		for i, m := range cfg.Display.Monitors {
			static.Monitors = append(static.Monitors, monitor.Monitor{
				ID:   i,
				Name: fmt.Sprintf("config-%d", i),
				Rect: image.Rect(m.X, m.Y, m.X+m.Width, m.Y+m.Height),
			})
		}
		return static.Detect()
	}
	return monitor.NewSystemDetector().Detect()
}
