// Package main provides the CLI entry point for beyondborders.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/ravendarque/beyond-borders/pkg/adapters/filesink"
	"github.com/ravendarque/beyond-borders/pkg/adapters/ggsurface"
	"github.com/ravendarque/beyond-borders/pkg/adapters/imagingdecoder"
	"github.com/ravendarque/beyond-borders/pkg/adapters/logger"
	"github.com/ravendarque/beyond-borders/pkg/adapters/memcache"
	"github.com/ravendarque/beyond-borders/pkg/adapters/nullsink"
	"github.com/ravendarque/beyond-borders/pkg/adapters/osfilesystem"
	"github.com/ravendarque/beyond-borders/pkg/avatar"
	"github.com/ravendarque/beyond-borders/pkg/config"
	"github.com/ravendarque/beyond-borders/pkg/orchestrator"
	"github.com/ravendarque/beyond-borders/pkg/ports"
	"github.com/ravendarque/beyond-borders/pkg/stages/compose"
	"github.com/ravendarque/beyond-borders/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "beyondborders",
		Usage:   "Crop a photo into a circle and decorate it with a flag border.",
		Version: version,
		Commands: []*cli.Command{
			renderCommand(),
			previewCommand(),
			flagsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML configuration file."},
		&cli.StringFlag{Name: "photo", Aliases: []string{"i"}, Usage: "Source photo path."},
		&cli.StringFlag{Name: "flag", Aliases: []string{"f"}, Usage: "Flag ID from the catalog or builtins."},
		&cli.StringFlag{Name: "flags-file", Usage: "YAML flag catalog path."},
		&cli.Float64Flag{Name: "x", Usage: "Horizontal position, -50 to +50."},
		&cli.Float64Flag{Name: "y", Usage: "Vertical position, -50 to +50."},
		&cli.Float64Flag{Name: "zoom", Usage: "Zoom percentage, 0 to 200."},
		&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "Output diameter in pixels."},
		&cli.Float64Flag{Name: "thickness", Aliases: []string{"t"}, Usage: "Border thickness as percent of radius."},
		&cli.StringFlag{Name: "presentation", Aliases: []string{"p"}, Usage: "Border presentation (ring, segment, cutout)."},
		&cli.Float64Flag{Name: "flag-offset", Usage: "Cutout horizontal offset, -50 to +50."},
		&cli.Float64Flag{Name: "rotation", Usage: "Segment rotation in degrees."},
		&cli.StringFlag{Name: "background", Usage: "Background color (hex); empty keeps corners transparent."},
		&cli.StringFlag{Name: "environment", Usage: "Surface capability class (minimal, balanced, extended)."},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: "Log level (debug, info, warn, error)."},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "Suppress all log output."},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "Enable debug output."},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: "Directory for debug output."},
	}
}

func renderCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output PNG file path."},
		&cli.BoolFlag{Name: "no-downsampling", Usage: "Disable source downsampling."},
		&cli.BoolFlag{Name: "metrics", Usage: "Collect per-stage performance metrics."},
		&cli.StringFlag{Name: "summary", Usage: "Write a markdown render summary to this path."},
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Render the final avatar PNG.",
		Flags: flags,
		Action: func(c *cli.Context) error {
			env, err := buildEnvironment(c)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(env.log)
			defer cancel()

			env.log.Info(l10n.F("Rendering %s with flag %s...", env.cfg.PhotoPath, env.cfg.FlagID))

			result, err := env.orch.Run(ctx, env.orchConfig)
			if err != nil {
				return err
			}
			env.log.Info(l10n.F("Output saved to %s", env.orchConfig.OutputPath))

			if path := c.String("summary"); path != "" {
				summary := summarizer.FromRunResult(
					result.PhotoPath,
					result.InputSize,
					summarizer.Settings{
						FlagID:           result.FlagID,
						Presentation:     result.Presentation.String(),
						OutputSize:       result.OutputSize,
						ThicknessPercent: env.orchConfig.ThicknessPercent,
					},
					result.OutputPath,
					result.ByteSize,
					result.Metrics,
				)
				writer := summarizer.NewWriter(summarizer.FormatFunc(summarizer.Markdown))
				if err := writer.Write(path, summary); err != nil {
					return fmt.Errorf("write summary: %w", err)
				}
			}
			return nil
		},
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Emit the declarative preview layers as JSON.",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			env, err := buildEnvironment(c)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(env.log)
			defer cancel()

			preview, err := env.orch.Preview(ctx, env.orchConfig)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(preview, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func flagsCommand() *cli.Command {
	return &cli.Command{
		Name:  "flags",
		Usage: "List available flags.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flags-file", Usage: "YAML flag catalog path."},
		},
		Action: func(c *cli.Context) error {
			catalog := config.BuiltinFlags()
			if path := c.String("flags-file"); path != "" {
				loaded, err := config.LoadFlags(path)
				if err != nil {
					return err
				}
				catalog = append(loaded, catalog...)
			}
			for _, f := range catalog {
				fmt.Printf("%s\t%d colors\n", f.ID, len(f.Colors))
			}
			return nil
		},
	}
}

// environment bundles the wired adapters and config for one command run.
type environment struct {
	cfg        config.Config
	orchConfig orchestrator.Config
	orch       *orchestrator.Orchestrator
	log        ports.Logger
}

// buildEnvironment loads config, applies CLI overrides and wires adapters
// into an orchestrator.
func buildEnvironment(c *cli.Context) (*environment, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	applyOverrides(c, &cfg)

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	// Resolve the flag descriptor against the catalog, if one is given.
	var catalog []avatar.FlagDescriptor
	if cfg.FlagsFile != "" {
		loaded, err := config.LoadFlags(cfg.FlagsFile)
		if err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
		catalog = loaded
	}
	flag, err := config.FindFlag(catalog, cfg.FlagID)
	if err != nil {
		return nil, err
	}

	// Wire adapters.
	fs := osfilesystem.New()
	decoder := imagingdecoder.New()
	factory := ggsurface.NewWithCapabilities(
		ggsurface.CapabilitiesFor(ports.EnvironmentClass(cfg.Environment)))
	cache := memcache.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	composeStage := compose.NewStage(factory, factory, sink, log)
	orch := orchestrator.New(composeStage, decoder, fs, cache, sink, log)

	return &environment{
		cfg:        cfg,
		orchConfig: cfg.ToOrchestratorConfig(flag),
		orch:       orch,
		log:        log,
	}, nil
}

// applyOverrides copies set CLI flags over the loaded config.
func applyOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("photo") {
		cfg.PhotoPath = c.String("photo")
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("flag") {
		cfg.FlagID = c.String("flag")
	}
	if c.IsSet("flags-file") {
		cfg.FlagsFile = c.String("flags-file")
	}
	if c.IsSet("x") {
		cfg.Position.X = c.Float64("x")
	}
	if c.IsSet("y") {
		cfg.Position.Y = c.Float64("y")
	}
	if c.IsSet("zoom") {
		cfg.Position.Zoom = c.Float64("zoom")
	}
	if c.IsSet("size") {
		cfg.OutputSize = c.Int("size")
	}
	if c.IsSet("thickness") {
		cfg.ThicknessPercent = c.Float64("thickness")
	}
	if c.IsSet("presentation") {
		cfg.Presentation = c.String("presentation")
	}
	if c.IsSet("flag-offset") {
		cfg.FlagOffset = c.Float64("flag-offset")
	}
	if c.IsSet("rotation") {
		cfg.SegmentRotation = c.Float64("rotation")
	}
	if c.IsSet("background") {
		cfg.Background = c.String("background")
	}
	if c.IsSet("environment") {
		cfg.Environment = c.String("environment")
	}
	if c.IsSet("no-downsampling") {
		cfg.Downsampling = !c.Bool("no-downsampling")
	}
	if c.IsSet("metrics") {
		cfg.TrackPerformance = c.Bool("metrics")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}
