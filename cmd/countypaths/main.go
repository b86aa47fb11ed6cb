package main

import (
	"bytes"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/tdewolff/argp"

	"countypaths/internal/config"
	"countypaths/internal/emit"
	"countypaths/internal/logging"
	"countypaths/internal/pipeline"
	"countypaths/internal/svgpreview"
	"countypaths/internal/tui"
)

type Generate struct {
	Config string `short:"c" desc:"Config file (default countypaths.yaml in . or ./configs)"`
	Input  string `short:"i" desc:"GeoJSON boundary file"`
	Output string `short:"o" desc:"Output file (default stdout)"`
	Format string `short:"f" desc:"Output format: ts, go or json"`
}

type Check struct {
	Config string `short:"c" desc:"Config file"`
	File   string `index:"0" desc:"Committed module to compare against"`
}

type SVG struct {
	Config string `short:"c" desc:"Config file"`
	Output string `short:"o" desc:"Output SVG file"`
	Minify bool   `desc:"Minify the SVG"`
	Labels bool   `desc:"Draw landmark labels"`
}

type Preview struct {
	Config string `short:"c" desc:"Config file"`
	Module string `short:"m" desc:"Preview a generated JSON module instead of running the pipeline"`
}

func main() {
	root := argp.NewCmd(&Generate{}, "County boundary to SVG path module generator")
	root.AddCmd(&Check{}, "check", "Fail when a committed module differs from regenerated output")
	root.AddCmd(&SVG{}, "svg", "Write an SVG preview of the generated paths")
	root.AddCmd(&Preview{}, "preview", "Interactive terminal preview with live epsilon tuning")
	root.Parse()
	root.PrintHelp()
}

// setup loads configuration, applies overrides and installs the logger.
func setup(path string, override func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if path != "" {
		logger.Debug("config loaded", "path", path)
	}
	return cfg, logger, nil
}

func (cmd *Generate) Run() error {
	cfg, logger, err := setup(cmd.Config, func(cfg *config.Config) {
		if cmd.Input != "" {
			cfg.Input = cmd.Input
		}
		if cmd.Output != "" {
			cfg.Output = cmd.Output
		}
		if cmd.Format != "" {
			cfg.Format = cmd.Format
		}
	})
	if err != nil {
		return err
	}
	b, _, err := pipeline.Generate(cfg, logger)
	if err != nil {
		return err
	}
	if err := pipeline.WriteOutput(cfg.Output, b, os.Stdout); err != nil {
		return err
	}
	if cfg.Output != "" {
		logger.Info("module written", "output", cfg.Output, "format", cfg.Format, "bytes", len(b))
	}
	return nil
}

func (cmd *Check) Run() error {
	if cmd.File == "" {
		return argp.ShowUsage
	}
	cfg, logger, err := setup(cmd.Config, nil)
	if err != nil {
		return err
	}
	if err := pipeline.Check(cfg, cmd.File, logger); err != nil {
		if errors.Is(err, pipeline.ErrStale) {
			logger.Error("stale module", "file", cmd.File)
		}
		return err
	}
	logger.Info("module is up to date", "file", cmd.File)
	return nil
}

func (cmd *SVG) Run() error {
	if cmd.Output == "" {
		return argp.ShowUsage
	}
	cfg, logger, err := setup(cmd.Config, nil)
	if err != nil {
		return err
	}
	res, err := pipeline.Run(cfg, logger)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := svgpreview.Write(&buf, res.Module(), svgpreview.Options{Labels: cmd.Labels, Minify: cmd.Minify}); err != nil {
		return err
	}
	if err := pipeline.WriteOutput(cmd.Output, buf.Bytes(), os.Stdout); err != nil {
		return err
	}
	logger.Info("svg preview written", "output", cmd.Output, "bytes", buf.Len())
	return nil
}

func (cmd *Preview) Run() error {
	cfg, logger, err := setup(cmd.Config, nil)
	if err != nil {
		return err
	}

	var m tui.Model
	if cmd.Module != "" {
		f, err := os.Open(cmd.Module)
		if err != nil {
			return errors.Wrapf(err, "open %s", cmd.Module)
		}
		mod, err := emit.DecodeJSON(f)
		f.Close()
		if err != nil {
			return err
		}
		if m, err = tui.NewFromModule(mod, cmd.Module); err != nil {
			return err
		}
	} else {
		res, err := pipeline.Run(cfg, logger)
		if err != nil {
			return err
		}
		m = tui.New(res)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return errors.Wrap(err, "run preview")
	}
	if fm, ok := final.(tui.Model); ok {
		outer, hole := fm.Epsilons()
		logger.Info("final tolerances", "outer_epsilon", outer, "hole_epsilon", hole)
	}
	return nil
}
