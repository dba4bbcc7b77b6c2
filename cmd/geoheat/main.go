// geoheat projects geographic magnitudes onto a flat or round surface and
// shows them as a navigable 3D heat map.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/geoheat/internal/config"
	"github.com/Faultbox/geoheat/internal/heatmap"
	"github.com/Faultbox/geoheat/internal/logger"
	"github.com/Faultbox/geoheat/internal/preview"
	"github.com/Faultbox/geoheat/internal/viewer"
)

func main() {
	command := "view"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "view":
		err = cmdView(args)
	case "project":
		err = cmdProject(args)
	case "preview":
		err = cmdPreview(args)
	case "generate", "gen":
		err = cmdGenerate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`geoheat - 3D heat map of geographic magnitudes

Usage:
  geoheat [command] [options]

Commands:
  view                    Open the interactive viewer (default)
  project                 Print projected bar positions
  preview -o <file.png>   Render a top-down plot of the projection
  generate -n <count>     Write a random dataset as JSON

Common options:
  -config <file>    Config file (default: geoheat.yaml)
  -data <file>      Dataset JSON
  -surface <kind>   flat or round
  -debug            Debug logging

Viewer controls:
  left drag   pan        right drag  rotate      wheel  zoom
  R           reset      M           colour mode +/-    magnitude floor
  O           open dataset           Esc         quit

Examples:
  geoheat -data population.json -surface round
  geoheat project -data points.json
  geoheat preview -o heat.png -hist hist.svg
  geoheat generate -n 500 -bound 100 > points.json`)
}

// setup parses the shared flags, loads the config and starts logging.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	opts := logger.Options{
		Level:   cfg.Logging.Level,
		JSON:    cfg.Logging.JSON,
		Console: true,
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Setup(opts); err != nil {
		return nil, err
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return cfg, nil
}

func cmdView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	log := logger.Named("main")
	log.Info("=== geoheat ===")

	points, err := viewer.LoadPoints(cfg.Data, cfg.Points.MaxMagnitude)
	if err != nil {
		return err
	}

	v, err := viewer.New(cfg, points)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		log.Error("viewer error", zap.Error(err))
		return err
	}
	log.Info("viewer closed normally")
	return nil
}

// scene builds the visualisation without a window.
func scene(cfg *config.Config) (*heatmap.Visualisation, error) {
	points, err := viewer.LoadPoints(cfg.Data, cfg.Points.MaxMagnitude)
	if err != nil {
		return nil, err
	}
	surface, err := viewer.Surface(cfg.Surface)
	if err != nil {
		return nil, err
	}
	opts, err := viewer.Options(cfg.Points)
	if err != nil {
		return nil, err
	}
	vis, err := heatmap.NewVisualisation(surface, points, opts)
	if err != nil {
		return nil, err
	}
	vis.SetFilter(viewer.Filter(cfg.Points))
	return vis, nil
}

func cmdProject(args []string) error {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N bars (0 = all)")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	vis, err := scene(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "X\tY\tMAGNITUDE\tPOSITION\tUP\tCOLOR")
	count := 0
	for _, n := range vis.Nodes() {
		if !n.Visible {
			continue
		}
		if *limit > 0 && count >= *limit {
			break
		}
		p, up := n.Position(), n.Up()
		fmt.Fprintf(w, "%.2f\t%.2f\t%.2f\t(%.2f, %.2f, %.2f)\t(%.2f, %.2f, %.2f)\t%s\n",
			n.Point.X, n.Point.Y, n.Point.Magnitude(),
			p.X, p.Y, p.Z, up.X, up.Y, up.Z, n.Color.Hex())
		count++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := vis.Stats()
	fmt.Printf("\n%d of %d points shown on a %s surface\n", vis.Visible(), s.Count, vis.Surface().Kind)
	fmt.Printf("magnitude min %.2f  max %.2f  mean %.2f  stddev %.2f  median %.2f\n",
		s.Min, s.Max, s.Mean, s.StdDev, s.Median)
	return nil
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	output := fs.String("o", "geoheat.png", "Output image (png, svg, pdf)")
	hist := fs.String("hist", "", "Optional magnitude histogram image")
	bins := fs.Int("bins", 20, "Histogram bins")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}

	vis, err := scene(cfg)
	if err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Bins = *bins
	if err := preview.Save(vis, *output, *hist, opts); err != nil {
		return err
	}

	abs, _ := filepath.Abs(*output)
	logger.Named("main").Info("preview written", zap.String("path", abs))
	return nil
}

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	n := fs.Int("n", 500, "Number of points")
	bound := fs.Float64("bound", 100, "Components are drawn from [-bound, bound]")
	geo := fs.Bool("geo", false, "Spread points over longitude/latitude instead")
	seed := fs.Uint64("seed", 0, "Random seed (0 = random)")
	output := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(s, s))

	var points []heatmap.Point
	if *geo {
		points = heatmap.GenerateGeo(*n, float32(*bound), rng)
	} else {
		points = heatmap.Generate(*n, float32(*bound), rng)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return heatmap.Encode(out, points)
}
