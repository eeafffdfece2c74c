// Command ggplan renders a YAML scene through recorded drawing plans.
//
// The scene is drawn once, then once more after each pan or zoom step, so
// the frame report shows which plans were rebuilt and which were only
// reprojected:
//
//	ggplan -o out.svg -s "zoom 2 400 300; pan -120 40" scene.yaml
//
// The output extension picks the backend (.svg or .png).
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/ggplan"
	"github.com/gogpu/ggplan/config"
	"github.com/gogpu/ggplan/drawables"
	"github.com/gogpu/ggplan/scene"
	"github.com/gogpu/ggplan/surface"
	_ "github.com/gogpu/ggplan/surface/raster"
	_ "github.com/gogpu/ggplan/surface/svg"
	"github.com/tdewolff/argp"
)

// Render is the root command.
type Render struct {
	Config     string `short:"c" desc:"View config file (YAML)"`
	Output     string `short:"o" default:"frame.svg" desc:"Output file, its extension picks the backend"`
	Steps      string `short:"s" desc:"Pan and zoom steps, e.g. \"zoom 2 400 300; pan -40 0\""`
	Frames     bool   `desc:"Write every frame to its own numbered file"`
	Background string `default:"white" desc:"Background color"`
	Verbose    bool   `short:"v" desc:"Log plan and frame activity to stderr"`
	Input      string `index:"0" desc:"Scene file (YAML)"`
}

func main() {
	root := argp.NewCmd(&Render{}, "Render a scene through retained drawing plans")
	root.Parse()
	root.PrintHelp()
}

// Run implements argp.Cmd.
func (cmd *Render) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	if cmd.Verbose {
		ggplan.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames, err := cmd.render(ctx)
	if len(frames) > 0 {
		fmt.Println(report(frames))
	}
	return err
}

func (cmd *Render) render(ctx context.Context) ([]frame, error) {
	doc, err := drawables.LoadDocument(cmd.Input)
	if err != nil {
		return nil, err
	}
	view := config.Default()
	if cmd.Config != "" {
		if view, err = config.Load(cmd.Config); err != nil {
			return nil, err
		}
	}
	steps, err := parseSteps(cmd.Steps)
	if err != nil {
		return nil, err
	}

	target, err := surface.NewTargetForFile(cmd.Output, surface.Options{
		Width:      int(doc.Width),
		Height:     int(doc.Height),
		Background: cmd.Background,
	})
	if err != nil {
		return nil, err
	}
	defer target.Close()

	m := ggplan.NewCoordinateMapper(doc.Width, doc.Height)
	m.Scale = doc.Scale

	// Targets start every frame empty, so every visible plan is replayed.
	opts := append(view.RendererOptions(), scene.WithFullRedraw())
	r := scene.NewRenderer(doc.Width, doc.Height, opts...)

	frames := make([]frame, 0, len(steps)+1)
	draw := func(label string) error {
		target.Reset()
		stats, err := r.RenderWithContext(ctx, target, m, doc.Drawables)
		if err != nil {
			return err
		}
		frames = append(frames, frame{Label: label, Scale: m.Scale, Stats: stats})
		if cmd.Frames {
			return writeFile(frameName(cmd.Output, len(frames)-1), target)
		}
		return nil
	}

	if err := draw("initial"); err != nil {
		return frames, err
	}
	for _, s := range steps {
		s.apply(m)
		if err := draw(s.String()); err != nil {
			return frames, err
		}
	}
	if cmd.Frames {
		return frames, nil
	}
	return frames, writeFile(cmd.Output, target)
}

// frameName numbers path for frame i: out.svg becomes out-003.svg.
func frameName(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(path, ext), i, ext)
}

func writeFile(path string, w io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
