package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoheat/internal/config"
	"github.com/Faultbox/geoheat/internal/engine/debug"
	"github.com/Faultbox/geoheat/internal/engine/input"
	"github.com/Faultbox/geoheat/internal/engine/renderer"
	"github.com/Faultbox/geoheat/internal/engine/ui2d"
	"github.com/Faultbox/geoheat/internal/engine/window"
	"github.com/Faultbox/geoheat/internal/heatmap"
	"github.com/Faultbox/geoheat/internal/logger"
)

// wheelStep converts one SDL wheel notch into controller units.
const wheelStep = 100

// filterStep is how far the magnitude floor moves per key press, as a
// fraction of the colour bound.
const filterStep = 0.1

// Viewer is the interactive window.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *Scene
	shots    *debug.Screenshots
	capture  bool

	ui         *ui2d.Context
	uiRenderer *ui2d.Renderer
	panels     *Panels

	// outline is cached until the scene geometry changes.
	outline []float32
	title   string

	updates <-chan []heatmap.Point
	opened  chan string
	cancel  context.CancelFunc
	log     *zap.Logger
}

// New opens the window and builds the scene for points.
func New(cfg *config.Config, points []heatmap.Point) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		opened: make(chan string, 1),
		shots:  debug.NewScreenshots("screenshots", "geoheat"),
		log:    logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	fbW, fbH := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbW,
		Height:     fbH,
		Background: [3]float32{0.08, 0.09, 0.11},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.scene, err = NewScene(cfg, points, v.window)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.input = input.New()

	// Panels are laid out in window units, the same as pointer events.
	font := ui2d.NewFont()
	winW, winH := v.window.GetSize()
	v.uiRenderer, err = ui2d.NewRenderer(font, winW, winH)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create panel renderer: %w", err)
	}
	v.ui = ui2d.NewContext(font)
	v.panels = NewPanels(v.ui)

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	if cfg.Data.Path != "" && cfg.Data.Watch {
		v.watch(ctx, cfg.Data.Path)
	}

	v.log.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) watch(ctx context.Context, path string) {
	updates, err := Loader(v.cfg.Data).Watch(ctx, path)
	if err != nil {
		v.log.Warn("dataset will not reload", zap.String("path", path), zap.Error(err))
		return
	}
	v.updates = updates
	v.log.Info("watching dataset", zap.String("path", path))
}

// Run starts the main loop and returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		// Pointer events the panels claim never reach the camera.
		rest := v.ui.Feed(v.input.Events())
		rest = input.Route(rest, v.scene.Gestures(), wheelStep)
		for _, event := range rest {
			v.handle(event)
		}
		v.hover()

		if err := v.poll(); err != nil {
			v.log.Error("dataset update rejected", zap.Error(err))
		}

		v.render()
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		w, h := v.window.DrawableSize()
		v.renderer.Resize(w, h)
		v.uiRenderer.Resize(v.window.GetSize())
	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			v.running = false
		case sdl.SCANCODE_R:
			v.scene.Reset()
		case sdl.SCANCODE_M:
			mode := v.scene.ToggleMode()
			v.log.Info("colour mode", zap.Stringer("mode", mode))
		case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
			v.panels.Step(v.scene, filterStep)
		case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
			v.panels.Step(v.scene, -filterStep)
		case sdl.SCANCODE_O:
			v.openDialog()
		case sdl.SCANCODE_F12:
			v.capture = true
		}
	}
}

// openDialog asks for a dataset without blocking the render loop. The chosen
// path is loaded on the main thread by poll.
func (v *Viewer) openDialog() {
	go func() {
		path, err := dialog.File().
			Filter("JSON datasets", "json", "jsonc").
			Filter("All Files", "*").
			Title("Open dataset").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Warn("file dialog", zap.Error(err))
			}
			return
		}
		select {
		case v.opened <- path:
		default:
		}
	}()
}

// poll applies reloaded or newly opened datasets.
func (v *Viewer) poll() error {
	select {
	case points, ok := <-v.updates:
		if !ok {
			v.updates = nil
			return nil
		}
		return v.scene.SetPoints(points)
	case path := <-v.opened:
		points, err := Loader(v.cfg.Data).LoadFile(path)
		if err != nil {
			return err
		}
		if err := v.scene.SetPoints(points); err != nil {
			return err
		}
		v.cancel()
		ctx, cancel := context.WithCancel(context.Background())
		v.cancel = cancel
		v.updates = nil
		if v.cfg.Data.Watch {
			v.watch(ctx, path)
		}
		return nil
	default:
		return nil
	}
}

func (v *Viewer) hover() {
	x, y, _ := sdl.GetMouseState()
	if v.ui.Over(float32(x), float32(y)) {
		v.scene.ClearHover()
	} else {
		v.scene.Hover(input.Event{MouseX: int(x), MouseY: int(y)}.Mouse())
	}
	v.window.SetPointing(v.scene.Hovered() != nil || v.ui.Hot() != "")

	if title := v.scene.Title(); title != v.title {
		v.title = title
		v.window.SetTitle(title)
	}
}

func (v *Viewer) render() {
	if bars, lines, changed := v.scene.Geometry(); changed {
		v.renderer.SetBars(bars)
		v.outline = lines
	}
	lines := append(v.scene.BackdropLines(), v.outline...)
	lines = append(lines, v.scene.HoverLines()...)
	v.renderer.SetLines(lines)

	v.renderer.Begin()
	v.renderer.Draw(v.scene.ViewProjection())
	v.renderer.End()

	v.panels.Draw(v.scene, v.window.Width())
	v.uiRenderer.Draw(v.ui.DrawList())
}

// screenshot saves the frame just rendered, before it is presented.
func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the watcher, GL resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.cancel != nil {
		v.cancel()
	}
	if v.uiRenderer != nil {
		v.uiRenderer.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
