// Package viewer assembles the heat map scene and runs the interactive loop.
package viewer

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/geoheat/internal/config"
	"github.com/Faultbox/geoheat/internal/engine/camera"
	"github.com/Faultbox/geoheat/internal/engine/debug"
	"github.com/Faultbox/geoheat/internal/engine/picking"
	"github.com/Faultbox/geoheat/internal/engine/projection"
	"github.com/Faultbox/geoheat/internal/engine/viewport"
	"github.com/Faultbox/geoheat/internal/heatmap"
	"github.com/Faultbox/geoheat/internal/logger"
	"github.com/Faultbox/geoheat/pkg/math"
)

// Line colours for the surface outline and the backdrop box.
var (
	outlineColor  = colorful.Color{R: 0.55, G: 0.6, B: 0.65}
	backdropColor = colorful.Color{R: 0.2, G: 0.22, B: 0.26}
	hoverColor    = colorful.Color{R: 1, G: 1, B: 1}
)

// Surface converts the surface section of the config.
func Surface(cfg config.SurfaceConfig) (heatmap.Surface, error) {
	kind, err := projection.ParseKind(cfg.Kind)
	if err != nil {
		return heatmap.Surface{}, err
	}
	if kind == projection.Spherical {
		return heatmap.RoundSurface(cfg.Radius), nil
	}
	return heatmap.FlatSurface(cfg.Width, cfg.Depth, cfg.Height), nil
}

// Options converts the points section of the config.
func Options(cfg config.PointsConfig) (heatmap.Options, error) {
	mode, err := heatmap.ParseMode(cfg.Mode)
	if err != nil {
		return heatmap.Options{}, err
	}
	g := cfg.Gradient
	gradient, err := heatmap.ParseGradient(g.Low, g.Medium, g.High)
	if err != nil {
		return heatmap.Options{}, err
	}

	opts := heatmap.DefaultOptions()
	opts.Mode = mode
	opts.Gradient = gradient
	opts.Alpha = cfg.Alpha
	if cfg.Size > 0 {
		opts.Footprint = cfg.Size
	}
	return opts, nil
}

// Filter builds the magnitude filter. Zero bounds show everything and a zero
// maximum leaves the top open.
func Filter(cfg config.PointsConfig) heatmap.Filter {
	if cfg.MinMagnitude == 0 && cfg.MaxMagnitude == 0 {
		return heatmap.Filter{}
	}
	upper := cfg.MaxMagnitude
	if upper == 0 {
		upper = math32.MaxFloat32
	}
	return heatmap.MagnitudeFilter(cfg.MinMagnitude, upper)
}

// Limits converts the camera section into navigation limits.
func Limits(cfg config.CameraConfig) camera.Limits {
	return camera.Limits{
		MinHeight:   cfg.MinHeight,
		MinPolar:    math.DegToRad(cfg.MinPolarDeg),
		MaxPolar:    math.DegToRad(cfg.MaxPolarDeg),
		Epsilon:     cfg.Epsilon,
		RotateSpeed: cfg.RotateSpeed,
	}
}

// Loader returns the dataset loader for the data section.
func Loader(cfg config.DataConfig) heatmap.Loader {
	keys := heatmap.DefaultKeys
	if strings.EqualFold(cfg.Format, "population") {
		keys = heatmap.PopulationKeys
	}
	return heatmap.Loader{Keys: keys, Limit: cfg.Limit}
}

// LoadPoints reads the configured dataset, or generates one when no path is
// set. Generated points cover the whole globe.
func LoadPoints(cfg config.DataConfig, maxMagnitude float32) ([]heatmap.Point, error) {
	if cfg.Path != "" {
		return Loader(cfg).LoadFile(cfg.Path)
	}
	if maxMagnitude <= 0 {
		maxMagnitude = 100
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	return heatmap.GenerateGeo(cfg.Generate, maxMagnitude, rng), nil
}

// Scene is everything the viewer draws and navigates, without any GL state.
type Scene struct {
	cfg      *config.Config
	vp       viewport.Provider
	camera   *camera.Camera
	ctrl     *camera.Controller
	gestures *camera.Gestures
	vis      *heatmap.Visualisation
	backdrop *heatmap.Backdrop
	start    math.Vec3
	hover    *heatmap.Node

	// geometry is rebuilt lazily after data, filter or mode changes.
	dirty bool
	log   *zap.Logger
}

// NewScene projects points onto the configured surface and places a camera
// controller over it.
func NewScene(cfg *config.Config, points []heatmap.Point, vp viewport.Provider) (*Scene, error) {
	surface, err := Surface(cfg.Surface)
	if err != nil {
		return nil, err
	}
	opts, err := Options(cfg.Points)
	if err != nil {
		return nil, err
	}
	vis, err := heatmap.NewVisualisation(surface, points, opts)
	if err != nil {
		return nil, fmt.Errorf("building visualisation: %w", err)
	}
	vis.SetFilter(Filter(cfg.Points))

	s := &Scene{
		cfg:      cfg,
		vp:       vp,
		camera:   camera.New(cfg.Camera.FOVDeg, cfg.Camera.Near, cfg.Camera.Far),
		vis:      vis,
		backdrop: heatmap.NewBackdrop(cfg.Camera.Far),
		start:    surface.CameraStart(),
		dirty:    true,
		log:      logger.Named("scene"),
	}
	if pos := math.Vec3FromArray(cfg.Camera.Position); pos != (math.Vec3{}) {
		s.start = pos
	}
	s.camera.SetPosition(s.start)

	s.ctrl, err = camera.NewController(s.camera, vp, math.Vec3{}, Limits(cfg.Camera))
	if err != nil {
		return nil, err
	}
	// Reset returns to the pose the controller settled on, not the raw one.
	s.start = s.camera.Position()
	s.gestures = camera.NewGestures(s.ctrl, cfg.Camera.ZoomFactor)
	s.backdrop.Attach(s.ctrl)
	s.ctrl.Subscribe(func(ev camera.Event) {
		s.log.Debug("camera",
			zap.Stringer("kind", ev.Kind),
			zap.Any("position", ev.Position),
			zap.Any("origin", ev.Origin),
		)
	})

	stats := vis.Stats()
	s.log.Info("scene ready",
		zap.Stringer("surface", surface.Kind),
		zap.Int("points", stats.Count),
		zap.Int("visible", vis.Visible()),
		zap.Float64("min", stats.Min),
		zap.Float64("max", stats.Max),
	)
	return s, nil
}

func (s *Scene) Camera() *camera.Camera                { return s.camera }
func (s *Scene) Controller() *camera.Controller        { return s.ctrl }
func (s *Scene) Gestures() *camera.Gestures            { return s.gestures }
func (s *Scene) Visualisation() *heatmap.Visualisation { return s.vis }
func (s *Scene) Backdrop() *heatmap.Backdrop           { return s.backdrop }

// ViewProjection returns projection * view for the current viewport.
func (s *Scene) ViewProjection() math.Mat4 {
	proj := s.camera.ProjectionMatrix(viewport.Aspect(s.vp))
	return proj.Mul(s.camera.ViewMatrix())
}

// Reset returns the camera to its starting pose over the surface origin.
func (s *Scene) Reset() {
	s.camera.SetPosition(s.start)
	s.ctrl.SetOrigin(math.Vec3{})
	s.camera.LookAt(math.Vec3{})
	// A zero zoom keeps the pose and notifies listeners.
	s.ctrl.Zoom(0)
}

// SetPoints replaces the dataset. The filter and colour mode carry over.
func (s *Scene) SetPoints(points []heatmap.Point) error {
	s.hover = nil
	s.dirty = true
	if err := s.vis.SetPoints(points); err != nil {
		return err
	}
	s.log.Info("dataset replaced",
		zap.Int("points", len(points)),
		zap.Int("visible", s.vis.Visible()),
	)
	return nil
}

// ToggleMode switches between basic and gradient colouring.
func (s *Scene) ToggleMode() heatmap.Mode {
	mode := heatmap.ModeBasic
	if s.vis.Options().Mode == heatmap.ModeBasic {
		mode = heatmap.ModeGradient
	}
	s.vis.SetMode(mode)
	s.dirty = true
	return mode
}

// SetFilter replaces the point filter and returns how many points remain.
func (s *Scene) SetFilter(f heatmap.Filter) int {
	s.dirty = true
	if s.hover != nil && !f.Accepts(s.hover.Point) {
		s.hover = nil
	}
	return s.vis.SetFilter(f)
}

// SetMagnitudeFloor hides points below fraction of the colour bound, on top
// of the configured filter. Zero restores the configured filter. It returns
// the floor in magnitude units and how many points remain.
func (s *Scene) SetMagnitudeFloor(fraction float32) (float32, int) {
	fraction = min(max(fraction, 0), 1)
	f := Filter(s.cfg.Points)
	bound := s.vis.Stats().Bound
	floor := bound.Min + fraction*bound.Span()
	if fraction == 0 {
		return floor, s.SetFilter(f)
	}

	if f.Magnitude != nil {
		floor = max(floor, f.Magnitude.Min)
		r := *f.Magnitude
		r.Min = min(floor, r.Max)
		f.Magnitude = &r
	} else {
		f = heatmap.MagnitudeFilter(floor, bound.Max)
	}
	return floor, s.SetFilter(f)
}

// Hovered returns the bar under the pointer from the last Hover, if any.
func (s *Scene) Hovered() *heatmap.Node {
	return s.hover
}

// ClearHover forgets the hovered bar.
func (s *Scene) ClearHover() {
	s.hover = nil
}

// Hover picks the bar under the screen position.
func (s *Scene) Hover(screen math.Vec2) (*heatmap.Node, bool) {
	ray := picking.ScreenToRay(s.vp, screen, s.ViewProjection().Inverse())
	node, ok := s.vis.Pick(ray)
	if ok {
		s.hover = node
	} else {
		s.hover = nil
	}
	return node, ok
}

// Title describes the scene for the window title bar.
func (s *Scene) Title() string {
	title := fmt.Sprintf("%s - %d/%d points - %s",
		s.cfg.Window.Title, s.vis.Visible(), len(s.vis.Nodes()), s.vis.Options().Mode)
	if s.hover != nil {
		title += " - " + s.hover.Point.String()
	}
	return title
}

// Geometry returns bar triangles and outline lines when they changed since
// the last call. changed is false when the previous buffers are still valid.
func (s *Scene) Geometry() (bars, lines []float32, changed bool) {
	if !s.dirty {
		return nil, nil, false
	}
	s.dirty = false
	return s.vis.BarVertices(), heatmap.LineVertices(s.vis.Surface().Outline(), outlineColor, 1), true
}

// BackdropLines returns the backdrop box around the camera.
func (s *Scene) BackdropLines() []float32 {
	return heatmap.LineVertices(s.backdrop.Outline(), backdropColor, 1)
}

// HoverLines returns a wireframe around the bar under the pointer, if any.
func (s *Scene) HoverLines() []float32 {
	if s.hover == nil {
		return nil
	}
	return heatmap.LineVertices(debug.Wireframe(s.hover.Bounds(), debug.DefaultPadding), hoverColor, 1)
}
