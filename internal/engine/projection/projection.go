// Package projection places scene objects onto a flat or spherical surface from
// their logical coordinates.
//
// A Projection is created once per surface and shared read-only by every point
// projected onto it. Project mutates the object it is given: the object keeps
// no projection-specific logic of its own.
package projection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/geoheat/pkg/math"
)

var (
	// ErrInvalidConfig is returned for projection settings that cannot produce
	// a finite position.
	ErrInvalidConfig = errors.New("invalid projection config")

	// ErrNonFinite is returned when a projection would yield NaN or Inf.
	ErrNonFinite = errors.New("projection produced a non-finite position")
)

const (
	defaultRadius = 1
	defaultOffset = 0
)

// Kind selects the projection model.
type Kind int

const (
	Planar Kind = iota
	Spherical
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case Planar:
		return "flat"
	case Spherical:
		return "round"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "flat"/"planar" and "round"/"spherical".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "planar":
		return Planar, nil
	case "round", "spherical", "globe":
		return Spherical, nil
	default:
		return 0, fmt.Errorf("unknown surface kind %q: %w", s, ErrInvalidConfig)
	}
}

// Bounds remaps the horizontal (X) and depth (Y) logical axes into scene space.
type Bounds struct {
	X math.RangePair
	Y math.RangePair
}

// Config is shared by every object projected onto one surface.
type Config struct {
	// Offset is the height above a flat surface. Zero means 0.
	Offset float32
	// Radius of the sphere. Zero means 1.
	Radius float32
	// Target is the point spherical objects face before being tipped outward.
	Target math.Vec3
	// Bounds is nil when no remapping is configured.
	Bounds *Bounds
}

// Object is anything with a mutable position and orientation.
type Object interface {
	Position() math.Vec3
	SetPosition(math.Vec3)
	SetRotation(math.Mat4)
}

// Projection computes scene placement for objects under one model.
type Projection struct {
	kind     Kind
	cfg      Config
	strategy func(p *Projection, obj Object, args params) error
}

// New validates cfg and binds the strategy for kind.
func New(kind Kind, cfg Config) (*Projection, error) {
	if cfg.Radius < 0 || !finite(cfg.Radius) {
		return nil, fmt.Errorf("radius %g: %w", cfg.Radius, ErrInvalidConfig)
	}
	if !finite(cfg.Offset) {
		return nil, fmt.Errorf("offset %g: %w", cfg.Offset, ErrInvalidConfig)
	}
	if !cfg.Target.IsFinite() {
		return nil, fmt.Errorf("target %v: %w", cfg.Target, ErrInvalidConfig)
	}
	if cfg.Radius == 0 {
		cfg.Radius = defaultRadius
	}
	if cfg.Bounds != nil {
		if err := validatePair("x", cfg.Bounds.X); err != nil {
			return nil, err
		}
		if err := validatePair("y", cfg.Bounds.Y); err != nil {
			return nil, err
		}
	}

	p := &Projection{kind: kind, cfg: cfg}
	switch kind {
	case Planar:
		p.strategy = (*Projection).planar
	case Spherical:
		p.strategy = (*Projection).spherical
	default:
		return nil, fmt.Errorf("kind %d: %w", int(kind), ErrInvalidConfig)
	}
	return p, nil
}

// MustNew is like New but panics on an invalid config. Use it for static
// wiring where a bad config is a programming error.
func MustNew(kind Kind, cfg Config) *Projection {
	p, err := New(kind, cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// validatePair allows the all-zero pair, which collapses the axis to zero.
func validatePair(axis string, pair math.RangePair) error {
	if pair.IsZero() {
		return nil
	}
	if err := pair.From.Validate(); err != nil {
		return fmt.Errorf("bounds %s origin: %w: %w", axis, ErrInvalidConfig, err)
	}
	if pair.To.Min > pair.To.Max {
		return fmt.Errorf("bounds %s target [%g, %g]: %w", axis, pair.To.Min, pair.To.Max, ErrInvalidConfig)
	}
	return nil
}

// Kind returns the projection model.
func (p *Projection) Kind() Kind {
	return p.kind
}

// Config returns the effective config, defaults applied.
func (p *Projection) Config() Config {
	return p.cfg
}

// Project places obj according to the bound strategy. Overrides replace
// config values for this call only.
func (p *Projection) Project(obj Object, overrides ...Override) error {
	args := params{
		target: p.cfg.Target,
		radius: p.cfg.Radius,
		offset: p.cfg.Offset,
	}
	for _, o := range overrides {
		o(&args)
	}
	return p.strategy(p, obj, args)
}

// planar lifts obj to the configured offset and, if bounds are set, remaps its
// x and depth. Depth is sign-flipped so that north ends up at negative z.
func (p *Projection) planar(obj Object, args params) error {
	pos := obj.Position()
	pos.Y = args.offset

	if b := p.cfg.Bounds; b != nil {
		pos.X = b.X.Map(pos.X)
		pos.Z = b.Y.Map(-pos.Z)
	}

	if !pos.IsFinite() {
		return ErrNonFinite
	}
	obj.SetPosition(pos)
	return nil
}

// spherical reads x as an azimuth in degrees and the flipped depth, remapped
// through bounds.Y, as a polar angle in degrees. The object faces the target
// and is then tipped -90 degrees about its x axis so its up axis points away
// from the centre.
func (p *Projection) spherical(obj Object, args params) error {
	if args.radius <= 0 || !finite(args.radius) {
		return fmt.Errorf("radius %g: %w", args.radius, ErrInvalidConfig)
	}

	pos := obj.Position()
	azimuth, polar := args.azimuth, args.polar
	if !args.hasAngles {
		var bounds Bounds
		if p.cfg.Bounds != nil {
			bounds = *p.cfg.Bounds
		}
		azimuth = math.DegToRad(pos.X)
		polar = math.DegToRad(bounds.Y.Map(-pos.Z))
	}

	out := math.SphericalToCartesian(args.radius, azimuth, polar)
	if !out.IsFinite() {
		return ErrNonFinite
	}

	rot := math.LookRotation(args.target.Sub(out), math.Up).Mul(math.RotateX(-math.Pi / 2))
	obj.SetPosition(out)
	obj.SetRotation(rot)
	return nil
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
