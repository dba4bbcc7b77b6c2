package heatmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/tailscale/hujson"
)

// ErrDataset is wrapped by every dataset decoding failure.
var ErrDataset = errors.New("invalid dataset")

// DefaultLimit caps the number of rows loaded from a file.
const DefaultLimit = 1000

// Keys names the object fields holding x, y and magnitude.
type Keys struct {
	X, Y, Z string
}

var (
	// DefaultKeys reads {"x":..,"y":..,"z":..} rows.
	DefaultKeys = Keys{X: "x", Y: "y", Z: "z"}
	// PopulationKeys reads world population rows.
	PopulationKeys = Keys{X: "longitude", Y: "latitude", Z: "population"}
)

// Loader decodes datasets. Rows are either [x, y, z] arrays or objects whose
// fields are named by Keys. Comments and trailing commas are accepted.
type Loader struct {
	Keys  Keys
	Limit int // zero selects DefaultLimit, negative loads everything
}

// LoadFile reads a dataset from path.
func (l Loader) LoadFile(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	points, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// Decode reads a dataset from r.
func (l Loader) Decode(r io.Reader) ([]Point, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataset, err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(std, &rows); err != nil {
		return nil, fmt.Errorf("%w: top level must be an array: %w", ErrDataset, err)
	}

	limit := l.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	keys := l.Keys
	if keys == (Keys{}) {
		keys = DefaultKeys
	}

	points := make([]Point, 0, len(rows))
	for i, row := range rows {
		p, err := decodeRow(row, keys)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrDataset, i, err)
		}
		points = append(points, p)
	}
	return points, nil
}

func decodeRow(row json.RawMessage, keys Keys) (Point, error) {
	row = bytes.TrimSpace(row)
	if len(row) > 0 && row[0] == '[' {
		var values []float32
		if err := json.Unmarshal(row, &values); err != nil {
			return Point{}, err
		}
		if len(values) < 3 {
			return Point{}, fmt.Errorf("want 3 values, got %d", len(values))
		}
		return Point{X: values[0], Y: values[1], Z: values[2]}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(row, &fields); err != nil {
		return Point{}, err
	}

	var p Point
	for _, f := range []struct {
		key string
		dst *float32
	}{
		{keys.X, &p.X},
		{keys.Y, &p.Y},
		{keys.Z, &p.Z},
	} {
		v, ok := fields[f.key]
		if !ok {
			return Point{}, fmt.Errorf("missing field %q", f.key)
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return Point{}, fmt.Errorf("field %q: %w", f.key, err)
		}
	}
	return p, nil
}

// Encode writes points as [x, y, z] rows.
func Encode(w io.Writer, points []Point) error {
	rows := make([][3]float32, len(points))
	for i, p := range points {
		rows[i] = [3]float32{p.X, p.Y, p.Z}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// Generate returns n random points with every component drawn uniformly from
// [-bound, bound]. A non-positive bound selects 100.
func Generate(n int, bound float32, rng *rand.Rand) []Point {
	if bound <= 0 {
		bound = 100
	}
	next := func() float32 {
		return (rng.Float32()*2 - 1) * bound
	}

	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: next(), Y: next(), Z: next()}
	}
	return points
}

// GenerateGeo returns n random points spread over the whole globe with
// magnitudes in [0, maxMagnitude].
func GenerateGeo(n int, maxMagnitude float32, rng *rand.Rand) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			X: rng.Float32()*360 - 180,
			Y: rng.Float32()*180 - 90,
			Z: rng.Float32() * maxMagnitude,
		}
	}
	return points
}
