package heatmap

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		loader Loader
		input  string
		want   []Point
	}{
		{
			name:  "triples",
			input: `[[1, 2, 3], [-180, 90, 0.5]]`,
			want:  []Point{{X: 1, Y: 2, Z: 3}, {X: -180, Y: 90, Z: 0.5}},
		},
		{
			name:  "objects",
			input: `[{"x": 1, "y": 2, "z": 3, "name": "a"}]`,
			want:  []Point{{X: 1, Y: 2, Z: 3}},
		},
		{
			name:   "population keys",
			loader: Loader{Keys: PopulationKeys},
			input:  `[{"longitude": 151.2, "latitude": -33.9, "population": 5.3}]`,
			want:   []Point{{X: 151.2, Y: -33.9, Z: 5.3}},
		},
		{
			name: "comments and trailing commas",
			input: `[
				// Sydney
				[151.2, -33.9, 5.3],
				[0, 0, 1], /* origin */
			]`,
			want: []Point{{X: 151.2, Y: -33.9, Z: 5.3}, {X: 0, Y: 0, Z: 1}},
		},
		{
			name:   "limit",
			loader: Loader{Limit: 1},
			input:  `[[1, 1, 1], [2, 2, 2]]`,
			want:   []Point{{X: 1, Y: 1, Z: 1}},
		},
		{
			name:  "empty",
			input: `[]`,
			want:  []Point{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.loader.Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an array", `{"x": 1}`},
		{"short row", `[[1, 2]]`},
		{"missing field", `[{"x": 1, "y": 2}]`},
		{"string value", `[{"x": "east", "y": 2, "z": 3}]`},
		{"broken json", `[[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Loader{}.Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrDataset)
		})
	}
}

func TestDecodeDefaultLimit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, make([]Point, DefaultLimit+10)))

	got, err := Loader{}.Decode(&buf)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	points := []Point{{X: 10, Y: 20, Z: 30}, {X: -1, Y: -2, Z: 0.25}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, points))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Loader{}.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, points, got)

	_, err = Loader{}.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	points := Generate(200, 50, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, points, 200)

	for _, p := range points {
		for _, v := range []float32{p.X, p.Y, p.Z} {
			assert.GreaterOrEqual(t, v, float32(-50))
			assert.LessOrEqual(t, v, float32(50))
		}
	}

	again := Generate(200, 50, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, points, again, "same seed gives the same dataset")
}

func TestGenerateGeo(t *testing.T) {
	for _, p := range GenerateGeo(200, 10, rand.New(rand.NewPCG(3, 4))) {
		assert.True(t, Longitude.Contains(p.X), "longitude %v", p.X)
		assert.True(t, Latitude.Contains(p.Y), "latitude %v", p.Y)
		assert.GreaterOrEqual(t, p.Z, float32(0))
		assert.LessOrEqual(t, p.Z, float32(10))
	}
}

func TestPointScene(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}

	assert.Equal(t, float32(3), p.Magnitude())
	assert.Equal(t, float32(1), p.Scene().X)
	assert.Equal(t, float32(3), p.Scene().Y)
	assert.Equal(t, float32(2), p.Scene().Z)
}
