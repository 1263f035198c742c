package game

import "math"

// TerrainShape selects the noise character of generated terrain.
type TerrainShape uint8

const (
	ShapeHills     TerrainShape = iota // rolling: few low-frequency octaves
	ShapeMountains                     // jagged: more high-frequency octaves
)

func (s TerrainShape) String() string {
	if s == ShapeMountains {
		return "mountains"
	}
	return "hills"
}

// ExplosionShape selects the crater profile carved by an explosion.
type ExplosionShape uint8

const (
	ExplosionCircle     ExplosionShape = iota // radius × radius
	ExplosionVertical                         // narrow-deep: height = radius × shapeRatio
	ExplosionHorizontal                       // wide-shallow: width = radius × shapeRatio
)

// TerrainField is the destructible battlefield: a boolean occupancy grid,
// true = solid. Columns are solid from some surface height down to the grid
// bottom; explosions only ever remove material, so the field can become
// cratered and overhung but never gains floating islands from damage.
type TerrainField struct {
	Width  int
	Height int
	cells  []bool // row-major: index = y*Width + x
}

// terrainShapeParams bundles the noise settings for a shape.
type terrainShapeParams struct {
	octaves     int
	baseFreq    float64
	persistence float64
	amplitude   float64 // base height swing as a fraction of field height
}

var terrainShapeTable = map[TerrainShape]terrainShapeParams{
	ShapeHills:     {octaves: 3, baseFreq: 0.0035, persistence: 0.45, amplitude: 0.22},
	ShapeMountains: {octaves: 5, baseFreq: 0.0080, persistence: 0.55, amplitude: 0.34},
}

// GenerateTerrain builds the occupancy grid from layered value noise over the
// X axis. The octave stack produces a height-per-column curve; everything at
// or below that height is filled solid. Deterministic for a given seed.
func GenerateTerrain(width, height int, shape TerrainShape, roughness float64, seed int64) *TerrainField {
	tf := &TerrainField{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}

	params, ok := terrainShapeTable[shape]
	if !ok {
		params = terrainShapeTable[ShapeHills]
	}
	roughness = clampRoughness(roughness)

	// Roughness scales the height swing: 0 = gentle, 1 = full amplitude.
	swing := params.amplitude * (0.5 + roughness) * float64(height)
	baseline := float64(height) * 0.62

	for x := 0; x < width; x++ {
		n := fractalNoise1D(float64(x), params.octaves, params.baseFreq, params.persistence, seed)
		// n is in [0,1]; recentre around the baseline.
		surface := baseline - (n-0.5)*2*swing
		surfY := int(math.Round(surface))
		if surfY < 2 {
			surfY = 2 // always leave some sky
		}
		if surfY >= height {
			surfY = height - 1
		}
		for y := surfY; y < height; y++ {
			tf.cells[y*width+x] = true
		}
	}
	return tf
}

// fractalNoise1D sums octaves of value noise along one axis, normalised back
// to [0,1]. Each octave uses a distinct lattice seed so features don't align.
func fractalNoise1D(x float64, octaves int, baseFreq, persistence float64, seed int64) float64 {
	total := 0.0
	maxAmp := 0.0
	amp := 1.0
	freq := baseFreq
	for o := 0; o < octaves; o++ {
		total += valueNoise2D(x*freq, 0, seed+int64(o)*7919) * amp
		maxAmp += amp
		amp *= persistence
		freq *= 2.1
	}
	if maxAmp == 0 {
		return 0.5
	}
	return total / maxAmp
}

// IsSolid reports whether the cell at (x, y) is solid ground. Out-of-bounds
// queries are not solid — below the bottom edge callers must treat the world
// as implicit ground (the collision resolver does).
func (tf *TerrainField) IsSolid(x, y int) bool {
	if x < 0 || x >= tf.Width || y < 0 || y >= tf.Height {
		return false
	}
	return tf.cells[y*tf.Width+x]
}

// SolidAt is the float-coordinate convenience wrapper around IsSolid.
func (tf *TerrainField) SolidAt(x, y float64) bool {
	return tf.IsSolid(int(math.Floor(x)), int(math.Floor(y)))
}

// SurfaceHeight returns the y of the topmost solid cell in column x, or
// Height if the column is empty (or x is out of bounds).
func (tf *TerrainField) SurfaceHeight(x int) int {
	if x < 0 || x >= tf.Width {
		return tf.Height
	}
	for y := 0; y < tf.Height; y++ {
		if tf.cells[y*tf.Width+x] {
			return y
		}
	}
	return tf.Height
}

// SolidCount returns the number of solid cells. Used by the monotonicity
// tests and the match report.
func (tf *TerrainField) SolidCount() int {
	n := 0
	for _, c := range tf.cells {
		if c {
			n++
		}
	}
	return n
}

// Carve removes solid cells inside the explosion footprint centred on
// (cx, cy) and returns the columns that actually changed, for incremental
// redraw. Shapes: circle (r × r), vertical ellipse (narrow-deep, half-height
// = r × ratio) and horizontal ellipse (wide-shallow, half-width = r × ratio).
// Carving only ever clears cells — repeat carves at the same spot are no-ops.
func (tf *TerrainField) Carve(cx, cy, radius float64, shape ExplosionShape, shapeRatio float64) []int {
	if radius <= 0 {
		return nil
	}
	if shapeRatio <= 0 {
		shapeRatio = 1
	}

	rx, ry := radius, radius
	switch shape {
	case ExplosionVertical:
		rx = radius * 0.5
		ry = radius * shapeRatio
	case ExplosionHorizontal:
		rx = radius * shapeRatio
		ry = radius * 0.5
	}

	x0 := int(math.Floor(cx - rx))
	x1 := int(math.Ceil(cx + rx))
	y0 := int(math.Floor(cy - ry))
	y1 := int(math.Ceil(cy + ry))

	var modified []int
	for x := x0; x <= x1; x++ {
		if x < 0 || x >= tf.Width {
			continue
		}
		changed := false
		for y := y0; y <= y1; y++ {
			if y < 0 || y >= tf.Height {
				continue
			}
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			idx := y*tf.Width + x
			if tf.cells[idx] {
				tf.cells[idx] = false
				changed = true
			}
		}
		if changed {
			modified = append(modified, x)
		}
	}
	return modified
}

// SurfaceNormal estimates the outward surface normal angle (radians) at
// column x from the slope of neighbouring surface heights. With y pointing
// down, flat ground yields -π/2 (straight up).
func (tf *TerrainField) SurfaceNormal(x int) float64 {
	const span = 2
	hl := float64(tf.SurfaceHeight(x - span))
	hr := float64(tf.SurfaceHeight(x + span))
	// Tangent runs along (2·span, hr-hl); rotate -90° for the outward normal.
	return math.Atan2(hl-hr, 2*span) - math.Pi/2
}

// --- Value noise (lattice-based, hermite-smoothed) ---

// valueNoise2D returns a smooth noise value in [0,1] for the given coordinates.
func valueNoise2D(x, y float64, seed int64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	xf := x - float64(xi)
	yf := y - float64(yi)

	// Hermite smoothstep.
	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	n00 := latticeValue(xi, yi, seed)
	n10 := latticeValue(xi+1, yi, seed)
	n01 := latticeValue(xi, yi+1, seed)
	n11 := latticeValue(xi+1, yi+1, seed)

	nx0 := n00*(1-u) + n10*u
	nx1 := n01*(1-u) + n11*u
	return nx0*(1-v) + nx1*v
}

// latticeValue returns a deterministic pseudo-random value in [0,1] for
// integer lattice coordinates.
func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(y) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
