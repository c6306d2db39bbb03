package fluvial

import (
	"image"
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/flywave/go-cog"
	"github.com/flywave/go-geo"
)

var epsg4326 geo.Proj

func init() {
	epsg4326 = geo.NewProj(4326)
}

// Raster is an in-memory single-band grid with its georeference. Data is
// stored row-major with row zero at the northern edge. NaN marks invalid
// cells.
type Raster struct {
	Data   []float64
	Width  int
	Height int
	Bounds vec2d.Rect
	Srs    geo.Proj
}

func NewRaster(width, height int, bounds vec2d.Rect, srs geo.Proj) *Raster {
	if srs == nil {
		srs = epsg4326
	}
	return &Raster{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
		Bounds: bounds,
		Srs:    srs,
	}
}

// CellSize returns the pixel size in x and y direction.
func (r *Raster) CellSize() [2]float64 {
	return [2]float64{
		(r.Bounds.Max[0] - r.Bounds.Min[0]) / float64(r.Width),
		(r.Bounds.Max[1] - r.Bounds.Min[1]) / float64(r.Height),
	}
}

func (r *Raster) Value(row, col int) float64 {
	return r.Data[row*r.Width+col]
}

func (r *Raster) SetValue(row, col int, v float64) {
	r.Data[row*r.Width+col] = v
}

// CellCenter returns the world coordinates of the cell center.
func (r *Raster) CellCenter(row, col int) vec2d.T {
	cs := r.CellSize()
	return vec2d.T{
		r.Bounds.Min[0] + (float64(col)+0.5)*cs[0],
		r.Bounds.Max[1] - (float64(row)+0.5)*cs[1],
	}
}

// CellAt maps world coordinates to the enclosing cell. ok is false for
// coordinates outside the raster bounds.
func (r *Raster) CellAt(x, y float64) (row, col int, ok bool) {
	if x < r.Bounds.Min[0] || x > r.Bounds.Max[0] ||
		y < r.Bounds.Min[1] || y > r.Bounds.Max[1] {
		return 0, 0, false
	}
	cs := r.CellSize()
	col = int((x - r.Bounds.Min[0]) / cs[0])
	row = int((r.Bounds.Max[1] - y) / cs[1])
	if col >= r.Width {
		col = r.Width - 1
	}
	if row >= r.Height {
		row = r.Height - 1
	}
	return row, col, true
}

// Sample returns the raster value at the given world coordinates using
// nearest-neighbour lookup, clamped to the raster edge.
func (r *Raster) Sample(x, y float64) float64 {
	cs := r.CellSize()
	col := int((x - r.Bounds.Min[0]) / cs[0])
	row := int((r.Bounds.Max[1] - y) / cs[1])
	if col < 0 {
		col = 0
	}
	if col >= r.Width {
		col = r.Width - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= r.Height {
		row = r.Height - 1
	}
	return r.Value(row, col)
}

func (r *Raster) Clone() *Raster {
	out := NewRaster(r.Width, r.Height, r.Bounds, r.Srs)
	copy(out.Data, r.Data)
	return out
}

// Fill sets every cell to v.
func (r *Raster) Fill(v float64) {
	for i := range r.Data {
		r.Data[i] = v
	}
}

// Normalise rescales all finite cells to [0, 1]. Rasters without finite
// cells or without value spread are left unchanged.
func (r *Raster) Normalise() {
	min, max, ok := nanMinMax(r.Data)
	if !ok || max == min {
		return
	}
	for i, v := range r.Data {
		if !math.IsNaN(v) {
			r.Data[i] = (v - min) / (max - min)
		}
	}
}

// LoadRaster reads the first band of a GeoTIFF file.
func LoadRaster(path string) (*Raster, error) {
	src := cog.Read(path)
	if src == nil {
		return nil, inputErrorf("cannot read raster %s", path)
	}
	si := src.GetSize(0)
	bounds := src.GetBounds(0)
	data, ok := src.Data[0].([]float64)
	if !ok {
		return nil, inputErrorf("raster %s has no float64 band", path)
	}

	srs := epsg4326
	if code, err := src.GetEPSGCode(0); err == nil {
		srs = geo.NewProj(code)
	}

	out := &Raster{
		Data:   data,
		Width:  int(si[0]),
		Height: int(si[1]),
		Bounds: bounds,
		Srs:    srs,
	}
	return out, nil
}

// Save writes the raster to a GeoTIFF file.
func (r *Raster) Save(path string) error {
	rect := image.Rect(0, 0, r.Width, r.Height)
	src := cog.NewSource(r.Data, &rect, cog.CTLZW)
	si := [2]uint32{uint32(r.Width), uint32(r.Height)}
	return cog.WriteTile(path, src, r.Bounds, r.Srs, si, nil)
}
