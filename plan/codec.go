package plan

import (
	"math"

	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/genetic"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/vmath"
)

// VectorCodec flattens the placements of a plan into a real vector
// Unit groups contribute angle, distance and drop time; spell groups x, y and drop time
// Kinds, levels and counts come from the template and never change
type VectorCodec struct {
	template AttackPlan
	bounds   []genetic.ParameterBounds
}

// NewVectorCodec creates a codec for plans shaped like template on map m
func NewVectorCodec(template AttackPlan, m *game.Map) *VectorCodec {
	lo, hi := spellRange(m)
	drop := genetic.ParameterBounds{Min: 0, Max: parameter.MaxDropTime}
	var b []genetic.ParameterBounds
	for range template.Units {
		b = append(b, genetic.Unbounded(vmath.TwoPi), genetic.ParameterBounds{Min: 0, Max: 1}, drop)
	}
	for range template.Spells {
		coord := genetic.ParameterBounds{Min: lo, Max: hi}
		b = append(b, coord, coord, drop)
	}
	return &VectorCodec{template: template.Clone(), bounds: b}
}

// Dim returns the vector length
func (c *VectorCodec) Dim() int { return len(c.bounds) }

// Bounds returns the per-dimension limits
func (c *VectorCodec) Bounds() []genetic.ParameterBounds { return c.bounds }

func (c *VectorCodec) Encode(p AttackPlan) []float64 {
	v := make([]float64, 0, len(c.bounds))
	for _, g := range p.Units {
		v = append(v, g.Angle, g.Distance, g.DropTime)
	}
	for _, g := range p.Spells {
		v = append(v, g.X, g.Y, g.DropTime)
	}
	return v
}

// Decode clamps v and writes it into a copy of the template
func (c *VectorCodec) Decode(v []float64) AttackPlan {
	v = c.Clamp(v)
	p := c.template.Clone()
	for i := range p.Units {
		g := &p.Units[i]
		g.Angle = vmath.NormalizeAngle(v[3*i])
		g.Distance = v[3*i+1]
		g.DropTime = v[3*i+2]
	}
	off := 3 * len(p.Units)
	for i := range p.Spells {
		g := &p.Spells[i]
		g.X = v[off+3*i]
		g.Y = v[off+3*i+1]
		g.DropTime = v[off+3*i+2]
	}
	return p
}

// Clamp projects v into the bounds; NaN coordinates become the lower bound or 0
func (c *VectorCodec) Clamp(v []float64) []float64 {
	out := (&genetic.BoundedPerturbator{Bounds: c.bounds}).Clamp(v)
	for i, x := range out {
		if math.IsNaN(x) {
			out[i] = 0
			if i < len(c.bounds) && !math.IsInf(c.bounds[i].Min, 0) {
				out[i] = c.bounds[i].Min
			}
		}
	}
	return out
}

var _ genetic.VectorCodec[AttackPlan] = (*VectorCodec)(nil)
