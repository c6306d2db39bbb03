package fluvial

import (
	"math"
	"math/rand"

	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// Param is a model parameter that is either a fixed scalar or a [low, high]
// range to be sampled uniformly during catalogue generation.
type Param struct {
	Low    float64
	High   float64
	Ranged bool
}

func Fixed(v float64) Param {
	return Param{Low: v, High: v}
}

func Range(low, high float64) Param {
	return Param{Low: low, High: high, Ranged: true}
}

// at maps a unit-interval coordinate into the parameter range.
func (p Param) at(u float64) float64 {
	if !p.Ranged {
		return p.Low
	}
	return p.Low + u*(p.High-p.Low)
}

// Parameters is the template for reference catalogue generation. Every field
// is either fixed or ranged.
type Parameters struct {
	Ds   Param // mean grain diameter (m)
	Ss   Param // log standard deviation of grain diameter
	Rs   Param // sediment density (kg/m^3)
	Qs   Param // unit sediment flux (m^2/s)
	Ww   Param // flow width (m)
	Aw   Param // flow inclination angle (rad)
	Hw   Param // flow depth (m)
	Fmin Param // lower frequency bound (Hz)
	Fmax Param // upper frequency bound (Hz)
	R0   Param // station distance (m)
	F0   Param // reference frequency (Hz)
	Q0   Param // ground quality factor at F0
	V0   Param // Rayleigh phase velocity at F0 (m/s)
	P0   Param // velocity frequency exponent
	E0   Param // quality factor frequency exponent
	N0a  Param // Greens function amplitude coefficient
	N0b  Param // Greens function amplitude coefficient
	Res  Param // spectrum length
}

// ParameterSet is one concrete parameter combination.
type ParameterSet struct {
	Ds   float64
	Ss   float64
	Rs   float64
	Qs   float64
	Ww   float64
	Aw   float64
	Hw   float64
	Fmin float64
	Fmax float64
	R0   float64
	F0   float64
	Q0   float64
	V0   float64
	P0   float64
	E0   float64
	N0a  float64
	N0b  float64
	Res  int
}

// ParameterFields lists the parameter names in table column order.
func ParameterFields() []string {
	return []string{
		"d_s", "s_s", "r_s", "q_s", "w_w", "a_w", "h_w",
		"f_min", "f_max", "r_0", "f_0", "q_0", "v_0", "p_0", "e_0",
		"n_0_a", "n_0_b", "res",
	}
}

// Values returns the parameter values in ParameterFields order.
func (p ParameterSet) Values() []float64 {
	return []float64{
		p.Ds, p.Ss, p.Rs, p.Qs, p.Ww, p.Aw, p.Hw,
		p.Fmin, p.Fmax, p.R0, p.F0, p.Q0, p.V0, p.P0, p.E0,
		p.N0a, p.N0b, float64(p.Res),
	}
}

func (t Parameters) fields() []Param {
	return []Param{
		t.Ds, t.Ss, t.Rs, t.Qs, t.Ww, t.Aw, t.Hw,
		t.Fmin, t.Fmax, t.R0, t.F0, t.Q0, t.V0, t.P0, t.E0,
		t.N0a, t.N0b, t.Res,
	}
}

func fromValues(v []float64) ParameterSet {
	return ParameterSet{
		Ds: v[0], Ss: v[1], Rs: v[2], Qs: v[3], Ww: v[4], Aw: v[5], Hw: v[6],
		Fmin: v[7], Fmax: v[8], R0: v[9], F0: v[10], Q0: v[11], V0: v[12],
		P0: v[13], E0: v[14], N0a: v[15], N0b: v[16],
		Res: int(math.Round(v[17])),
	}
}

// Sample draws n parameter sets. Ranged fields are sampled uniformly and
// independently per entry, fixed fields are shared verbatim. Each entry uses
// its own generator so entries stay uncorrelated.
func (t Parameters) Sample(n int, seed int64) []ParameterSet {
	fields := t.fields()
	out := make([]ParameterSet, n)
	for i := range out {
		rng := rand.New(mrg63k3a.New())
		rng.Seed(seed + int64(i))
		v := make([]float64, len(fields))
		for j, p := range fields {
			v[j] = p.at(rng.Float64())
		}
		out[i] = fromValues(v)
	}
	return out
}

// SampleLHC draws n parameter sets from a Latin hypercube plan over the
// ranged fields, giving better range coverage than independent uniform
// draws for small catalogues.
func (t Parameters) SampleLHC(n int, seed int64) []ParameterSet {
	fields := t.fields()
	var ranged []int
	for j, p := range fields {
		if p.Ranged {
			ranged = append(ranged, j)
		}
	}
	if len(ranged) == 0 {
		return t.Sample(n, seed)
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	plan := smpln.NewLHC(rng, n, len(ranged), false)

	out := make([]ParameterSet, n)
	for k := 0; k < n; k++ {
		v := make([]float64, len(fields))
		for j, p := range fields {
			v[j] = p.Low
		}
		for d, j := range ranged {
			v[j] = fields[j].at(plan.U[d][k])
		}
		out[k] = fromValues(v)
	}
	return out
}
