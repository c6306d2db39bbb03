package fluvial

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// InversionResult aggregates the per-column matching output. Parameters has
// one row per empirical spectrum in ParameterFields column order, Residuals
// one row of per-frequency absolute residuals. Rows for unmatchable columns
// are NaN, and the corresponding Best index is -1.
type InversionResult struct {
	Parameters *mat.Dense
	Residuals  *mat.Dense
	RMSE       []float64
	Best       []int
}

type InversionOptions struct {
	Workers int
}

// Invert matches each column of data (spectra organised by columns, one row
// per frequency bin) against the reference catalogue, selecting the entry
// with the lowest RMSE. The frequency axes of catalogue and data must agree;
// this is trusted, not verified. Columns containing NaN degrade to NaN rows;
// if every column degrades, a NoValidDataError is returned.
func Invert(catalogue []*CatalogueEntry, data *mat.Dense, opts *InversionOptions) (*InversionResult, error) {
	var o InversionOptions
	if opts != nil {
		o = *opts
	}

	if len(catalogue) == 0 {
		return nil, configErrorf("reference catalogue is empty")
	}
	rows, cols := data.Dims()
	for i, entry := range catalogue {
		if len(entry.Power) != rows {
			return nil, configErrorf("catalogue entry %d has %d frequency bins, data has %d",
				i, len(entry.Power), rows)
		}
	}

	// Entries degraded to NaN under the lenient catalogue policy never
	// match.
	usable := make([]bool, len(catalogue))
	anyUsable := false
	for i, entry := range catalogue {
		usable[i] = !anyNaN(entry.Power)
		anyUsable = anyUsable || usable[i]
	}
	if !anyUsable {
		return nil, &NoValidDataError{Msg: "all catalogue entries are degraded"}
	}

	nFields := len(ParameterFields())
	result := &InversionResult{
		Parameters: mat.NewDense(cols, nFields, nil),
		Residuals:  mat.NewDense(cols, rows, nil),
		RMSE:       make([]float64, cols),
		Best:       make([]int, cols),
	}

	err := parallelMap(cols, o.Workers, func(j int) error {
		psd := mat.Col(nil, j, data)
		if anyNaN(psd) {
			result.Parameters.SetRow(j, nanSlice(nFields))
			result.Residuals.SetRow(j, nanSlice(rows))
			result.RMSE[j] = math.NaN()
			result.Best[j] = -1
			return nil
		}

		best := -1
		bestRMSE := math.Inf(1)
		for k, entry := range catalogue {
			if !usable[k] {
				continue
			}
			sum := 0.0
			for i, p := range entry.Power {
				sum += pow2(p - psd[i])
			}
			rmse := math.Sqrt(sum / float64(rows))
			if rmse < bestRMSE {
				bestRMSE = rmse
				best = k
			}
		}

		residual := make([]float64, rows)
		for i, p := range catalogue[best].Power {
			residual[i] = math.Abs(p - psd[i])
		}
		result.Parameters.SetRow(j, catalogue[best].Pars.Values())
		result.Residuals.SetRow(j, residual)
		result.RMSE[j] = bestRMSE
		result.Best[j] = best
		return nil
	})
	if err != nil {
		return nil, err
	}

	allInvalid := true
	for _, b := range result.Best {
		if b >= 0 {
			allInvalid = false
			break
		}
	}
	if allInvalid {
		return nil, &NoValidDataError{Msg: "every empirical spectrum contains NaN"}
	}
	return result, nil
}
