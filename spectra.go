package fluvial

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// CatalogueEntry couples one concrete parameter set with its modelled
// spectrum. Power, Turbulence and Bedload are in dB; a NaN-filled Power
// marks an entry whose models failed under the lenient policy.
type CatalogueEntry struct {
	Pars       ParameterSet
	Frequency  []float64
	Power      []float64
	Turbulence []float64
	Bedload    []float64
}

type CatalogueOptions struct {
	Workers int  // worker count for the batch, default 1
	Strict  bool // abort the batch on the first model failure
	Verbose bool
}

// referenceSpectrum runs both forward models for one parameter set and
// combines them into a dB-scale spectrum.
func referenceSpectrum(p ParameterSet) (*CatalogueEntry, error) {
	turb, err := ModelTurbulence(p, nil, nil)
	if err != nil {
		return nil, err
	}
	bed, err := ModelBedload(p, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	n := len(turb.Power)
	entry := &CatalogueEntry{
		Pars:       p,
		Frequency:  turb.Frequency,
		Power:      make([]float64, n),
		Turbulence: make([]float64, n),
		Bedload:    make([]float64, n),
	}
	for i := 0; i < n; i++ {
		entry.Power[i] = decibel(turb.Power[i] + bed.Power[i])
		entry.Turbulence[i] = decibel(turb.Power[i])
		entry.Bedload[i] = decibel(bed.Power[i])
	}
	return entry, nil
}

// BuildCatalogue maps each parameter set through the turbulence and bedload
// models and collects the combined dB spectra. Entries are independent and
// computed concurrently when Workers is above one. Under the default
// lenient policy an entry whose models raise a DomainError is kept as a
// NaN-filled spectrum and later excluded from inversion matching; with
// Strict set, the first failure aborts the batch.
func BuildCatalogue(sets []ParameterSet, opts *CatalogueOptions) ([]*CatalogueEntry, error) {
	var o CatalogueOptions
	if opts != nil {
		o = *opts
	}

	entries := make([]*CatalogueEntry, len(sets))
	err := parallelMap(len(sets), o.Workers, func(i int) error {
		if o.Verbose {
			log.Infof("catalogue entry %d of %d", i+1, len(sets))
		}
		entry, err := referenceSpectrum(sets[i])
		if err != nil {
			var derr *DomainError
			if !o.Strict && errors.As(err, &derr) {
				res := sets[i].Res
				entries[i] = &CatalogueEntry{
					Pars:       sets[i],
					Frequency:  nanSlice(res),
					Power:      nanSlice(res),
					Turbulence: nanSlice(res),
					Bedload:    nanSlice(res),
				}
				if o.Verbose {
					log.Warnf("catalogue entry %d degraded to NaN: %v", i+1, err)
				}
				return nil
			}
			return err
		}
		entries[i] = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
