package model

import (
	"github.com/yumyai/ggideo/internal/util"
)

// DefaultAnnotColor is the global fallback annotation color.
const DefaultAnnotColor = "#F00"

// Warning reports a raw annotation group that was dropped because its
// chromosome is unknown to the diagram. Emitted through the normalizer's
// warning sink instead of being written to a console, so callers can log or
// record it.
type Warning struct {
	Chr     string
	Dropped int
}

// WarnFunc receives non-fatal normalization warnings.
type WarnFunc func(Warning)

// Normalizer turns raw annotation sets into fully resolved annotations for
// one taxon. Lookup and Mapper are injected capabilities of the surrounding
// chromosome-geometry subsystem, never owned here.
type Normalizer struct {
	TaxID        int
	Lookup       ChromosomeLookup
	Mapper       CoordinateMapper
	Tracks       []Track
	DefaultColor string
	Warn         WarnFunc
}

// Normalize resolves every raw group into annotation values with pixel
// geometry and track styling. Output groups follow the raw set's group order
// (not yet the canonical diagram order; Reconcile does that). Groups on
// chromosomes the lookup cannot resolve are dropped whole with one warning;
// a tuple that cannot be decoded rejects the entire payload.
func (n *Normalizer) Normalize(raw *RawAnnotSet) ([]ChromosomeAnnots, error) {

	if err := validateKeys(raw.Keys); err != nil {
		return nil, err
	}

	defaultColor := n.DefaultColor
	if defaultColor == "" {
		defaultColor = DefaultAnnotColor
	}
	wantTrack := len(n.Tracks) > 0

	out := make([]ChromosomeAnnots, 0, len(raw.Chromosomes))

	for gi, group := range raw.Chromosomes {

		chr := n.Lookup(n.TaxID, group.Chr)
		if chr == nil {
			if n.Warn != nil {
				n.Warn(Warning{Chr: group.Chr, Dropped: len(group.Annots)})
			}
			continue
		}

		annots := make([]Annotation, 0, len(group.Annots))
		for _, row := range group.Annots {

			rec, err := decodeRow(raw.Keys, row, wantTrack)
			if err != nil {
				return nil, err
			}

			a := Annotation{
				Name:     rec.Name,
				Chr:      group.Chr,
				ChrIndex: gi,
				Start:    rec.Start,
				Length:   rec.Length,
				Stop:     rec.Start + rec.Length,
				Extra:    rec.Extra,
			}
			// Pixel bounds are rounded to whole pixels so the midpoint
			// always lands inside them.
			a.StartPx = util.RoundPx(n.Mapper(chr, a.Start))
			a.StopPx = util.RoundPx(n.Mapper(chr, a.Stop))
			a.Px = util.RoundMid(a.StartPx, a.StopPx)

			// Track styling, then per-annotation overrides on top.
			color := defaultColor
			shape := ""
			if wantTrack {
				a.TrackIndex = rec.TrackIndex
				if a.TrackIndex >= 0 && a.TrackIndex < len(n.Tracks) {
					t := n.Tracks[a.TrackIndex]
					if t.Color != "" {
						color = t.Color
					}
					shape = t.Shape
				}
			}
			if rec.Color != "" {
				color = rec.Color
			}
			if rec.Shape != "" {
				shape = rec.Shape
			}
			a.Color = color
			a.Shape = shape

			annots = append(annots, a)
		}

		out = append(out, ChromosomeAnnots{Chr: group.Chr, Annots: annots})
	}

	return out, nil
}
