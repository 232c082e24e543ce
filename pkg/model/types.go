package model

// Track is one annotation lane. Annotations select a track by trackIndex and
// inherit its color/shape unless they carry their own.
type Track struct {
	Color string `json:"color"`
	Shape string `json:"shape,omitempty"`
}

// ChromosomeModel carries the chromosome geometry needed for base-pair to
// pixel conversion. Keyed by taxon + name in the chromosome store.
type ChromosomeModel struct {
	TaxID  int    `json:"taxid"`
	Name   string `json:"name"`
	Length int64  `json:"length"` // total length in base pairs
}

// RawChromosomeAnnots groups undecoded annotation rows under one chromosome.
// Each row is a positional value tuple interpreted through RawAnnotSet.Keys.
type RawChromosomeAnnots struct {
	Chr    string  `json:"chr"`
	Annots [][]any `json:"annots"`
}

// RawAnnotSet is the transient wire-level annotation payload. Keys gives the
// positional meaning of every value in a row; the order is significant and
// must align across all rows of the payload. A row may carry one extra value
// beyond the keys (the optional track slot).
type RawAnnotSet struct {
	Keys        []string              `json:"keys"`
	Chromosomes []RawChromosomeAnnots `json:"annots"`
}

// Annotation is one genomic feature fully resolved for rendering: base-pair
// span, pixel geometry and track styling.
type Annotation struct {
	Name       string            `json:"name,omitempty"`
	Chr        string            `json:"chr"`
	ChrIndex   int               `json:"chrIndex"`
	Start      int64             `json:"start"`
	Length     int64             `json:"length"`
	Stop       int64             `json:"stop"` // always Start + Length
	StartPx    int               `json:"startPx"`
	StopPx     int               `json:"stopPx"`
	Px         int               `json:"px"` // rounded midpoint of StartPx/StopPx
	TrackIndex int               `json:"trackIndex"`
	Color      string            `json:"color"`
	Shape      string            `json:"shape,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// ChromosomeAnnots is one display-ready entry of the per-chromosome
// annotation list.
type ChromosomeAnnots struct {
	Chr    string       `json:"chr"`
	Annots []Annotation `json:"annots"`
}

// ChromosomeLookup resolves a chromosome name against the known chromosome
// models of a taxon. Returns nil when the chromosome is unknown.
type ChromosomeLookup func(taxID int, name string) *ChromosomeModel

// CoordinateMapper converts a base-pair offset on a chromosome into a pixel
// offset on the rendering surface. Injected by the chromosome-geometry
// subsystem; the pipeline never owns one.
type CoordinateMapper func(chr *ChromosomeModel, bp int64) float64

// LinearMapper returns a CoordinateMapper that scales base pairs linearly
// onto a chromosome drawn pxLength pixels long. Used by the server when the
// caller injects no banded geometry.
func LinearMapper(pxLength float64) CoordinateMapper {
	return func(chr *ChromosomeModel, bp int64) float64 {
		if chr.Length <= 0 {
			return 0
		}
		return float64(bp) / float64(chr.Length) * pxLength
	}
}
