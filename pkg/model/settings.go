package model

import "math"

const DefaultBarWidth = 3

// Config is the user-facing annotation configuration, read once at setup.
// Exactly one of the four annotation sources is normally set; the layer is
// enabled when any of them is.
type Config struct {
	AnnotationsPath      string       // remote annotation resource (URL)
	LocalAnnotationsPath string       // annotation file on disk
	RawAnnots            *RawAnnotSet // already-resident payload
	Annotations          []Annotation // inline annotations config

	ChrHeight        int // drawn chromosome height in pixels
	AnnotationHeight int
	AnnotationsColor string
	AnnotTracks      []Track
	BarWidth         int
	Heatmap          bool

	ShowAnnotTooltip       *bool
	OnWillShowAnnotTooltip func(*Annotation)
}

// Settings holds the layout constants derived from Config before any
// annotation data arrives. Derived once; annotation data never feeds back
// into it.
type Settings struct {
	Enabled           bool
	AnnotationHeight  int
	NumTracks         int
	TracksHeight      int
	BarWidth          int
	Color             string
	ShowTooltip       bool
	OnWillShowTooltip func(*Annotation)
}

// InitSettings derives the annotation layout constants from cfg. Each rule
// defaults independently; only TracksHeight depends on the enablement test.
func InitSettings(cfg *Config) Settings {

	s := Settings{
		Enabled: cfg.AnnotationsPath != "" ||
			cfg.LocalAnnotationsPath != "" ||
			cfg.RawAnnots != nil ||
			len(cfg.Annotations) > 0,
	}

	s.AnnotationHeight = cfg.AnnotationHeight
	if s.AnnotationHeight == 0 {
		s.AnnotationHeight = int(math.Round(float64(cfg.ChrHeight) / 100))
	}

	s.NumTracks = 1
	if len(cfg.AnnotTracks) > 0 {
		s.NumTracks = len(cfg.AnnotTracks)
	}

	if s.Enabled {
		s.TracksHeight = s.AnnotationHeight * s.NumTracks
	}

	s.BarWidth = cfg.BarWidth
	if s.BarWidth == 0 {
		s.BarWidth = DefaultBarWidth
	}

	s.Color = cfg.AnnotationsColor
	if s.Color == "" {
		s.Color = DefaultAnnotColor
	}

	// Tooltips stay on unless the caller switched them off explicitly.
	s.ShowTooltip = cfg.ShowAnnotTooltip == nil || *cfg.ShowAnnotTooltip

	// Captured for the tooltip component; never invoked here.
	s.OnWillShowTooltip = cfg.OnWillShowAnnotTooltip

	return s
}
