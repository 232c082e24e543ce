package model

import (
	"errors"
	"testing"
)

func testLookup(chrs ...ChromosomeModel) ChromosomeLookup {
	return func(taxID int, name string) *ChromosomeModel {
		for i := range chrs {
			if chrs[i].TaxID == taxID && chrs[i].Name == name {
				return &chrs[i]
			}
		}
		return nil
	}
}

func identityMapper(chr *ChromosomeModel, bp int64) float64 {
	return float64(bp)
}

func TestNormalizeSingleAnnotation(t *testing.T) {

	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "1", Annots: [][]any{{"BRCA1", int64(1000), int64(200)}}},
		},
	}

	n := &Normalizer{
		TaxID:  9606,
		Lookup: testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 248956422}),
		Mapper: identityMapper,
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(out) != 1 || len(out[0].Annots) != 1 {
		t.Fatalf("want one group with one annot, got %+v", out)
	}

	a := out[0].Annots[0]
	if a.Name != "BRCA1" || a.Chr != "1" || a.ChrIndex != 0 {
		t.Errorf("bad identity fields: %+v", a)
	}
	if a.Start != 1000 || a.Length != 200 || a.Stop != 1200 {
		t.Errorf("bad bp span: %+v", a)
	}
	if a.StartPx != 1000 || a.StopPx != 1200 || a.Px != 1100 {
		t.Errorf("bad pixel span: %+v", a)
	}
	if a.TrackIndex != 0 || a.Color != "#F00" || a.Shape != "" {
		t.Errorf("bad styling defaults: %+v", a)
	}
}

func TestNormalizeUnknownChromosome(t *testing.T) {

	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "99", Annots: [][]any{{"BRCA1", int64(1000), int64(200)}}},
		},
	}

	var warnings []Warning
	n := &Normalizer{
		TaxID:  9606,
		Lookup: testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 1000}),
		Mapper: identityMapper,
		Warn:   func(w Warning) { warnings = append(warnings, w) },
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unknown chromosome must not fail: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("want no groups, got %+v", out)
	}
	if len(warnings) != 1 || warnings[0].Chr != "99" || warnings[0].Dropped != 1 {
		t.Errorf("warnings = %+v", warnings)
	}
}

// Unknown groups are dropped whole; other chromosomes in the same payload
// still go through.
func TestNormalizeUnknownChromosomeIsolated(t *testing.T) {

	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "99", Annots: [][]any{{"X", int64(0), int64(1)}}},
			{Chr: "1", Annots: [][]any{{"BRCA1", int64(10), int64(5)}}},
		},
	}

	n := &Normalizer{
		TaxID:  9606,
		Lookup: testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 1000}),
		Mapper: identityMapper,
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(out) != 1 || out[0].Chr != "1" {
		t.Fatalf("want only group 1, got %+v", out)
	}
	// chrIndex reflects the raw group order, skipped groups included.
	if out[0].Annots[0].ChrIndex != 1 {
		t.Errorf("chrIndex = %d, want raw position 1", out[0].Annots[0].ChrIndex)
	}
}

func TestNormalizeColorShapePrecedence(t *testing.T) {

	lookup := testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 1000})
	tracks := []Track{{Color: "#0F0", Shape: "circle"}, {Color: "#00F", Shape: "triangle"}}

	// Explicit per-annotation color/shape beats the track, which beats the
	// global default.
	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length", "trackIndex", "color", "shape"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "1", Annots: [][]any{
				{"A", int64(0), int64(10), int64(1), "#ABC", "rect"},
				{"B", int64(0), int64(10), int64(1), "", ""},
			}},
		},
	}

	n := &Normalizer{
		TaxID:        9606,
		Lookup:       lookup,
		Mapper:       identityMapper,
		Tracks:       tracks,
		DefaultColor: "#111",
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	a, b := out[0].Annots[0], out[0].Annots[1]
	if a.Color != "#ABC" || a.Shape != "rect" || a.TrackIndex != 1 {
		t.Errorf("explicit fields must win: %+v", a)
	}
	if b.Color != "#00F" || b.Shape != "triangle" || b.TrackIndex != 1 {
		t.Errorf("track styling must apply when fields are empty: %+v", b)
	}
}

func TestNormalizeDefaultColorWithoutTracks(t *testing.T) {

	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "1", Annots: [][]any{{"A", int64(0), int64(10)}}},
		},
	}

	n := &Normalizer{
		TaxID:        9606,
		Lookup:       testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 1000}),
		Mapper:       identityMapper,
		DefaultColor: "#123456",
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got := out[0].Annots[0].Color; got != "#123456" {
		t.Errorf("color = %q, want configured default", got)
	}
}

func TestNormalizeShortRowWithTracks(t *testing.T) {

	// Track config exists but the row is too short for the track slot:
	// malformed, never read out of bounds.
	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "1", Annots: [][]any{{"A", int64(0), int64(10)}}},
		},
	}

	n := &Normalizer{
		TaxID:  9606,
		Lookup: testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 1000}),
		Mapper: identityMapper,
		Tracks: []Track{{Color: "#0F0"}},
	}

	_, err := n.Normalize(raw)
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("want MalformedPayloadError, got %v", err)
	}
}

func TestNormalizeOutOfRangeTrackIndex(t *testing.T) {

	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length", "trackIndex"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "1", Annots: [][]any{{"A", int64(0), int64(10), int64(7)}}},
		},
	}

	n := &Normalizer{
		TaxID:  9606,
		Lookup: testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 1000}),
		Mapper: identityMapper,
		Tracks: []Track{{Color: "#0F0"}},
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	a := out[0].Annots[0]
	if a.TrackIndex != 7 || a.Color != DefaultAnnotColor {
		t.Errorf("out-of-range track keeps index but default styling: %+v", a)
	}
}

// For any valid payload: stop = start + length and startPx <= px <= stopPx.
func TestNormalizeGeometryInvariants(t *testing.T) {

	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "1", Annots: [][]any{
				{"A", int64(0), int64(0)},
				{"B", int64(1), int64(1)},
				{"C", int64(999), int64(1)},
				{"D", int64(123456), int64(7890)},
			}},
			{Chr: "2", Annots: [][]any{{"E", int64(500000), int64(2)}}},
		},
	}

	n := &Normalizer{
		TaxID: 9606,
		Lookup: testLookup(
			ChromosomeModel{TaxID: 9606, Name: "1", Length: 248956422},
			ChromosomeModel{TaxID: 9606, Name: "2", Length: 242193529},
		),
		Mapper: LinearMapper(400),
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	for _, group := range out {
		for _, a := range group.Annots {
			if a.Stop != a.Start+a.Length {
				t.Errorf("%s: stop %d != start %d + length %d", a.Name, a.Stop, a.Start, a.Length)
			}
			if a.Px < a.StartPx || a.Px > a.StopPx {
				t.Errorf("%s: px %d outside [%d, %d]", a.Name, a.Px, a.StartPx, a.StopPx)
			}
		}
	}
}

func TestNormalizePreservesRowOrderAndIndependence(t *testing.T) {

	raw := &RawAnnotSet{
		Keys: []string{"name", "start", "length"},
		Chromosomes: []RawChromosomeAnnots{
			{Chr: "1", Annots: [][]any{
				{"first", int64(100), int64(1)},
				{"second", int64(5), int64(1)},
			}},
		},
	}

	n := &Normalizer{
		TaxID:  9606,
		Lookup: testLookup(ChromosomeModel{TaxID: 9606, Name: "1", Length: 1000}),
		Mapper: identityMapper,
	}

	out, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	annots := out[0].Annots
	if annots[0].Name != "first" || annots[1].Name != "second" {
		t.Errorf("input row order must be kept: %+v", annots)
	}

	annots[0].Color = "mutated"
	if annots[1].Color == "mutated" {
		t.Error("rows share state")
	}
}
