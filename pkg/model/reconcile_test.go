package model

import (
	"reflect"
	"testing"
)

var canonicalOrder = []string{"1", "2", "3", "X"}

func fragmentFor(chr string, names ...string) ChromosomeAnnots {
	annots := make([]Annotation, len(names))
	for i, name := range names {
		annots[i] = Annotation{Name: name, Chr: chr}
	}
	return ChromosomeAnnots{Chr: chr, Annots: annots}
}

func TestReconcileFillsPlaceholders(t *testing.T) {

	out := Reconcile(nil, canonicalOrder)

	if len(out) != len(canonicalOrder) {
		t.Fatalf("want %d entries, got %d", len(canonicalOrder), len(out))
	}
	for i, entry := range out {
		if entry.Chr != canonicalOrder[i] {
			t.Errorf("entry %d is %q, want %q", i, entry.Chr, canonicalOrder[i])
		}
		if entry.Annots == nil || len(entry.Annots) != 0 {
			t.Errorf("entry %d placeholder annots = %v", i, entry.Annots)
		}
	}
}

func TestReconcileRealignsOutOfOrderFragment(t *testing.T) {

	fragment := []ChromosomeAnnots{
		fragmentFor("X", "gX"),
		fragmentFor("2", "g2a", "g2b"),
	}

	out := Reconcile(fragment, canonicalOrder)

	if len(out) != 4 {
		t.Fatalf("want 4 entries, got %d", len(out))
	}
	if len(out[0].Annots) != 0 || len(out[2].Annots) != 0 {
		t.Error("chromosomes without input must stay empty")
	}
	if len(out[1].Annots) != 2 || out[1].Annots[0].Name != "g2a" {
		t.Errorf("chromosome 2 entry = %+v", out[1])
	}
	if len(out[3].Annots) != 1 || out[3].Annots[0].Name != "gX" {
		t.Errorf("chromosome X entry = %+v", out[3])
	}
}

func TestReconcileRekeysChrIndex(t *testing.T) {

	fragment := []ChromosomeAnnots{fragmentFor("3", "a", "b")}
	// Fragment came out of the normalizer with raw-order indexes.
	fragment[0].Annots[0].ChrIndex = 0
	fragment[0].Annots[1].ChrIndex = 0

	out := Reconcile(fragment, canonicalOrder)

	for _, a := range out[2].Annots {
		if a.ChrIndex != 2 {
			t.Errorf("chrIndex = %d, want canonical position 2", a.ChrIndex)
		}
	}
}

func TestReconcileDropsUnknownNames(t *testing.T) {

	fragment := []ChromosomeAnnots{
		fragmentFor("17", "dropped"),
		fragmentFor("1", "kept"),
	}

	out := Reconcile(fragment, canonicalOrder)

	if len(out) != len(canonicalOrder) {
		t.Fatalf("want %d entries, got %d", len(canonicalOrder), len(out))
	}
	if out[0].Annots[0].Name != "kept" {
		t.Errorf("entry 0 = %+v", out[0])
	}
	for _, entry := range out {
		for _, a := range entry.Annots {
			if a.Name == "dropped" {
				t.Error("unknown chromosome entry must be dropped")
			}
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {

	fragment := []ChromosomeAnnots{
		fragmentFor("2", "g2"),
		fragmentFor("X", "gX"),
	}

	once := Reconcile(fragment, canonicalOrder)
	twice := Reconcile(once, canonicalOrder)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("reconcile is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}
