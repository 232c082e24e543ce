package model

// Reconcile re-aligns a per-chromosome annotation fragment to the diagram's
// canonical chromosome order. Every canonical chromosome gets exactly one
// entry: an empty placeholder when the fragment has nothing for it, the
// fragment entry wholesale when it does. Fragment entries whose chromosome is
// not in the canonical order are dropped silently (the normalizer already
// filters unknown chromosomes, so that path is only reachable when it was
// bypassed). Adopted annotations are re-keyed to the canonical chrIndex, not
// recomputed.
//
// The result length always equals len(order), so downstream renderers can
// index by chromosome position without existence checks.
func Reconcile(fragment []ChromosomeAnnots, order []string) []ChromosomeAnnots {

	out := make([]ChromosomeAnnots, len(order))
	pos := make(map[string]int, len(order))

	for i, name := range order {
		out[i] = ChromosomeAnnots{Chr: name, Annots: []Annotation{}}
		pos[name] = i
	}

	for _, frag := range fragment {
		i, ok := pos[frag.Chr]
		if !ok {
			continue
		}
		for j := range frag.Annots {
			frag.Annots[j].ChrIndex = i
		}
		out[i] = frag
	}

	return out
}
