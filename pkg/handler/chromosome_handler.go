package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	ggdb "github.com/yumyai/ggideo/pkg/db"
	"github.com/yumyai/ggideo/pkg/model"
)

// GetChromosomesHandler returns the chromosome models of a taxon in canonical
// display order.
//
// GET /api/v1/chromosomes?taxid=...
func (dbctx *DBContext) GetChromosomesHandler(w http.ResponseWriter, r *http.Request) {

	taxid, err := parseTaxID(r)
	if err != nil {
		http.Error(w, "taxid need to be an integer", http.StatusBadRequest)
		return
	}

	chrs, err := dbctx.Chromosomes.GetChromosomes(taxid)
	if err != nil {
		if errors.Is(err, ggdb.TaxonNotExists) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chrs)
}

// PutChromosomesHandler stores the chromosome models of a taxon; body order
// becomes the canonical display order. This is how discovered assembly
// metadata enters the store.
//
// PUT /api/v1/chromosomes?taxid=...
func (dbctx *DBContext) PutChromosomesHandler(w http.ResponseWriter, r *http.Request) {

	taxid, err := parseTaxID(r)
	if err != nil {
		http.Error(w, "taxid need to be an integer", http.StatusBadRequest)
		return
	}

	var chrs []model.ChromosomeModel
	if err := json.NewDecoder(r.Body).Decode(&chrs); err != nil {
		http.Error(w, "request body need to be a JSON chromosome list", http.StatusBadRequest)
		return
	}
	if len(chrs) == 0 {
		http.Error(w, "chromosome list is empty", http.StatusBadRequest)
		return
	}

	if err := dbctx.Chromosomes.PutChromosomes(taxid, chrs); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
