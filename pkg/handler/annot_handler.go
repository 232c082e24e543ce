package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yumyai/ggideo/logger"
	"github.com/yumyai/ggideo/pkg/fetch"
	"github.com/yumyai/ggideo/pkg/model"
)

// Response struct for layout requests
type AnnotsResponse struct {
	TaxID  int                      `json:"taxid"`
	Annots []model.ChromosomeAnnots `json:"annots"`
}

// newNormalizer builds the per-request normalizer with the store-backed
// chromosome lookup and the server's linear coordinate mapper. Dropped-group
// warnings go to the structured log.
func (dbctx *DBContext) newNormalizer(taxID int) *model.Normalizer {
	return &model.Normalizer{
		TaxID:        taxID,
		Lookup:       dbctx.Chromosomes.Lookup(),
		Mapper:       model.LinearMapper(float64(dbctx.Config.ChrHeight)),
		Tracks:       dbctx.Config.AnnotTracks,
		DefaultColor: dbctx.Settings.Color,
		Warn: func(w model.Warning) {
			logger.Warn("Dropping annotations on unknown chromosome",
				zap.String("chr", w.Chr),
				zap.Int("dropped", w.Dropped))
		},
	}
}

// layoutAnnots runs the full pipeline on an already-decoded raw set:
// normalize against the taxon's chromosome models, then reconcile to the
// canonical chromosome order.
func (dbctx *DBContext) layoutAnnots(taxID int, set *model.RawAnnotSet) ([]model.ChromosomeAnnots, error) {

	fragment, err := dbctx.newNormalizer(taxID).Normalize(set)
	if err != nil {
		return nil, err
	}

	order, err := dbctx.Chromosomes.ChromosomeOrder(taxID)
	if err != nil {
		return nil, err
	}

	return model.Reconcile(fragment, order), nil
}

// writeLoadError maps pipeline errors to user-facing HTTP responses.
func writeLoadError(w http.ResponseWriter, err error) {

	var unsupported *fetch.UnsupportedFormatError
	var fetchErr *fetch.FetchError
	var malformed *model.MalformedPayloadError

	switch {
	case errors.As(err, &unsupported):
		http.Error(w, unsupported.Error(), http.StatusBadRequest)
	case errors.As(err, &fetchErr):
		http.Error(w, fetchErr.Error(), http.StatusBadGateway)
	case errors.As(err, &malformed):
		http.Error(w, malformed.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseTaxID(r *http.Request) (int, error) {
	return strconv.Atoi(r.URL.Query().Get("taxid"))
}

// GetAnnotsHandler fetches a remote annotation resource and returns the
// display-ready per-chromosome layout.
//
// GET /api/v1/annots?url=...&taxid=...
func (dbctx *DBContext) GetAnnotsHandler(w http.ResponseWriter, r *http.Request) {

	annot_url := r.URL.Query().Get("url")
	if annot_url == "" {
		http.Error(w, "url parameter is required", http.StatusBadRequest)
		return
	}

	taxid, err := parseTaxID(r)
	if err != nil {
		http.Error(w, "taxid need to be an integer", http.StatusBadRequest)
		return
	}

	loader := &fetch.Loader{Heatmap: dbctx.Heatmap}
	set, err := loader.LoadURL(r.Context(), annot_url)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	annots, err := dbctx.layoutAnnots(taxid, set)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AnnotsResponse{TaxID: taxid, Annots: annots})
}

// PostAnnotsHandler lays out an inline raw annotation set carried in the
// request body (the already-resident object path; no fetch involved).
//
// POST /api/v1/annots?taxid=...
func (dbctx *DBContext) PostAnnotsHandler(w http.ResponseWriter, r *http.Request) {

	taxid, err := parseTaxID(r)
	if err != nil {
		http.Error(w, "taxid need to be an integer", http.StatusBadRequest)
		return
	}

	set, err := model.ParseAnnots(r.Body)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	loader := &fetch.Loader{Heatmap: dbctx.Heatmap}
	loader.LoadRaw(set)

	annots, err := dbctx.layoutAnnots(taxid, set)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AnnotsResponse{TaxID: taxid, Annots: annots})
}
