package handler

import (
	"net/http"

	"github.com/yumyai/ggideo/pkg/fetch"
	"github.com/yumyai/ggideo/pkg/render"
)

// IdeogramPage fetches a remote annotation resource and renders the HTML
// per-chromosome overview.
//
// GET /ideogram?url=...&taxid=...
func (dbctx *DBContext) IdeogramPage(w http.ResponseWriter, r *http.Request) {

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

	data := render.BuildIdeogramPageData(taxid, dbctx.Settings, dbctx.Config.ChrHeight, annots)
	if err := render.RenderIdeogramPage(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
