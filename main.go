package main

import (
	"database/sql"
	"encoding/json"
	"mime"
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/yumyai/ggideo/internal/util"
	"github.com/yumyai/ggideo/logger"
	ggdb "github.com/yumyai/ggideo/pkg/db"
	"github.com/yumyai/ggideo/pkg/fetch"
	"github.com/yumyai/ggideo/pkg/handler"
	"github.com/yumyai/ggideo/pkg/middle"
	"github.com/yumyai/ggideo/pkg/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"
)

var (
	ggideo_data string
)

func main() {

	// Establish logger
	VERSION := "0.1.0"
	LOG_LEVEL := zapcore.InfoLevel

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	handler.Version = VERSION

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	ggideo_data = os.Getenv("GGIDEO_DATA")

	if ggideo_data == "" {
		logger.Warn("No local environment (GGIDEO_DATA), using default value (./data)")
		ggideo_data = "./data"
	}

	addr := os.Getenv("GGIDEO_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	chr_height := 400
	if v := os.Getenv("GGIDEO_CHR_HEIGHT"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn("GGIDEO_CHR_HEIGHT is not an integer, using 400", zap.String("value", v))
		} else {
			chr_height = h
		}
	}

	if !util.DirExists(ggideo_data) {
		logger.Fatal("Data directory does not exist", zap.String("GGIDEO_DATA", ggideo_data))
	}

	ggideo_sqlite := path.Join(ggideo_data, "db/chromosomes.db")

	// Connect to db
	db, _ := sql.Open("sqlite", ggideo_sqlite)

	cdb := ggdb.NewChromosomeDB(db)
	if err := cdb.Init(); err != nil {
		logger.Fatal("Cannot initialize chromosome store", zap.String("error message", err.Error()))
	}

	cfg := &model.Config{
		AnnotationsPath:      os.Getenv("GGIDEO_ANNOTS_URL"),
		LocalAnnotationsPath: os.Getenv("GGIDEO_ANNOTS_FILE"),
		ChrHeight:            chr_height,
		AnnotationsColor:     os.Getenv("GGIDEO_ANNOT_COLOR"),
		AnnotTracks:          loadTracks(path.Join(ggideo_data, "tracks.json")),
	}
	settings := model.InitSettings(cfg)

	dbctx := &handler.DBContext{
		DB:          db,
		Chromosomes: cdb,
		LoadJobs:    fetch.NewLoadJobManager(),
		Config:      cfg,
		Settings:    settings,
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Open database on", zap.String("DB_LOC", ggideo_sqlite))

	// Preload the configured annotation source, if any.
	preloadAnnots(dbctx, cfg)

	mux := NewRouter(dbctx)

	// Apply middleware
	m := middle.LoggingMiddleware(logger.L())
	newmux := m(middle.RequestIDMiddleware(logger.L())(mux))

	logger.Info("Server starting", zap.String("addr", addr))
	httpErr := http.ListenAndServe(addr, newmux)
	if httpErr != nil {
		logger.Error("Error starting server:", zap.String("error message", httpErr.Error()))
	}
}

// Move to router.go in the next iteration
func NewRouter(dbctx *handler.DBContext) *http.ServeMux {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Main routes
	mux.HandleFunc("GET /ideogram", dbctx.IdeogramPage)

	// API routes
	mux.HandleFunc("GET /api/v1/health", handler.HealthCheck)
	mux.HandleFunc("GET /api/v1/annots", dbctx.GetAnnotsHandler)
	mux.HandleFunc("POST /api/v1/annots", dbctx.PostAnnotsHandler)
	mux.HandleFunc("POST /api/v1/annots/jobs", dbctx.CreateLoadJobHandler)
	mux.HandleFunc("GET /api/v1/annots/jobs/{job_id}", dbctx.GetLoadJobHandler)
	mux.HandleFunc("GET /api/v1/chromosomes", dbctx.GetChromosomesHandler)
	mux.HandleFunc("PUT /api/v1/chromosomes", dbctx.PutChromosomesHandler)

	// Static files
	setupStaticFiles(mux)

	return mux
}

// preloadAnnots queues a load job for the annotation source configured via
// GGIDEO_ANNOTS_URL / GGIDEO_ANNOTS_FILE. Needs GGIDEO_TAXID to lay the
// annotations out against a diagram.
func preloadAnnots(dbctx *handler.DBContext, cfg *model.Config) {

	source := cfg.AnnotationsPath
	if source == "" {
		source = cfg.LocalAnnotationsPath
	}
	if source == "" {
		return
	}

	taxid_str := os.Getenv("GGIDEO_TAXID")
	taxid, err := strconv.Atoi(taxid_str)
	if err != nil {
		logger.Warn("Annotation source configured but GGIDEO_TAXID is not an integer, skipping preload",
			zap.String("value", taxid_str))
		return
	}

	job := dbctx.LoadJobs.NewJob(source, taxid)
	go dbctx.RunLoadJob(job)
	logger.Info("Preloading annotations", zap.String("source", source), zap.String("job_id", job.ID))
}

// loadTracks reads the optional track configuration next to the data dir.
// Missing file just means the single default track.
func loadTracks(p string) []model.Track {

	raw, err := os.ReadFile(p)
	if err != nil {
		return nil
	}

	var tracks []model.Track
	if err := json.Unmarshal(raw, &tracks); err != nil {
		logger.Warn("Cannot parse track configuration, ignoring it",
			zap.String("path", p),
			zap.String("error message", err.Error()))
		return nil
	}

	return tracks
}

// Manually add static for all route that use this
func setupStaticFiles(mux *http.ServeMux) {
	_ = mime.AddExtensionType(".js", "text/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	fs := http.FileServer(http.Dir("./static/"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
}
