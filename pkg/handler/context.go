package handler

// DI for all handlers and models alike.

import (
	"database/sql"

	ggdb "github.com/yumyai/ggideo/pkg/db"
	"github.com/yumyai/ggideo/pkg/fetch"
	"github.com/yumyai/ggideo/pkg/model"
)

type DBContext struct {
	DB          *sql.DB
	Chromosomes *ggdb.ChromosomeDB
	LoadJobs    *fetch.LoadJobManager
	Heatmap     fetch.RawSink // set only when heatmap mode is configured
	Config      *model.Config
	Settings    model.Settings
}
