// Sqlite-backed chromosome model store. Serves the per-taxon chromosome
// geometry and the canonical chromosome order the diagram displays.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yumyai/ggideo/pkg/model"
)

// TaxonNotExists is returned when a taxon has no chromosomes in the store.
var TaxonNotExists = errors.New("taxon has no chromosomes in the store")

// ChromosomeDB wraps the chromosome table of the ggideo sqlite database.
type ChromosomeDB struct {
	sqldb *sql.DB
}

func NewChromosomeDB(db *sql.DB) *ChromosomeDB {
	// Check for db schema and version here later
	return &ChromosomeDB{sqldb: db}
}

// Init creates the chromosome table when it is missing.
func (cdb *ChromosomeDB) Init() error {

	ctx := context.TODO()

	qstring := `CREATE TABLE IF NOT EXISTS chromosomes (
		taxid     INTEGER NOT NULL,
		name      TEXT    NOT NULL,
		length_bp INTEGER NOT NULL,
		position  INTEGER NOT NULL,
		PRIMARY KEY (taxid, name)
	);`

	if _, err := cdb.sqldb.ExecContext(ctx, qstring); err != nil {
		return fmt.Errorf("init chromosome table: %w", err)
	}
	return nil
}

// PutChromosomes stores the chromosome models of a taxon; slice order becomes
// the canonical display order.
func (cdb *ChromosomeDB) PutChromosomes(taxID int, chrs []model.ChromosomeModel) error {

	ctx := context.TODO()

	tx, err := cdb.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	qstring := `INSERT OR REPLACE INTO chromosomes (taxid, name, length_bp, position) VALUES (?, ?, ?, ?)`

	stm, err := tx.PrepareContext(ctx, qstring)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stm.Close()

	for i, chr := range chrs {
		if _, err := stm.ExecContext(ctx, taxID, chr.Name, chr.Length, i); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetChromosome resolves one chromosome of a taxon by name. Returns
// (nil, nil) when the name is unknown; unknown chromosomes are an expected,
// non-fatal condition for the annotation pipeline.
func (cdb *ChromosomeDB) GetChromosome(taxID int, name string) (*model.ChromosomeModel, error) {

	ctx := context.TODO()

	qstring := `SELECT length_bp FROM chromosomes WHERE taxid == ? AND name == ?`

	var length int64
	err := cdb.sqldb.QueryRowContext(ctx, qstring, taxID, name).Scan(&length)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &model.ChromosomeModel{TaxID: taxID, Name: name, Length: length}, nil
}

// GetChromosomes returns all chromosome models of a taxon in canonical order.
func (cdb *ChromosomeDB) GetChromosomes(taxID int) ([]model.ChromosomeModel, error) {

	ctx := context.TODO()

	qstring := `SELECT name, length_bp FROM chromosomes WHERE taxid == ? ORDER BY position`

	stm, err := cdb.sqldb.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, taxID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ChromosomeModel

	for rows.Next() {
		var chr model.ChromosomeModel
		chr.TaxID = taxID
		if err := rows.Scan(&chr.Name, &chr.Length); err != nil {
			return nil, err
		}
		results = append(results, chr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: taxid %d", TaxonNotExists, taxID)
	}

	return results, nil
}

// ChromosomeOrder returns the canonical chromosome name sequence of a taxon.
func (cdb *ChromosomeDB) ChromosomeOrder(taxID int) ([]string, error) {

	chrs, err := cdb.GetChromosomes(taxID)
	if err != nil {
		return nil, err
	}

	order := make([]string, len(chrs))
	for i, chr := range chrs {
		order[i] = chr.Name
	}
	return order, nil
}

// Lookup adapts the store to the normalizer's chromosome lookup capability.
// Query errors resolve as unknown; the normalizer degrades gracefully on
// those instead of failing the payload.
func (cdb *ChromosomeDB) Lookup() model.ChromosomeLookup {
	return func(taxID int, name string) *model.ChromosomeModel {
		chr, err := cdb.GetChromosome(taxID, name)
		if err != nil {
			return nil
		}
		return chr
	}
}
