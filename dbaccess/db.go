package dbaccess

import (
	"github.com/eramoss/ghostdagsim/database"
	"github.com/eramoss/ghostdagsim/database/ldb"
)

// DatabaseContext represents a context in which all database queries
// run.
type DatabaseContext struct {
	db database.Database
}

// New creates a new DatabaseContext with a database in the specified
// `path`.
func New(path string) (*DatabaseContext, error) {
	db, err := ldb.NewLevelDB(path)
	if err != nil {
		return nil, err
	}

	return &DatabaseContext{db: db}, nil
}

// Close closes the DatabaseContext's connection, if it's open.
func (ctx *DatabaseContext) Close() error {
	return ctx.db.Close()
}
