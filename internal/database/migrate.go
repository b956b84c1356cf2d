package database

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/moodtrail/moodtrail-backend/migrations"
)

// Migrate runs all pending migrations from the embedded filesystem.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
