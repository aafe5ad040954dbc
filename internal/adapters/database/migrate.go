package database

import (
	"context"
	_ "embed"

	"github.com/tricoghealth/intake-assistant/internal/infrastructure/clients/postgres"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the schema to the database. The statements only create
// tables and indexes that do not already exist, so it is safe to run on
// every startup.
func Migrate(ctx context.Context, client *postgres.Client) error {
	_, err := client.DB().ExecContext(ctx, schemaSQL)
	return err
}
