// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = map[Dialect][]string{
	DialectSQLite: {
		`
CREATE TABLE IF NOT EXISTS members (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name TEXT NOT NULL,
  middle_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL,
  business_unit TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  source_member_id TEXT NOT NULL DEFAULT '',
  entitled BOOLEAN NOT NULL DEFAULT FALSE
);`,
		`CREATE INDEX IF NOT EXISTS idx_members_entitled ON members(entitled);`,
		`CREATE INDEX IF NOT EXISTS idx_members_business_unit ON members(business_unit);`,
	},
	DialectPostgres: {
		`
CREATE TABLE IF NOT EXISTS members (
  id BIGSERIAL PRIMARY KEY,
  first_name TEXT NOT NULL,
  middle_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL,
  business_unit TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  source_member_id TEXT NOT NULL DEFAULT '',
  entitled BOOLEAN NOT NULL DEFAULT FALSE
);`,
		`CREATE INDEX IF NOT EXISTS idx_members_entitled ON members(entitled);`,
		`CREATE INDEX IF NOT EXISTS idx_members_business_unit ON members(business_unit);`,
	},
}

// Migrate creates the members table and its indexes when missing.
func Migrate(ctx context.Context, db *sqlx.DB, dialect Dialect) error {
	statements, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("unsupported sql dialect: %s", dialect)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate members schema: %w", err)
		}
	}

	return tx.Commit()
}
