// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
)

const insertMemberSQL = `
INSERT INTO members (first_name, middle_name, last_name, business_unit, country, source_member_id, entitled)
VALUES (:first_name, :middle_name, :last_name, :business_unit, :country, :source_member_id, :entitled)`

// seedBatchSize keeps each bulk insert under the bind-parameter limits of
// both drivers.
const seedBatchSize = 500

// SeedIfEmpty inserts members when the table has no rows and reports how
// many were inserted.
func (s *MemberStore) SeedIfEmpty(ctx context.Context, members []model.Member) (int, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM members"); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	if count > 0 {
		slog.InfoContext(ctx, "member table already populated, skipping seed", "count", count)
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(members); start += seedBatchSize {
		end := min(start+seedBatchSize, len(members))
		if _, err := tx.NamedExecContext(ctx, insertMemberSQL, members[start:end]); err != nil {
			return 0, fmt.Errorf("seed members: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "seeded members", "count", len(members))
	return len(members), nil
}
