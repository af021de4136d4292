// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/paging"
	"golang.org/x/sync/errgroup"
)

const memberColumns = "id, first_name, middle_name, last_name, business_unit, country, source_member_id, entitled"

// MemberStore is a port.MemberStore backed by a SQL database
type MemberStore struct {
	db *sqlx.DB
}

// SearchMembers counts and fetches the requested page concurrently
func (s *MemberStore) SearchMembers(ctx context.Context, predicate filter.Predicate, page paging.Request) (*model.MemberPage, error) {
	clause, args, err := where(predicate)
	if err != nil {
		return nil, errors.NewUnexpected("failed to render member filter", err)
	}

	countQuery := s.db.Rebind("SELECT COUNT(*) FROM members WHERE " + clause)
	pageQuery := s.db.Rebind("SELECT " + memberColumns + " FROM members WHERE " + clause + " ORDER BY id LIMIT ? OFFSET ?")
	pageArgs := append(append(make([]any, 0, len(args)+2), args...), page.Size, page.Offset())

	slog.DebugContext(ctx, "executing sql member search",
		"query", pageQuery,
		"args", args,
	)

	var (
		total   int64
		members []model.Member
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.GetContext(gctx, &total, countQuery, args...)
	})
	g.Go(func() error {
		return s.db.SelectContext(gctx, &members, pageQuery, pageArgs...)
	})
	if err := g.Wait(); err != nil {
		return nil, errors.NewUnexpected("failed to search members", err)
	}

	if members == nil {
		members = []model.Member{}
	}

	return &model.MemberPage{
		Members:       members,
		TotalElements: total,
		TotalPages:    paging.TotalPages(total, page.Size),
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

// FindMemberByID returns errors.NotFound when no row has the id
func (s *MemberStore) FindMemberByID(ctx context.Context, id int64) (*model.Member, error) {
	var member model.Member
	query := s.db.Rebind("SELECT " + memberColumns + " FROM members WHERE id = ?")
	if err := s.db.GetContext(ctx, &member, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFound(fmt.Sprintf("member not found with id: %d", id))
		}
		return nil, errors.NewUnexpected("failed to load member", err)
	}
	return &member, nil
}

// SaveMember inserts a member without an ID, otherwise updates the existing row
func (s *MemberStore) SaveMember(ctx context.Context, member model.Member) (*model.Member, error) {
	if member.ID == 0 {
		return s.insert(ctx, member)
	}

	result, err := s.db.NamedExecContext(ctx, `
UPDATE members SET
  first_name = :first_name,
  middle_name = :middle_name,
  last_name = :last_name,
  business_unit = :business_unit,
  country = :country,
  source_member_id = :source_member_id,
  entitled = :entitled
WHERE id = :id`, member)
	if err != nil {
		return nil, errors.NewUnexpected("failed to update member", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errors.NewUnexpected("failed to update member", err)
	}
	if affected == 0 {
		return nil, errors.NewNotFound(fmt.Sprintf("member not found with id: %d", member.ID))
	}
	return &member, nil
}

func (s *MemberStore) insert(ctx context.Context, member model.Member) (*model.Member, error) {
	query, args, err := sqlx.Named(insertMemberSQL+" RETURNING id", member)
	if err != nil {
		return nil, errors.NewUnexpected("failed to prepare member insert", err)
	}
	if err := s.db.QueryRowxContext(ctx, s.db.Rebind(query), args...).Scan(&member.ID); err != nil {
		return nil, errors.NewUnexpected("failed to insert member", err)
	}
	return &member, nil
}

// IsReady pings the database
func (s *MemberStore) IsReady(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.NewServiceUnavailable("member database is not reachable", err)
	}
	return nil
}

// Close closes the underlying connection pool
func (s *MemberStore) Close() error {
	return s.db.Close()
}

// NewMemberStore creates a member store over an open, migrated database
func NewMemberStore(db *sqlx.DB) *MemberStore {
	return &MemberStore{db: db}
}

var _ port.MemberStore = (*MemberStore)(nil)
