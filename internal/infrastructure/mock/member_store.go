// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/filter"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/seed"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/paging"
)

// MockMemberStore is an in-memory MemberStore used for tests and local runs
// This demonstrates how the clean architecture allows easy swapping of implementations
type MockMemberStore struct {
	mu      sync.RWMutex
	members []model.Member
	nextID  int64

	// SearchError, when set, is returned by SearchMembers
	SearchError error
	// SaveError, when set, is returned by SaveMember
	SaveError error
	// IsReadyError, when set, is returned by IsReady
	IsReadyError error
}

// NewMockMemberStore creates an empty mock store
func NewMockMemberStore() *MockMemberStore {
	return &MockMemberStore{nextID: 1}
}

// NewSeededMockMemberStore creates a mock store holding the demo members
func NewSeededMockMemberStore(generated int) *MockMemberStore {
	m := NewMockMemberStore()
	for _, member := range seed.Members(generated) {
		m.AddMember(member)
	}
	return m
}

// AddMember stores a member, assigning an ID when it has none, and returns the ID
func (m *MockMemberStore) AddMember(member model.Member) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if member.ID == 0 {
		member.ID = m.nextID
	}
	if member.ID >= m.nextID {
		m.nextID = member.ID + 1
	}
	m.members = append(m.members, member)
	return member.ID
}

// ClearMembers removes all members
func (m *MockMemberStore) ClearMembers() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.members = nil
	m.nextID = 1
}

// Count returns the number of stored members, entitled or not
func (m *MockMemberStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.members)
}

// SearchMembers applies the predicate to the stored members in ID order
func (m *MockMemberStore) SearchMembers(ctx context.Context, predicate filter.Predicate, page paging.Request) (*model.MemberPage, error) {
	slog.DebugContext(ctx, "executing mock member search",
		"terms", len(predicate.Terms()),
		"page", page.Page,
		"size", page.Size,
	)

	if m.SearchError != nil {
		return nil, m.SearchError
	}

	m.mu.RLock()
	matched := predicate.Apply(m.members)
	m.mu.RUnlock()

	start, end := page.Window(len(matched))
	content := make([]model.Member, end-start)
	copy(content, matched[start:end])

	total := int64(len(matched))
	return &model.MemberPage{
		Members:       content,
		TotalElements: total,
		TotalPages:    paging.TotalPages(total, page.Size),
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

// FindMemberByID returns a copy of the member with the given ID
func (m *MockMemberStore) FindMemberByID(ctx context.Context, id int64) (*model.Member, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, member := range m.members {
		if member.ID == id {
			found := member
			return &found, nil
		}
	}
	return nil, errors.NewNotFound(fmt.Sprintf("member not found with id: %d", id))
}

// SaveMember replaces the member with the same ID or appends a new one
func (m *MockMemberStore) SaveMember(ctx context.Context, member model.Member) (*model.Member, error) {
	if m.SaveError != nil {
		return nil, m.SaveError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if member.ID != 0 {
		for i := range m.members {
			if m.members[i].ID == member.ID {
				m.members[i] = member
				saved := member
				return &saved, nil
			}
		}
	}

	if member.ID == 0 {
		member.ID = m.nextID
	}
	if member.ID >= m.nextID {
		m.nextID = member.ID + 1
	}
	m.members = append(m.members, member)
	saved := member
	return &saved, nil
}

// IsReady implements the MemberSearcher interface
func (m *MockMemberStore) IsReady(ctx context.Context) error {
	return m.IsReadyError
}
