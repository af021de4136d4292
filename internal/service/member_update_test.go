// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-member-search-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-member-search-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberUpdateUpdateMember(t *testing.T) {
	validDetails := model.Member{
		FirstName:      "Johnny",
		MiddleName:     "Q",
		LastName:       "Dough",
		BusinessUnit:   "Finance",
		Country:        "Canada",
		SourceMemberID: "9001",
	}

	tests := []struct {
		name          string
		id            int64
		details       model.Member
		setupMocks    func(*mock.MockMemberStore, *mock.MockMemberEventPublisher)
		expectedError error
		expectedEvent bool
	}{
		{
			name:          "updates descriptive fields",
			id:            1,
			details:       validDetails,
			expectedEvent: true,
		},
		{
			name: "entitlement in the request is ignored",
			id:   2,
			details: func() model.Member {
				d := validDetails
				d.Entitled = true
				return d
			}(),
			expectedEvent: true,
		},
		{
			name:          "unknown member",
			id:            42,
			details:       validDetails,
			expectedError: errors.NotFound{},
		},
		{
			name: "blank first name",
			id:   1,
			details: func() model.Member {
				d := validDetails
				d.FirstName = "  "
				return d
			}(),
			expectedError: errors.Validation{},
		},
		{
			name: "blank last name",
			id:   1,
			details: func() model.Member {
				d := validDetails
				d.LastName = ""
				return d
			}(),
			expectedError: errors.Validation{},
		},
		{
			name:    "save failure",
			id:      1,
			details: validDetails,
			setupMocks: func(store *mock.MockMemberStore, _ *mock.MockMemberEventPublisher) {
				store.SaveError = errors.NewUnexpected("disk full")
			},
			expectedError: errors.Unexpected{},
		},
		{
			name:    "publish failure does not fail the update",
			id:      1,
			details: validDetails,
			setupMocks: func(_ *mock.MockMemberStore, publisher *mock.MockMemberEventPublisher) {
				publisher.PublishError = fmt.Errorf("nats down")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertion := assert.New(t)

			store := newTestStore()
			publisher := mock.NewMockMemberEventPublisher()
			if tc.setupMocks != nil {
				tc.setupMocks(store, publisher)
			}

			original, errFind := store.FindMemberByID(context.Background(), tc.id)

			ctx := context.WithValue(context.Background(), constants.PrincipalContextID, "editor")
			service := NewMemberUpdate(store, publisher)

			saved, err := service.UpdateMember(ctx, tc.id, tc.details)

			if tc.expectedError != nil {
				assertion.Error(err)
				assertion.Nil(saved)
				assertion.IsType(tc.expectedError, unwrapTyped(err))
				assertion.Empty(publisher.Events())
				return
			}

			require.NoError(t, err)
			require.NoError(t, errFind)
			assertion.Equal(tc.id, saved.ID)
			assertion.Equal(tc.details.FirstName, saved.FirstName)
			assertion.Equal(tc.details.MiddleName, saved.MiddleName)
			assertion.Equal(tc.details.LastName, saved.LastName)
			assertion.Equal(tc.details.BusinessUnit, saved.BusinessUnit)
			assertion.Equal(tc.details.Country, saved.Country)
			assertion.Equal(tc.details.SourceMemberID, saved.SourceMemberID)
			assertion.Equal(original.Entitled, saved.Entitled)

			stored, err := store.FindMemberByID(context.Background(), tc.id)
			require.NoError(t, err)
			assertion.Equal(*saved, *stored)

			events := publisher.Events()
			if !tc.expectedEvent {
				assertion.Empty(events)
				return
			}
			require.Len(t, events, 1)
			assertion.Equal(*saved, events[0].Member)
			assertion.Equal("editor", events[0].Principal)
			assertion.WithinDuration(time.Now(), events[0].UpdatedAt, time.Minute)
		})
	}
}
