package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

func TestRecentQueryCacheFallsThroughWithoutClient(t *testing.T) {
	inner := NewMemoryRequestRepository()
	cache := NewRecentQueryCache(inner, nil, 20, nil)
	ctx := context.Background()

	require.NoError(t, cache.Create(ctx, &domain.Request{
		RequestID: "r1",
		StudentID: "101",
		Query:     "fan not working",
		Category:  domain.CategoryHostel,
		Status:    domain.RequestStatusNoTechnician,
	}))

	recent, err := cache.ListRecent(ctx, 20)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "r1", recent[0].RequestID)

	// The write went through to the primary store.
	stored, err := inner.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "fan not working", stored.Query)
}
