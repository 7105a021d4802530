package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

type recentListerStub struct {
	requests []domain.Request
	err      error
}

func (s *recentListerStub) ListRecent(_ context.Context, limit int) ([]domain.Request, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.requests) > limit {
		return s.requests[:limit], nil
	}
	return s.requests, nil
}

func TestDuplicateDetectorFlagsOverlap(t *testing.T) {
	store := &recentListerStub{requests: []domain.Request{
		{RequestID: "r1", Query: "library card lost"},
		{RequestID: "r2", Query: "fan not working in room 12"},
	}}
	detector := NewDuplicateDetector(store, 20, 0.6)

	dup, id := detector.Check(context.Background(), "fan not working in room 12 please")
	require.True(t, dup)
	assert.Equal(t, "r2", id)
}

func TestDuplicateDetectorFirstMatchWins(t *testing.T) {
	store := &recentListerStub{requests: []domain.Request{
		{RequestID: "r1", Query: "water tap leaking"},
		{RequestID: "r2", Query: "water tap leaking badly"},
	}}
	detector := NewDuplicateDetector(store, 20, 0.6)

	dup, id := detector.Check(context.Background(), "water tap leaking again")
	require.True(t, dup)
	assert.Equal(t, "r1", id)
}

func TestDuplicateDetectorUnrelatedQueries(t *testing.T) {
	store := &recentListerStub{requests: []domain.Request{
		{RequestID: "r1", Query: "door hinge broken in hostel"},
	}}
	detector := NewDuplicateDetector(store, 20, 0.6)

	dup, id := detector.Check(context.Background(), "wifi not connecting")
	assert.False(t, dup)
	assert.Empty(t, id)
}

func TestDuplicateDetectorOverlapDividesByCandidateSize(t *testing.T) {
	// Candidate has 5 words, 3 shared with the new query: 0.6 is not > 0.6.
	store := &recentListerStub{requests: []domain.Request{
		{RequestID: "r1", Query: "fan broken in room twelve"},
	}}
	detector := NewDuplicateDetector(store, 20, 0.6)

	dup, _ := detector.Check(context.Background(), "fan broken in corridor near stairs")
	assert.False(t, dup)

	// 4 of 5 shared: 0.8 flags.
	dup, id := detector.Check(context.Background(), "fan broken in room thirteen")
	require.True(t, dup)
	assert.Equal(t, "r1", id)
}

func TestDuplicateDetectorStoreFailureIsAdvisory(t *testing.T) {
	detector := NewDuplicateDetector(&recentListerStub{err: errors.New("store down")}, 20, 0.6)

	dup, id := detector.Check(context.Background(), "fan not working")
	assert.False(t, dup)
	assert.Empty(t, id)
}

func TestDuplicateDetectorSkipsEmptyCandidates(t *testing.T) {
	store := &recentListerStub{requests: []domain.Request{
		{RequestID: "r1", Query: ""},
		{RequestID: "r2", Query: "fan not working"},
	}}
	detector := NewDuplicateDetector(store, 20, 0.6)

	dup, id := detector.Check(context.Background(), "fan not working")
	require.True(t, dup)
	assert.Equal(t, "r2", id)
}
