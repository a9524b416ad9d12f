package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUpserter struct {
	calls int
	err   error
	seen  map[uuid.UUID]bool
}

func (f *fakeUpserter) UpsertProfile(_ context.Context, id uuid.UUID, _, _ string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.seen == nil {
		f.seen = make(map[uuid.UUID]bool)
	}
	f.seen[id] = true
	return nil
}

func TestEnsureProfile_CreatesRow(t *testing.T) {
	store := &fakeUpserter{}
	p := New(store)
	id := uuid.New()

	p.EnsureProfile(context.Background(), id, "a@example.com", "A")

	assert.Equal(t, 1, store.calls)
	assert.True(t, store.seen[id])
}

func TestEnsureProfile_IdempotentOnDuplicate(t *testing.T) {
	store := &fakeUpserter{}
	p := New(store)
	id := uuid.New()

	// Two concurrent signups for the same identity both call the hook;
	// neither may fail.
	p.EnsureProfile(context.Background(), id, "a@example.com", "A")
	p.EnsureProfile(context.Background(), id, "a@example.com", "A")

	assert.Equal(t, 2, store.calls)
	assert.Len(t, store.seen, 1)
}

func TestEnsureProfile_SwallowsErrors(t *testing.T) {
	store := &fakeUpserter{err: errors.New("connection refused")}
	p := New(store)

	// Must not panic or propagate; signup goes on without a profile row.
	p.EnsureProfile(context.Background(), uuid.New(), "a@example.com", "A")

	assert.Equal(t, 1, store.calls)
}

func TestEnsureProfile_SkipsNilIdentity(t *testing.T) {
	store := &fakeUpserter{}
	p := New(store)

	p.EnsureProfile(context.Background(), uuid.Nil, "a@example.com", "A")

	assert.Equal(t, 0, store.calls)
}
