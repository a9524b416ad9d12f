// Package provision creates dependent records for new identities.
//
// Profile creation is a best-effort side effect of signup: it must never
// block or fail the primary operation. Errors are logged and swallowed.
package provision

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// ProfileUpserter is the subset of the db layer the provisioner needs.
type ProfileUpserter interface {
	UpsertProfile(ctx context.Context, id uuid.UUID, email, fullName string) error
}

// Provisioner creates profile rows for newly registered identities.
type Provisioner struct {
	db ProfileUpserter
}

// New creates a Provisioner backed by the given store
func New(db ProfileUpserter) *Provisioner {
	return &Provisioner{db: db}
}

// EnsureProfile makes sure a profile row exists for the identity. The insert
// is an ON CONFLICT DO NOTHING upsert, so duplicate signups converge on one
// row. Any failure is logged as a warning and discarded: signup proceeds
// regardless.
func (p *Provisioner) EnsureProfile(ctx context.Context, id uuid.UUID, email, fullName string) {
	if id == uuid.Nil {
		log.Printf("WARNING: profile provisioning skipped: missing identity id for %s", email)
		return
	}
	if err := p.db.UpsertProfile(ctx, id, email, fullName); err != nil {
		log.Printf("WARNING: profile provisioning failed for %s: %v", id, err)
	}
}
