package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/giquina/armora-sub001/internal/domain/pricing"
)

// ErrSnapshotNotFound is returned by SnapshotStorage when no object exists
// under the requested key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrAssignmentExists is returned by AssignmentRepository.Save when the
// session already has a confirmed assignment.
var ErrAssignmentExists = errors.New("session already has an assignment")

// ErrSessionOwner is returned by SessionStore.Replace when the live session
// under the id belongs to someone else.
var ErrSessionOwner = errors.New("session belongs to another owner")

// Session binds a live configurator to its owner.
type Session struct {
	ID           uuid.UUID
	Owner        string
	Configurator *Configurator
	CreatedAt    time.Time
}

// Assignment is the history record written after a successful payment.
type Assignment struct {
	ID           uuid.UUID     `json:"id"`
	SessionID    uuid.UUID     `json:"sessionId"`
	Owner        string        `json:"owner"`
	Snapshot     Snapshot      `json:"snapshot"`
	Quote        pricing.Quote `json:"quote"`
	PaymentToken string        `json:"paymentToken"`
	ConfirmedAt  time.Time     `json:"confirmedAt"`
}

// SessionStore keeps live booking sessions.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, id uuid.UUID) (Session, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Replace stores session, retiring any live session under the same id
	// in the same step. A live session that is submitting or paid for is
	// kept and its Retire error returned.
	Replace(ctx context.Context, session Session) error
}

// DestinationStore persists each owner's recent destinations.
type DestinationStore interface {
	Load(ctx context.Context, owner string) ([]string, error)
	Save(ctx context.Context, owner string, items []string) error
}

// AssignmentRepository is the history collaborator.
type AssignmentRepository interface {
	Save(ctx context.Context, assignment Assignment) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]Assignment, error)
	FindBySession(ctx context.Context, sessionID uuid.UUID) (Assignment, bool, error)
}

// SnapshotStorage holds exported snapshots as opaque objects.
type SnapshotStorage interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
