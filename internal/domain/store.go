package domain

import "context"

// Collection names of the persisted state layout.
const (
	CollectionUsers           = "users"
	CollectionQuizzes         = "quizzes"
	CollectionSubmissions     = "submissions"
	CollectionRedemptions     = "redemptions"
	CollectionWateringRecords = "watering_records"
	CollectionEvents          = "events"
)

// CollectionBackend is the storage port. Each collection is stored as one
// opaque document; Put replaces it entirely.
type CollectionBackend interface {
	// Get returns ok=false when the collection was never written.
	Get(ctx context.Context, collection string) (data []byte, ok bool, err error)
	Put(ctx context.Context, collection string, data []byte) error
	Delete(ctx context.Context, collection string) error
}
