package session

import (
	"context"
	"errors"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/store"
)

var ErrNotFound = errors.New("session not found")

// Store is the persistence contract for wizard sessions, keyed by session id.
// Implementations own the serialization format; the engine never inspects it.
type Store interface {
	Get(ctx context.Context, id string) (store.SessionSnapshot, error)
	Put(ctx context.Context, snapshot store.SessionSnapshot) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}
