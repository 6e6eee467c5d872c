// Package mirror provides the durable key-value store backing the quota
// ledger. Hosted deployments point it at redis; everywhere else it degrades
// to a local-file store with the same read/write semantics.
package mirror

import (
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("mirror: key not found")

// Store is the durable mirror boundary. Both implementations are selected
// once at startup; the ledger never branches on the backend.
type Store interface {
	Get(key string, dst interface{}) error
	Set(key string, value interface{}, ttl time.Duration) error
}
