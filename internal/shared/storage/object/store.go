package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Save namespaces the object under the user's key and returns the storage
// key together with the byte count and sniffed mime type. PublicURL maps a
// storage key to a durable, resolvable URL; KeyFromURL inverts that mapping
// for records that only persisted the URL.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	PublicURL(storageKey string) string
	KeyFromURL(rawURL string) (string, bool)
}
