package interfaces

import "context"

// StoredFile is what the storage backend hands back for an upload. Ref is
// opaque to the rest of the system and is only ever passed back to Delete.
type StoredFile struct {
	Ref string
	URL string
}

type FileStorage interface {
	UploadBytes(ctx context.Context, folder, filename string, b []byte) (*StoredFile, error)
	Delete(ctx context.Context, ref string) error
}
