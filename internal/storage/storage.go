package storage

// ObjectStorage is the boundary to the object store holding gallery images
// and invoice snapshots. Put returns the public URL of the stored object;
// Delete takes that same URL back.
type ObjectStorage interface {
	Put(path string, data []byte) (string, error)
	Delete(url string) error
}
