package filestorage

// Storage stores generated documents and exposes them by URL
type Storage interface {
	// SaveBytes writes data as subPath/name and returns its public URL
	SaveBytes(subPath, name string, data []byte) (string, error)

	// Open returns the contents of a stored document
	Open(subPath, name string) ([]byte, error)

	// GetFullPath returns the filesystem path of a stored document
	GetFullPath(subPath, name string) string

	// GetBaseURL returns the URL prefix documents are served under
	GetBaseURL() string
}
