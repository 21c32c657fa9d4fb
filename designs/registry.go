package designs

// Registry records which designs have been imported and where their PNGs
// live. A design is imported iff its id is a key here.
type Registry interface {
	MarkImported(designID, localPath string) error
	IsImported(designID string) bool
	LocalPath(designID string) (string, bool)
	// Rehydrate repopulates the registry from PNGs already on disk, closing
	// the cold-start gap after a process restart. Returns how many designs
	// were recovered.
	Rehydrate(dir string) (int, error)
}
