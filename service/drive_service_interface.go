package service

// DriveServiceInterface defines the contract for catalog image discovery
// from Google Drive.
type DriveServiceInterface interface {
	// ListEntryImages scans a folder for image files named after catalog
	// entries and returns the public URLs grouped by entry id, ordered by
	// position.
	ListEntryImages(folderID string) (map[string][]string, error)
}
