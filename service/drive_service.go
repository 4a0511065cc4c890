package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService discovers catalog images in a Google Drive folder. Files
// are named "{entryID}.png" or "{entryID}_{position}.png"; the position
// orders an entry's carousel.
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// imageFileName matches "{entryID}_{position}.{ext}" with an optional
// position part, e.g. "p05_2.jpg" or "p01.png".
var imageFileName = regexp.MustCompile(`^([a-z0-9-]+?)(?:_(\d+))?\.(png|jpe?g)$`)

type entryImage struct {
	pos int
	url string
}

// ListEntryImages lists all image files in a Drive folder and groups their
// public URLs by the catalog entry id in the filename. Files that don't
// match the naming pattern are skipped.
func (ds *DriveService) ListEntryImages(folderID string) (map[string][]string, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	imageMimeTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
	}

	grouped := make(map[string][]entryImage)
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}

		entryID, pos, ok := parseImageFileName(file.Name)
		if !ok {
			log.Printf("⚠️  ListEntryImages: Skipping file with unexpected name: %s", file.Name)
			continue
		}

		imageURL := fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id)
		grouped[entryID] = append(grouped[entryID], entryImage{pos: pos, url: imageURL})
	}

	result := make(map[string][]string, len(grouped))
	for entryID, images := range grouped {
		sort.Slice(images, func(i, j int) bool { return images[i].pos < images[j].pos })
		urls := make([]string, 0, len(images))
		for _, img := range images {
			urls = append(urls, img.url)
		}
		result[entryID] = urls
	}

	log.Printf("✓ ListEntryImages: Discovered images for %d entries in folder %s", len(result), folderID)
	return result, nil
}

// parseImageFileName extracts the entry id and carousel position from a
// Drive filename. A missing position defaults to 0.
func parseImageFileName(name string) (entryID string, pos int, ok bool) {
	matches := imageFileName.FindStringSubmatch(strings.ToLower(name))
	if matches == nil {
		return "", 0, false
	}
	entryID = matches[1]
	if matches[2] != "" {
		pos, _ = strconv.Atoi(matches[2])
	}
	return entryID, pos, true
}
