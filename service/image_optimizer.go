package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"log"

	"github.com/disintegration/imaging"
)

const (
	// MaxReviewPhotos caps the attachments accepted per review submission.
	MaxReviewPhotos = 6
	// Photos are bounded to this dimension and re-encoded as JPEG before
	// being inlined, so a review never stores multi-megabyte originals.
	maxPhotoDim  = 800
	photoQuality = 75
)

// PhotosToDataURLs converts uploaded photo files into inline JPEG data
// URLs. At most MaxReviewPhotos inputs are processed; undecodable files are
// skipped with a warning. No attachments yields an empty (non-nil) list.
func PhotosToDataURLs(files [][]byte) []string {
	if len(files) > MaxReviewPhotos {
		files = files[:MaxReviewPhotos]
	}

	urls := make([]string, 0, len(files))
	for i, data := range files {
		dataURL, err := photoToDataURL(data)
		if err != nil {
			log.Printf("⚠️  PhotosToDataURLs: Skipping photo %d: %v", i, err)
			continue
		}
		urls = append(urls, dataURL)
	}
	return urls
}

// photoToDataURL decodes one image, bounds it to maxPhotoDim and encodes
// the result as a base64 JPEG data URL.
func photoToDataURL(data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resized image.Image = img
	if width > maxPhotoDim || height > maxPhotoDim {
		// Fit preserves aspect ratio inside the bounding box.
		resized = imaging.Fit(img, maxPhotoDim, maxPhotoDim, imaging.Lanczos)
		log.Printf("🔄 photoToDataURL: Resized %s photo %dx%d -> fit %d", format, width, height, maxPhotoDim)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: photoQuality}); err != nil {
		return "", fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
