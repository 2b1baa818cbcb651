package helpers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Stored objects live under {entityType}/{unix-millis}_{original-name}, the
// same convention the web client used, so URLs stay stable across both.

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeFilename(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = unsafeChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "file"
	}
	return base
}

func storagePathAt(folder string, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s", folder, at.UnixMilli(), sanitizeFilename(filename))
}

// StoragePath builds the timestamp-qualified object path for an upload.
func StoragePath(folder string, filename string) string {
	return storagePathAt(folder, filename, time.Now())
}

// UploadFile streams a multipart file to Cloudinary and returns the public
// URL. resourceType must be "image" for covers and "video" for audio
// (Cloudinary files mp3 under video).
func UploadFile(file multipart.File, fileHeader *multipart.FileHeader, folder string, resourceType string) (string, error) {
	// Reset the pointer; the caller may have read the stream already.
	if _, err := file.Seek(0, 0); err != nil {
		return "", err
	}

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	publicID := StoragePath(folder, fileHeader.Filename)
	uploadResult, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// publicIDFromURL recovers the Cloudinary public ID and resource type from a
// delivery URL, e.g.
// https://res.cloudinary.com/demo/image/upload/v1/genres/17_rock.png
// yields ("genres/17_rock", "image").
func publicIDFromURL(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	uploadIdx := -1
	for i, s := range segments {
		if s == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 1 || uploadIdx+1 >= len(segments) {
		return "", "", fmt.Errorf("not a storage delivery URL: %s", rawURL)
	}

	resourceType := segments[uploadIdx-1]
	rest := segments[uploadIdx+1:]
	if len(rest) > 0 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", "", fmt.Errorf("no public id in URL: %s", rawURL)
	}

	publicID := strings.Join(rest, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	return publicID, resourceType, nil
}

// DeleteFile removes a stored object given its public URL. Deletion is
// best-effort: every failure is logged and swallowed so the caller's
// document operation can proceed.
func DeleteFile(fileURL string) {
	publicID, resourceType, err := publicIDFromURL(fileURL)
	if err != nil {
		log.Warn("storage delete skipped", "url", fileURL, "err", err)
		return
	}

	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Warn("storage delete failed", "public_id", publicID, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		log.Warn("storage delete failed", "public_id", publicID, "err", err)
	}
}
