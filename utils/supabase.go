package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// PosterStore keeps program poster images outside the database.
type PosterStore interface {
	UploadPoster(fileHeader *multipart.FileHeader) (string, error)
	DeletePoster(publicURL string) error
}

type SupabasePosterStore struct {
	baseURL string
	bucket  string
	client  *storage.Client
}

func NewSupabasePosterStore(supabaseURL, supabaseKey, bucket string) *SupabasePosterStore {
	baseURL := strings.TrimRight(supabaseURL, "/")
	return &SupabasePosterStore{
		baseURL: baseURL,
		bucket:  bucket,
		client:  storage.NewClient(baseURL+"/storage/v1", supabaseKey, nil),
	}
}

// UploadPoster uploads an image (e.g. .jpg, .png) to Supabase Storage
// Path: <bucket>/posters/<uuid>.<ext>
func (s *SupabasePosterStore) UploadPoster(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectPath := fmt.Sprintf("posters/%s%s", uuid.NewString(), ext)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := s.client.UploadFile(s.bucket, objectPath, &buf, options); err != nil {
		return "", fmt.Errorf("upload poster: %w", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath), nil
}

// DeletePoster nhận public URL và xóa object tương ứng.
func (s *SupabasePosterStore) DeletePoster(publicURL string) error {
	if publicURL == "" {
		return nil
	}
	bucket, object, err := ParseStorageURL(publicURL)
	if err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(bucket, []string{object}); err != nil {
		return fmt.Errorf("delete poster: %w", err)
	}
	return nil
}

// ParseStorageURL extracts bucket and object path from a Supabase object URL.
func ParseStorageURL(publicURL string) (string, string, error) {
	idx := strings.Index(publicURL, "/storage/v1/object/")
	if idx == -1 {
		return "", "", fmt.Errorf("not a storage object url: %s", publicURL)
	}

	rest := publicURL[idx+len("/storage/v1/object/"):]
	rest = strings.TrimPrefix(rest, "public/")

	// rest => "<bucket>/<path/to/object...>"
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse bucket/object from url: %s", publicURL)
	}
	bucket := parts[0]
	object := parts[1]
	if qIdx := strings.Index(object, "?"); qIdx != -1 {
		object = object[:qIdx]
	}
	if u, err := url.PathUnescape(object); err == nil {
		object = u
	}
	return bucket, object, nil
}
