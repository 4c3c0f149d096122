package warehouse

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSStager uploads sources to a Cloud Storage bucket before loading.
type GCSStager struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStager creates a stager writing to gs://bucket/prefix/.
func NewGCSStager(client *storage.Client, bucket, prefix string) *GCSStager {
	return &GCSStager{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// ObjectName returns the object key used for a local source path.
func (s *GCSStager) ObjectName(localPath string) string {
	return path.Join(s.prefix, filepath.Base(localPath))
}

// Stage uploads r and returns the gs:// URI of the object.
// The object is overwritten if it already exists and is left in place after loading.
func (s *GCSStager) Stage(ctx context.Context, localPath string, r io.Reader) (string, error) {
	name := s.ObjectName(localPath)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "text/csv"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s to gs://%s/%s: %w", localPath, s.bucket, name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize gs://%s/%s: %w", s.bucket, name, err)
	}
	return "gs://" + s.bucket + "/" + name, nil
}
