package media

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/AleksMarkov/LumenTask-server/pkg/storage"
)

// CDNStore stores objects in S3-compatible storage fronted by an
// image-transforming CDN. Transformations are pure URL derivations: the CDN
// renders the requested rendition on first access.
type CDNStore struct {
	storage storage.Storage
}

// NewCDNStore creates a CDN-backed media store.
func NewCDNStore(st storage.Storage) *CDNStore {
	return &CDNStore{storage: st}
}

// Upload reads the local file and writes it to object storage under
// namespace/objectID. The caller owns the local file; it is not removed here.
func (s *CDNStore) Upload(ctx context.Context, localPath string, params UploadParams) (*UploadResult, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat upload: %w", err)
	}

	contentType, err := sniffContentType(f)
	if err != nil {
		return nil, err
	}

	key := params.Namespace + "/" + params.ObjectID
	if err := s.storage.Write(ctx, key, f, info.Size(), contentType); err != nil {
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	return &UploadResult{
		ObjectID:  params.ObjectID,
		Key:       key,
		PublicURL: s.storage.PublicURL(key),
	}, nil
}

// TransformedURL derives a rendition URL by encoding the transform as query
// parameters on the object's public URL. No network round trip is made.
func (s *CDNStore) TransformedURL(ctx context.Context, key string, t Transform) (string, error) {
	q := url.Values{}
	if t.Width > 0 {
		q.Set("w", strconv.Itoa(t.Width))
	}
	if t.Height > 0 {
		q.Set("h", strconv.Itoa(t.Height))
	}
	if t.Crop != "" {
		q.Set("c", t.Crop)
	}
	if t.Gravity != "" {
		q.Set("g", t.Gravity)
	}
	if t.Radius != "" {
		q.Set("r", t.Radius)
	}
	if t.Border != "" {
		q.Set("b", t.Border)
	}

	base := s.storage.PublicURL(key)
	if len(q) == 0 {
		return base, nil
	}
	return base + "?" + q.Encode(), nil
}

// sniffContentType detects the MIME type from the file's first bytes and
// rewinds the reader.
func sniffContentType(f *os.File) (string, error) {
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	if _, err := f.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	return http.DetectContentType(buf[:n]), nil
}
