package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/AleksMarkov/LumenTask-server/pkg/storage"
)

const renditionQuality = 85

// LocalStore is a media store for development and tests. There is no CDN to
// derive renditions lazily, so TransformedURL renders the rendition with
// imaging and stores it next to the original.
type LocalStore struct {
	storage storage.Storage
	cdn     *CDNStore // reuses the upload path
}

// NewLocalStore creates a filesystem-backed media store.
func NewLocalStore(st storage.Storage) *LocalStore {
	return &LocalStore{
		storage: st,
		cdn:     NewCDNStore(st),
	}
}

// Upload stores the local file under namespace/objectID.
func (s *LocalStore) Upload(ctx context.Context, localPath string, params UploadParams) (*UploadResult, error) {
	return s.cdn.Upload(ctx, localPath, params)
}

// TransformedURL renders the rendition eagerly: the stored object is decoded,
// crop-filled to the requested size, and written as a JPEG variant. Gravity,
// radius, and border are CDN concerns and are ignored here; a centred crop
// approximates face gravity closely enough for development.
func (s *LocalStore) TransformedURL(ctx context.Context, key string, t Transform) (string, error) {
	if t.Width <= 0 || t.Height <= 0 {
		return s.storage.PublicURL(key), nil
	}

	rc, err := s.storage.Read(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read object: %w", err)
	}
	defer rc.Close()

	img, err := imaging.Decode(rc)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fill(img, t.Width, t.Height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(renditionQuality)); err != nil {
		return "", fmt.Errorf("failed to encode rendition: %w", err)
	}

	variantKey := fmt.Sprintf("%s@%dx%d.jpg", key, t.Width, t.Height)
	if err := s.storage.Write(ctx, variantKey, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "image/jpeg"); err != nil {
		return "", fmt.Errorf("failed to store rendition: %w", err)
	}

	return s.storage.PublicURL(variantKey), nil
}
