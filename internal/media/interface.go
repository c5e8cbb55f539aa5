package media

import (
	"context"
)

// UploadParams controls where an uploaded file is stored.
// ObjectID is deterministic per caller (avatar uploads use the user ID), so
// re-uploading overwrites the previous object instead of orphaning it.
type UploadParams struct {
	Namespace string
	ObjectID  string
}

// UploadResult describes a stored media object.
type UploadResult struct {
	ObjectID  string
	Key       string
	PublicURL string
}

// Transform describes a derived rendition of a stored object.
type Transform struct {
	Width   int
	Height  int
	Crop    string // fill, fit
	Gravity string // face, center
	Radius  string // corner rounding, "max" for a circle
	Border  string // e.g. "2px_solid_white"
}

// Store uploads media objects and derives transformed URLs from them.
//
// TransformedURL never re-sends the object's bytes over the wire; whether the
// rendition is computed eagerly or encoded into the URL is up to the
// implementation.
type Store interface {
	Upload(ctx context.Context, localPath string, params UploadParams) (*UploadResult, error)
	TransformedURL(ctx context.Context, key string, t Transform) (string, error)
}
