// Package storage uploads media to the asset host and removes it again.
package storage

import (
	"context"
	"errors"

	"github.com/vidtube/vidtube-api-go/internal/db/models"
)

// Kind selects the folder an asset is stored under.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

func (k Kind) folder() string {
	if k == KindVideo {
		return "videos"
	}
	return "images"
}

// ErrUnavailable is returned while the asset host is considered down.
var ErrUnavailable = errors.New("asset host unavailable")

// Object is an uploaded asset. Duration is set for videos only.
type Object struct {
	PublicID string
	URL      string
	Duration float64
}

// Asset returns the persisted form of the object.
func (o *Object) Asset() models.Asset {
	return models.Asset{PublicID: o.PublicID, URL: o.URL}
}

// AssetStore stores media files. Upload consumes localPath: the file is
// removed once the upload has finished, successfully or not.
type AssetStore interface {
	Upload(ctx context.Context, kind Kind, localPath string) (*Object, error)
	Delete(ctx context.Context, kind Kind, publicID string) error
}
