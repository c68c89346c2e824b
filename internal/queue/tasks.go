package queue

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vidtube/vidtube-api-go/internal/storage"
)

// TypeAssetDelete removes an asset the request path failed to delete.
const TypeAssetDelete = "asset:delete"

// AssetDeletePayload is the payload of TypeAssetDelete tasks.
type AssetDeletePayload struct {
	Kind     storage.Kind `json:"kind"`
	PublicID string       `json:"public_id"`
	Reason   string       `json:"reason,omitempty"`
}

// NewAssetDeletePayload validates and builds a payload.
func NewAssetDeletePayload(kind storage.Kind, publicID, reason string) (*AssetDeletePayload, error) {
	if publicID == "" {
		return nil, errors.New("public ID is required")
	}
	if kind != storage.KindImage && kind != storage.KindVideo {
		return nil, fmt.Errorf("unknown asset kind %q", kind)
	}
	return &AssetDeletePayload{Kind: kind, PublicID: publicID, Reason: reason}, nil
}

func (p *AssetDeletePayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalAssetDeletePayload decodes a task payload.
func UnmarshalAssetDeletePayload(data []byte) (*AssetDeletePayload, error) {
	var p AssetDeletePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &p, nil
}
