package brainmap

import (
	"fmt"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/ids"
)

const defaultConnectionStyle = "solid"

// ConnectionCreate seeds a new connection. BrainMapID, SourceNodeID and
// TargetNodeID are required. Parallel connections between the same pair
// are allowed; membership of source and target in the stated map is not
// checked beyond the store's foreign keys.
type ConnectionCreate struct {
	BrainMapID   string  `json:"brainMapId"`
	SourceNodeID string  `json:"sourceNodeId"`
	TargetNodeID string  `json:"targetNodeId"`
	Label        *string `json:"label"`
	Color        *string `json:"color"`
	Style        *string `json:"style"`
	Animated     *bool   `json:"animated"`
}

// CreateConnection inserts a connection and touches the owning map.
func (s *Service) CreateConnection(in ConnectionCreate) (*store.BrainMapConnection, error) {
	now := store.Timestamp(s.now())

	c := &store.BrainMapConnection{
		ID:           ids.New(ids.Connection),
		BrainMapID:   in.BrainMapID,
		SourceNodeID: in.SourceNodeID,
		TargetNodeID: in.TargetNodeID,
		Label:        in.Label,
		Color:        in.Color,
		Style:        defaultConnectionStyle,
		CreatedAt:    now,
	}
	if in.Style != nil {
		c.Style = *in.Style
	}
	if in.Animated != nil {
		c.Animated = *in.Animated
	}

	if err := s.store.CreateConnection(c); err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}
	if err := s.store.TouchBrainMap(c.BrainMapID, now); err != nil {
		return nil, fmt.Errorf("touch brain map: %w", err)
	}
	return c, nil
}

// DeleteConnection removes a connection by id. It does not touch the
// owning map's updated_at, unlike node deletion.
func (s *Service) DeleteConnection(id string) error {
	return s.store.DeleteConnection(id)
}
