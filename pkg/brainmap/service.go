// Package brainmap implements the mind-map domain service: map lifecycle,
// the node hierarchy with creation-time layers, free-form connections,
// and the touch propagation that keeps a map's updated_at in step with
// edits to its content.
package brainmap

import (
	"fmt"
	"time"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/ids"
)

// Defaults applied when a map is created without explicit values.
const (
	DefaultTitle      = "Untitled Map"
	DefaultCenterText = "Central Idea"

	centerNodeColor = "#6366f1"
	centerNodeShape = "circle"
	centerNodeSize  = "large"
)

// Service manages brain maps, their nodes, and their connections.
type Service struct {
	store store.Storer
	now   func() time.Time
}

// New creates a brain map service.
func New(s store.Storer) *Service {
	return &Service{store: s, now: time.Now}
}

// MapCreate seeds a new map. Every field is optional.
type MapCreate struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	CenterNodeText *string `json:"centerNodeText"`
	Theme          *string `json:"theme"`
}

// MapUpdate is a partial patch: present fields override, absent fields
// keep their stored value.
type MapUpdate struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	CenterNodeText *string  `json:"centerNodeText"`
	PositionX      *float64 `json:"positionX"`
	PositionY      *float64 `json:"positionY"`
	Zoom           *float64 `json:"zoom"`
	Theme          *string  `json:"theme"`
}

// MapView is the composed read model of a map: the record, its nodes
// ordered by layer then creation time, and its connections.
type MapView struct {
	Map         *store.BrainMap             `json:"map"`
	Nodes       []*store.BrainMapNode       `json:"nodes"`
	Connections []*store.BrainMapConnection `json:"connections"`
}

// CreateMap creates a map together with its root node. The two inserts
// share one transaction: a map is never observable without its center.
func (s *Service) CreateMap(in MapCreate) (*MapView, error) {
	now := store.Timestamp(s.now())
	mapID := ids.New(ids.BrainMap)
	nodeID := ids.New(ids.Node)

	title := DefaultTitle
	if in.Title != nil && *in.Title != "" {
		title = *in.Title
	}
	centerText := DefaultCenterText
	if in.CenterNodeText != nil && *in.CenterNodeText != "" {
		centerText = *in.CenterNodeText
	}

	color := centerNodeColor
	m := &store.BrainMap{
		ID:             mapID,
		Title:          title,
		Description:    in.Description,
		CenterNodeID:   &nodeID,
		CenterNodeText: centerText,
		Zoom:           1,
		Theme:          in.Theme,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	root := &store.BrainMapNode{
		ID:         nodeID,
		BrainMapID: mapID,
		Label:      centerText,
		Color:      &color,
		Shape:      centerNodeShape,
		Size:       centerNodeSize,
		Layer:      0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateBrainMapWithRoot(m, root); err != nil {
		return nil, fmt.Errorf("create brain map: %w", err)
	}

	return &MapView{
		Map:         m,
		Nodes:       []*store.BrainMapNode{root},
		Connections: []*store.BrainMapConnection{},
	}, nil
}

// GetMap returns a map with all its nodes and connections, or (nil, nil)
// when the id is unknown. Soft-deleted maps are still returned; only the
// listing filters them.
func (s *Service) GetMap(id string) (*MapView, error) {
	m, err := s.store.GetBrainMap(id)
	if err != nil {
		return nil, fmt.Errorf("get brain map: %w", err)
	}
	if m == nil {
		return nil, nil
	}

	nodes, err := s.store.ListNodes(id)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	conns, err := s.store.ListConnections(id)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	if nodes == nil {
		nodes = []*store.BrainMapNode{}
	}
	if conns == nil {
		conns = []*store.BrainMapConnection{}
	}
	return &MapView{Map: m, Nodes: nodes, Connections: conns}, nil
}

// ListMaps returns all non-deleted maps, most recently touched first.
func (s *Service) ListMaps() ([]*store.BrainMap, error) {
	return s.store.ListBrainMaps()
}

// UpdateMap applies a partial patch. updated_at always moves to the
// current time, even for an empty patch.
func (s *Service) UpdateMap(id string, patch MapUpdate) (*store.BrainMap, error) {
	cur, err := s.store.GetBrainMap(id)
	if err != nil {
		return nil, fmt.Errorf("get brain map: %w", err)
	}
	if cur == nil {
		return nil, fmt.Errorf("brain map %s: %w", id, store.ErrNotFound)
	}

	if patch.Title != nil {
		cur.Title = *patch.Title
	}
	if patch.Description != nil {
		cur.Description = patch.Description
	}
	if patch.CenterNodeText != nil {
		cur.CenterNodeText = *patch.CenterNodeText
	}
	if patch.PositionX != nil {
		cur.PositionX = *patch.PositionX
	}
	if patch.PositionY != nil {
		cur.PositionY = *patch.PositionY
	}
	if patch.Zoom != nil {
		cur.Zoom = *patch.Zoom
	}
	if patch.Theme != nil {
		cur.Theme = patch.Theme
	}
	cur.UpdatedAt = store.Timestamp(s.now())

	if err := s.store.UpdateBrainMap(cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// DeleteMap soft-deletes by default; hard delete removes the row and
// cascades to the map's nodes and connections.
func (s *Service) DeleteMap(id string, hard bool) error {
	if hard {
		return s.store.HardDeleteBrainMap(id)
	}
	return s.store.SoftDeleteBrainMap(id, store.Timestamp(s.now()))
}
