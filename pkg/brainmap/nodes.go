package brainmap

import (
	"fmt"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/ids"
)

// Defaults applied when a node is created without explicit values.
const (
	defaultNodeShape = "circle"
	defaultNodeSize  = "medium"
)

// NodeCreate seeds a new node. BrainMapID and Label are required; the
// rest is optional.
type NodeCreate struct {
	BrainMapID   string   `json:"brainMapId"`
	Label        string   `json:"label"`
	ParentNodeID *string  `json:"parentNodeId"`
	Description  *string  `json:"description"`
	PositionX    *float64 `json:"positionX"`
	PositionY    *float64 `json:"positionY"`
	Color        *string  `json:"color"`
	Shape        *string  `json:"shape"`
	Size         *string  `json:"size"`
	Icon         *string  `json:"icon"`
	NoteID       *string  `json:"noteId"`
	FolderID     *string  `json:"folderId"`
}

// NodeUpdate is a partial patch over a node's mutable fields. Layer is
// not patchable: it stays as assigned at creation even when the node is
// moved to a new parent.
type NodeUpdate struct {
	ParentNodeID *string  `json:"parentNodeId"`
	Label        *string  `json:"label"`
	Description  *string  `json:"description"`
	PositionX    *float64 `json:"positionX"`
	PositionY    *float64 `json:"positionY"`
	Color        *string  `json:"color"`
	Shape        *string  `json:"shape"`
	Size         *string  `json:"size"`
	Icon         *string  `json:"icon"`
	NoteID       *string  `json:"noteId"`
	FolderID     *string  `json:"folderId"`
	IsCollapsed  *bool    `json:"isCollapsed"`
}

// NodePosition is one item of a batch reposition.
type NodePosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// CreateNode inserts a node and touches the owning map.
//
// Layer derivation: with a parent, the new node sits one below the
// parent's stored layer. A dangling parent reference degrades rather
// than failing: the reference is dropped and the node lands on layer 1,
// same as a node created without a parent. Layer 0 is reserved for the
// center node, which only CreateMap writes.
func (s *Service) CreateNode(in NodeCreate) (*store.BrainMapNode, error) {
	now := store.Timestamp(s.now())

	layer := 1
	parentID := in.ParentNodeID
	if parentID != nil {
		if parent, err := s.store.GetNode(*parentID); err == nil && parent != nil {
			layer = parent.Layer + 1
		} else {
			parentID = nil
		}
	}

	n := &store.BrainMapNode{
		ID:           ids.New(ids.Node),
		BrainMapID:   in.BrainMapID,
		ParentNodeID: parentID,
		Label:        in.Label,
		Description:  in.Description,
		Shape:        defaultNodeShape,
		Size:         defaultNodeSize,
		Color:        in.Color,
		Icon:         in.Icon,
		NoteID:       in.NoteID,
		FolderID:     in.FolderID,
		Layer:        layer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.PositionX != nil {
		n.PositionX = *in.PositionX
	}
	if in.PositionY != nil {
		n.PositionY = *in.PositionY
	}
	if in.Shape != nil {
		n.Shape = *in.Shape
	}
	if in.Size != nil {
		n.Size = *in.Size
	}

	if err := s.store.CreateNode(n); err != nil {
		return nil, fmt.Errorf("create node: %w", err)
	}
	if err := s.store.TouchBrainMap(n.BrainMapID, now); err != nil {
		return nil, fmt.Errorf("touch brain map: %w", err)
	}
	return n, nil
}

// UpdateNode applies a partial patch and touches the owning map. Layer is
// immutable here: reparenting does not recompute the node's or its
// descendants' layers.
func (s *Service) UpdateNode(id string, patch NodeUpdate) (*store.BrainMapNode, error) {
	cur, err := s.store.GetNode(id)
	if err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}
	if cur == nil {
		return nil, fmt.Errorf("node %s: %w", id, store.ErrNotFound)
	}

	if patch.ParentNodeID != nil {
		cur.ParentNodeID = patch.ParentNodeID
	}
	if patch.Label != nil {
		cur.Label = *patch.Label
	}
	if patch.Description != nil {
		cur.Description = patch.Description
	}
	if patch.PositionX != nil {
		cur.PositionX = *patch.PositionX
	}
	if patch.PositionY != nil {
		cur.PositionY = *patch.PositionY
	}
	if patch.Color != nil {
		cur.Color = patch.Color
	}
	if patch.Shape != nil {
		cur.Shape = *patch.Shape
	}
	if patch.Size != nil {
		cur.Size = *patch.Size
	}
	if patch.Icon != nil {
		cur.Icon = patch.Icon
	}
	if patch.NoteID != nil {
		cur.NoteID = patch.NoteID
	}
	if patch.FolderID != nil {
		cur.FolderID = patch.FolderID
	}
	if patch.IsCollapsed != nil {
		cur.IsCollapsed = *patch.IsCollapsed
	}
	now := store.Timestamp(s.now())
	cur.UpdatedAt = now

	if err := s.store.UpdateNode(cur); err != nil {
		return nil, err
	}
	if err := s.store.TouchBrainMap(cur.BrainMapID, now); err != nil {
		return nil, fmt.Errorf("touch brain map: %w", err)
	}
	return cur, nil
}

// DeleteNode removes a node and touches the owning map. Connections
// referencing the node cascade away; children keep their rows with the
// parent reference cleared and their layer untouched. Deleting an unknown
// id is a no-op.
func (s *Service) DeleteNode(id string) error {
	n, err := s.store.GetNode(id)
	if err != nil {
		return fmt.Errorf("get node: %w", err)
	}
	if n == nil {
		return nil
	}

	if err := s.store.DeleteNode(id); err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	return s.store.TouchBrainMap(n.BrainMapID, store.Timestamp(s.now()))
}

// RepositionNodes applies position updates as independent per-row writes
// sharing one timestamp. Not atomic: the first failing item aborts the
// rest, and earlier updates stay committed.
func (s *Service) RepositionNodes(positions []NodePosition) error {
	now := store.Timestamp(s.now())
	for _, p := range positions {
		if err := s.store.UpdateNodePosition(p.ID, p.X, p.Y, now); err != nil {
			return fmt.Errorf("reposition node %s: %w", p.ID, err)
		}
	}
	return nil
}

// RecomputeLayers rewrites stored layers from the actual parent
// structure: the center node at 0, other parentless (or dangling-parent)
// nodes at 1, children one below their parent. Nodes on a parent cycle
// are unreachable from any root and keep their stored layer. This is an
// explicit opt-in repair; no other operation recomputes layers.
func (s *Service) RecomputeLayers(mapID string) ([]*store.BrainMapNode, error) {
	m, err := s.store.GetBrainMap(mapID)
	if err != nil {
		return nil, fmt.Errorf("get brain map: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("brain map %s: %w", mapID, store.ErrNotFound)
	}

	nodes, err := s.store.ListNodes(mapID)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	byID := make(map[string]*store.BrainMapNode, len(nodes))
	children := make(map[string][]*store.BrainMapNode)
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, n := range nodes {
		if n.ParentNodeID != nil && byID[*n.ParentNodeID] != nil {
			children[*n.ParentNodeID] = append(children[*n.ParentNodeID], n)
		}
	}

	depth := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		switch {
		case m.CenterNodeID != nil && n.ID == *m.CenterNodeID:
			depth[n.ID] = 0
			queue = append(queue, n.ID)
		case n.ParentNodeID == nil || byID[*n.ParentNodeID] == nil:
			depth[n.ID] = 1
			queue = append(queue, n.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if _, seen := depth[child.ID]; seen {
				continue
			}
			depth[child.ID] = depth[id] + 1
			queue = append(queue, child.ID)
		}
	}

	now := store.Timestamp(s.now())
	changed := false
	for _, n := range nodes {
		want, ok := depth[n.ID]
		if !ok || want == n.Layer {
			continue
		}
		if err := s.store.UpdateNodeLayer(n.ID, want, now); err != nil {
			return nil, fmt.Errorf("update node layer: %w", err)
		}
		n.Layer = want
		n.UpdatedAt = now
		changed = true
	}
	if changed {
		if err := s.store.TouchBrainMap(mapID, now); err != nil {
			return nil, fmt.Errorf("touch brain map: %w", err)
		}
	}

	return s.store.ListNodes(mapID)
}
