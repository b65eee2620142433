// Package commands is the application's command surface: one method per
// operation the front end can issue. Each method validates its request,
// delegates to the owning domain service, and logs the outcome. This is
// the only layer that composes the services; callers never reach the
// store directly.
package commands

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/brainmap"
	"github.com/voyena/voyena-core/pkg/events"
	"github.com/voyena/voyena-core/pkg/folders"
	"github.com/voyena/voyena-core/pkg/notes"
	"github.com/voyena/voyena-core/pkg/settings"
)

// Surface bundles every domain service behind a flat set of commands.
type Surface struct {
	log *zap.Logger

	store     store.Storer
	BrainMaps *brainmap.Service
	Notes     *notes.Service
	Folders   *folders.Service
	Events    *events.Service
	Settings  *settings.Service
}

// New wires a command surface over a store.
func New(st store.Storer, logger *zap.Logger) *Surface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Surface{
		log:       logger,
		store:     st,
		BrainMaps: brainmap.New(st),
		Notes:     notes.New(st),
		Folders:   folders.New(st),
		Events:    events.New(st),
		Settings:  settings.New(st),
	}
}

// Brain map lifecycle

// CreateBrainMap creates a map together with its center node.
func (s *Surface) CreateBrainMap(in brainmap.MapCreate) (*brainmap.MapView, error) {
	view, err := s.BrainMaps.CreateMap(in)
	if err != nil {
		s.log.Error("create brain map failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("brain map created",
		zap.String("id", view.Map.ID),
		zap.String("title", view.Map.Title))
	return view, nil
}

// GetBrainMap returns a map with its nodes and connections, (nil, nil)
// when unknown.
func (s *Surface) GetBrainMap(id string) (*brainmap.MapView, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.BrainMaps.GetMap(id)
}

// ListBrainMaps returns all non-deleted maps, most recently touched first.
func (s *Surface) ListBrainMaps() ([]*store.BrainMap, error) {
	return s.BrainMaps.ListMaps()
}

// UpdateBrainMap applies a partial patch to a map.
func (s *Surface) UpdateBrainMap(id string, patch brainmap.MapUpdate) (*store.BrainMap, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.BrainMaps.UpdateMap(id, patch)
}

// DeleteBrainMap soft-deletes a map, or hard-deletes it together with
// its nodes and connections.
func (s *Surface) DeleteBrainMap(id string, hard bool) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.BrainMaps.DeleteMap(id, hard); err != nil {
		s.log.Error("delete brain map failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.log.Info("brain map deleted", zap.String("id", id), zap.Bool("hard", hard))
	return nil
}

// Nodes

// CreateNode adds a node to a map and touches the map.
func (s *Surface) CreateNode(in brainmap.NodeCreate) (*store.BrainMapNode, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.BrainMapID, validation.Required),
		validation.Field(&in.Label, validation.Required),
	); err != nil {
		return nil, err
	}
	return s.BrainMaps.CreateNode(in)
}

// UpdateNode applies a partial patch to a node and touches the map.
func (s *Surface) UpdateNode(id string, patch brainmap.NodeUpdate) (*store.BrainMapNode, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.BrainMaps.UpdateNode(id, patch)
}

// DeleteNode removes a node and touches the map. Unknown ids are a no-op.
func (s *Surface) DeleteNode(id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.BrainMaps.DeleteNode(id)
}

// RepositionNodes applies a batch of position updates with one shared
// timestamp. The batch is not atomic.
func (s *Surface) RepositionNodes(positions []brainmap.NodePosition) error {
	for _, p := range positions {
		if err := requireID(p.ID); err != nil {
			return err
		}
	}
	return s.BrainMaps.RepositionNodes(positions)
}

// RecomputeLayers rewrites a map's node layers from its parent structure.
func (s *Surface) RecomputeLayers(mapID string) ([]*store.BrainMapNode, error) {
	if err := requireID(mapID); err != nil {
		return nil, err
	}
	nodes, err := s.BrainMaps.RecomputeLayers(mapID)
	if err != nil {
		return nil, err
	}
	s.log.Info("layers recomputed", zap.String("brain_map_id", mapID), zap.Int("nodes", len(nodes)))
	return nodes, nil
}

// Connections

// CreateConnection adds an edge between two nodes and touches the map.
func (s *Surface) CreateConnection(in brainmap.ConnectionCreate) (*store.BrainMapConnection, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.BrainMapID, validation.Required),
		validation.Field(&in.SourceNodeID, validation.Required),
		validation.Field(&in.TargetNodeID, validation.Required),
	); err != nil {
		return nil, err
	}
	return s.BrainMaps.CreateConnection(in)
}

// DeleteConnection removes an edge. The owning map is not touched.
func (s *Surface) DeleteConnection(id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.BrainMaps.DeleteConnection(id)
}

func requireID(id string) error {
	return validation.Validate(id, validation.Required)
}
