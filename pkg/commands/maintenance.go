package commands

import (
	"fmt"

	"go.uber.org/zap"
)

// Stats summarizes row counts across the database. Soft-deletable
// tables count live rows only.
type Stats struct {
	Notes       int `json:"notes"`
	Folders     int `json:"folders"`
	Events      int `json:"events"`
	BrainMaps   int `json:"brainMaps"`
	Nodes       int `json:"nodes"`
	Connections int `json:"connections"`
}

// GetStats counts rows in every table.
func (s *Surface) GetStats() (*Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.Notes, err = s.store.CountNotes(); err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}
	if st.Folders, err = s.store.CountFolders(); err != nil {
		return nil, fmt.Errorf("count folders: %w", err)
	}
	if st.Events, err = s.store.CountEvents(); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if st.BrainMaps, err = s.store.CountBrainMaps(); err != nil {
		return nil, fmt.Errorf("count brain maps: %w", err)
	}
	if st.Nodes, err = s.store.CountNodes(); err != nil {
		return nil, fmt.Errorf("count nodes: %w", err)
	}
	if st.Connections, err = s.store.CountConnections(); err != nil {
		return nil, fmt.Errorf("count connections: %w", err)
	}
	return &st, nil
}

// ExportData serializes the full database, soft-deleted rows included,
// as a JSON backup.
func (s *Surface) ExportData() ([]byte, error) {
	data, err := s.store.Export()
	if err != nil {
		s.log.Error("export failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("database exported", zap.Int("bytes", len(data)))
	return data, nil
}

// ImportData replaces the database contents with a JSON backup produced
// by ExportData. The swap is transactional: on error nothing changes.
func (s *Surface) ImportData(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("import: empty payload")
	}
	if err := s.store.Import(data); err != nil {
		s.log.Error("import failed", zap.Error(err))
		return err
	}
	s.log.Info("database imported", zap.Int("bytes", len(data)))
	return nil
}
