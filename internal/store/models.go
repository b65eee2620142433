package store

// Note is a document in the notes table. Tags persist as a JSON array;
// soft delete is a timestamp in DeletedAt.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	FolderID  *string  `json:"folderId"`
	Tags      []string `json:"tags"`
	IsPinned  bool     `json:"isPinned"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	DeletedAt *string  `json:"deletedAt,omitempty"`
}

// Folder groups notes. Folders form a tree through ParentID and have no
// soft delete: deleting a folder reassigns its notes to "no folder".
type Folder struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parentId"`
	Color     *string `json:"color"`
	Icon      *string `json:"icon"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// EventReminder is one entry of an event's reminder list, persisted as JSON.
type EventReminder struct {
	ID            string `json:"id"`
	MinutesBefore int    `json:"minutesBefore"`
	Type          string `json:"type"`
}

// Event is a calendar entry. Priority, category and status are free-form
// strings chosen by the front end.
type Event struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	StartAt           string          `json:"startAt"`
	EndAt             *string         `json:"endAt"`
	AllDay            bool            `json:"allDay"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurrencePattern *string         `json:"recurrencePattern"`
	Priority          string          `json:"priority"`
	Category          string          `json:"category"`
	Status            string          `json:"status"`
	Reminders         []EventReminder `json:"reminders"`
	Color             *string         `json:"color"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
	DeletedAt         *string         `json:"deletedAt,omitempty"`
}

// BrainMap is the root record of a mind map. CenterNodeID back-references
// the map's single layer-0 node; CenterNodeText mirrors that node's label
// at creation time. Position and Zoom are viewport state.
type BrainMap struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	CenterNodeID   *string `json:"centerNodeId"`
	CenterNodeText string  `json:"centerNodeText"`
	PositionX      float64 `json:"positionX"`
	PositionY      float64 `json:"positionY"`
	Zoom           float64 `json:"zoom"`
	Theme          *string `json:"theme"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
	DeletedAt      *string `json:"deletedAt,omitempty"`
}

// BrainMapNode belongs to exactly one map and is removed when the map is
// hard-deleted. ParentNodeID is a weak self-reference within the same map;
// it is cleared (not cascaded) when the parent is deleted. Layer is the
// node's depth hint, assigned at creation and not recomputed afterwards.
// NoteID and FolderID are weak cross-links, cleared when the target goes.
type BrainMapNode struct {
	ID           string  `json:"id"`
	BrainMapID   string  `json:"brainMapId"`
	ParentNodeID *string `json:"parentNodeId"`
	Label        string  `json:"label"`
	Description  *string `json:"description"`
	PositionX    float64 `json:"positionX"`
	PositionY    float64 `json:"positionY"`
	Color        *string `json:"color"`
	Shape        string  `json:"shape"`
	Size         string  `json:"size"`
	Icon         *string `json:"icon"`
	NoteID       *string `json:"noteId"`
	FolderID     *string `json:"folderId"`
	IsCollapsed  bool    `json:"isCollapsed"`
	Layer        int     `json:"layer"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// BrainMapConnection is a free-form directed edge between two nodes of a
// map. Connections are immutable once created; the operation set has only
// create and delete.
type BrainMapConnection struct {
	ID           string  `json:"id"`
	BrainMapID   string  `json:"brainMapId"`
	SourceNodeID string  `json:"sourceNodeId"`
	TargetNodeID string  `json:"targetNodeId"`
	Label        *string `json:"label"`
	Color        *string `json:"color"`
	Style        string  `json:"style"`
	Animated     bool    `json:"animated"`
	CreatedAt    string  `json:"createdAt"`
}

// Storer defines the interface for data persistence.
// SQLiteStore is the sole implementation.
type Storer interface {
	// Notes
	CreateNote(n *Note) error
	GetNote(id string) (*Note, error)
	UpdateNote(n *Note) error
	ListNotes(folderID *string) ([]*Note, error)
	SoftDeleteNote(id, deletedAt string) error
	HardDeleteNote(id string) error
	MoveNotesToFolder(ids []string, folderID *string, updatedAt string) error
	CountNotes() (int, error)

	// Folders
	CreateFolder(f *Folder) error
	GetFolder(id string) (*Folder, error)
	UpdateFolder(f *Folder) error
	ListFolders() ([]*Folder, error)
	DeleteFolder(id string) error
	CountFolders() (int, error)

	// Events
	CreateEvent(e *Event) error
	GetEvent(id string) (*Event, error)
	UpdateEvent(e *Event) error
	ListEvents() ([]*Event, error)
	SoftDeleteEvent(id, deletedAt string) error
	HardDeleteEvent(id string) error
	CountEvents() (int, error)

	// Brain maps
	CreateBrainMapWithRoot(m *BrainMap, root *BrainMapNode) error
	GetBrainMap(id string) (*BrainMap, error)
	UpdateBrainMap(m *BrainMap) error
	ListBrainMaps() ([]*BrainMap, error)
	SoftDeleteBrainMap(id, deletedAt string) error
	HardDeleteBrainMap(id string) error
	TouchBrainMap(id, updatedAt string) error
	CountBrainMaps() (int, error)

	// Brain map nodes
	CreateNode(n *BrainMapNode) error
	GetNode(id string) (*BrainMapNode, error)
	UpdateNode(n *BrainMapNode) error
	UpdateNodePosition(id string, x, y float64, updatedAt string) error
	UpdateNodeLayer(id string, layer int, updatedAt string) error
	DeleteNode(id string) error
	ListNodes(mapID string) ([]*BrainMapNode, error)
	CountNodes() (int, error)

	// Brain map connections
	CreateConnection(c *BrainMapConnection) error
	GetConnection(id string) (*BrainMapConnection, error)
	DeleteConnection(id string) error
	ListConnections(mapID string) ([]*BrainMapConnection, error)
	CountConnections() (int, error)

	// Settings
	GetSetting(key string) (*string, error)
	SetSetting(key, value string) error

	// Export/Import (JSON backup)
	Export() ([]byte, error)
	Import(data []byte) error

	// Lifecycle
	Close() error
}

// Compile-time interface check
var _ Storer = (*SQLiteStore)(nil)
