// Package ids generates the opaque, type-prefixed identifiers used as
// primary keys across the store ("note_<uuid>", "node_<uuid>", ...).
package ids

import "github.com/google/uuid"

// Entity prefixes. The prefix makes an id self-describing in logs and
// backups; the suffix is a random UUIDv4.
const (
	Note       = "note"
	Folder     = "folder"
	Event      = "event"
	BrainMap   = "brainmap"
	Node       = "node"
	Connection = "conn"
)

// New returns a fresh identifier for the given prefix.
func New(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
