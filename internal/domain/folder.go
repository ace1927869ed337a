package domain

// Folder is a node in a user's folder tree.
// Parent chains are always acyclic; the tree is never a general graph.
type Folder struct {
	ID     int64
	UserID int64

	// Name is the display name. Folders merge on (name, parent) within
	// one user's collection, so siblings with equal names are never minted
	// twice by an import.
	Name string

	// ParentID is nil for top-level folders.
	ParentID *int64

	Color string
	Icon  string

	// Position is an ordering hint among siblings.
	Position int
}

// Tag is a user-scoped label. Names are unique per user.
type Tag struct {
	ID       int64
	UserID   int64
	Name     string
	Color    string
	Position int
}
