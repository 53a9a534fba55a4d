package tileset

import "fmt"

// Progress is a consistent snapshot of a detector run. Snapshots are
// published once per batch, so every field describes the same moment.
type Progress struct {
	State      State
	Processed  int
	Total      int
	Unique     int
	Percentage float64 // in [0, 1]
}

// String formats the snapshot for logs.
func (p Progress) String() string {
	return fmt.Sprintf("%s %d/%d tiles (%.1f%%), %d unique",
		p.State, p.Processed, p.Total, p.Percentage*100, p.Unique)
}
