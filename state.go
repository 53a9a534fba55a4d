package tileset

// State is the lifecycle stage of a Detector.
//
//	Idle -> Initializing -> Scanning -> Complete
//	                     \          \-> Cancelled
//	                      \-> Failed
type State uint32

const (
	// StateIdle is the state of a detector that has not been run.
	StateIdle State = iota

	// StateInitializing is entered synchronously by Run while the tile
	// grid is computed.
	StateInitializing

	// StateScanning means the background scan is hashing tiles.
	StateScanning

	// StateComplete means every tile was processed.
	StateComplete

	// StateCancelled means the scan stopped early. Partial results remain
	// valid.
	StateCancelled

	// StateFailed means the scan stopped on an error; see Detector.Err.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInitializing:
		return "Initializing"
	case StateScanning:
		return "Scanning"
	case StateComplete:
		return "Complete"
	case StateCancelled:
		return "Cancelled"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Running reports whether s is Initializing or Scanning.
func (s State) Running() bool {
	return s == StateInitializing || s == StateScanning
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateCancelled || s == StateFailed
}
