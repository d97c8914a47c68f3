package editor

// State is the lifecycle position of an Editor.
//
//	Loading → NotFound | LoadError | Ready
//	Ready → Submitting → Navigating | Ready
//	any → Closed
type State int

const (
	StateLoading State = iota
	StateNotFound
	StateLoadError
	StateReady
	StateSubmitting
	StateNavigating
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNotFound:
		return "not_found"
	case StateLoadError:
		return "load_error"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateNavigating:
		return "navigating"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Terminal reports whether only a new Load can leave the state.
func (s State) Terminal() bool {
	switch s {
	case StateNotFound, StateLoadError, StateNavigating, StateClosed:
		return true
	default:
		return false
	}
}
