package winstate

// State is the lifecycle state of a window panel.
type State int

const (
	// StateOpen is the initial state and the only interactive one.
	StateOpen State = iota
	// StateMinimizing is the transient state between Open and Minimized.
	StateMinimizing
	// StateMinimized means the window is hidden and shown in the taskbar.
	StateMinimized
	// StateRestoring is the transient state between Minimized and Open.
	StateRestoring
	// StateClosing is the transient state between Open and Closed.
	StateClosing
	// StateClosed means the window is hidden and only reachable from the start button.
	StateClosed
	// StateReopening is the transient state between Closed and Open.
	StateReopening
)

// String returns a string representation of the window state.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateMinimizing:
		return "minimizing"
	case StateMinimized:
		return "minimized"
	case StateRestoring:
		return "restoring"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	case StateReopening:
		return "reopening"
	default:
		return "unknown"
	}
}

// Transient reports whether the state is a locked animation state.
func (s State) Transient() bool {
	switch s {
	case StateMinimizing, StateRestoring, StateClosing, StateReopening:
		return true
	}
	return false
}

// Event drives a window from one state to the next.
type Event int

const (
	EventMinimize Event = iota
	EventMinimizeDone
	EventRestore
	EventRestoreDone
	EventClose
	EventCloseDone
	EventReopen
	EventReopenDone
)

// String returns a string representation of the event.
func (e Event) String() string {
	switch e {
	case EventMinimize:
		return "minimize"
	case EventMinimizeDone:
		return "minimize-done"
	case EventRestore:
		return "restore"
	case EventRestoreDone:
		return "restore-done"
	case EventClose:
		return "close"
	case EventCloseDone:
		return "close-done"
	case EventReopen:
		return "reopen"
	case EventReopenDone:
		return "reopen-done"
	default:
		return "unknown"
	}
}

type edge struct {
	from State
	on   Event
}

var transitions = map[edge]State{
	{StateOpen, EventMinimize}:           StateMinimizing,
	{StateMinimizing, EventMinimizeDone}: StateMinimized,
	{StateMinimized, EventRestore}:       StateRestoring,
	{StateRestoring, EventRestoreDone}:   StateOpen,
	{StateOpen, EventClose}:              StateClosing,
	{StateClosing, EventCloseDone}:       StateClosed,
	{StateClosed, EventReopen}:           StateReopening,
	{StateReopening, EventReopenDone}:    StateOpen,
}

// Transition returns the state reached from s on e. The boolean is false
// when e is not accepted in s; callers drop such requests.
func Transition(s State, e Event) (State, bool) {
	next, ok := transitions[edge{s, e}]
	if !ok {
		return s, false
	}
	return next, true
}
