package lineedit

// Event represents the result of handling a key press.
type Event struct {
	Consumed    bool // true if the scheme handled the key
	TextChanged bool // true if editor content was modified
	Submit      bool // true if user wants to submit (Enter)
	Cancel      bool // true if user wants to cancel/exit
}

// KeyScheme interprets key presses and translates them to editor actions.
type KeyScheme interface {
	// Name returns the scheme name for display/config.
	Name() string

	// HandleKey processes a key press and performs editor actions.
	// buf contains the raw bytes read, n is the number of bytes.
	// Returns an Event describing what happened.
	HandleKey(e *Editor, buf []byte, n int) Event
}
