package forms

// State carries the result of a failed form submission back to the caller.
// It is built fresh per attempt and never persisted.
type State struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

func NewState(message string, fieldErrors map[string][]string) State {
	return State{Errors: fieldErrors, Message: message}
}

func (s State) HasErrors() bool {
	return len(s.Errors) > 0
}
