// Package indicator implements the per-container load state shown next to a
// list, the popup image and the empty favorites tab.
package indicator

// State is the indicator lifecycle position.
type State int

const (
	Idle State = iota
	Pending
	Success
	Error
	Empty
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	case Empty:
		return "empty"
	default:
		return "idle"
	}
}

// Icon identifies the visual asset paired with a message.
type Icon int

const (
	IconPending Icon = iota
	IconError
	IconEmpty
)

// Message is the block shown in place of the spinner.
type Message struct {
	Icon        Icon
	Title       string
	Description string
}

// LoadFailed is shown when a fetch or image load fails.
var LoadFailed = Message{
	Icon:        IconError,
	Title:       "Server is not responding",
	Description: "Already working on it",
}

// FavoritesEmpty is shown when the favorites tab has nothing to display.
var FavoritesEmpty = Message{
	Icon:        IconEmpty,
	Title:       "Favorites list is empty",
	Description: "Add images by pressing the stars",
}

// Indicator is the pending/error/success state machine of one container.
// The zero value is Idle.
type Indicator struct {
	state    State
	spinner  bool
	message  *Message
	failures int
}

// New returns an Idle indicator.
func New() *Indicator {
	return &Indicator{}
}

// State returns the current state.
func (i *Indicator) State() State {
	return i.state
}

// Spinning reports whether the pending spinner is present.
func (i *Indicator) Spinning() bool {
	return i.spinner
}

// Message returns the visible message block, if any.
func (i *Indicator) Message() (Message, bool) {
	if i.message == nil {
		return Message{}, false
	}
	return *i.message, true
}

// Failures counts Fail calls since the last Start.
func (i *Indicator) Failures() int {
	return i.failures
}

// Visible reports whether the indicator block takes up space.
func (i *Indicator) Visible() bool {
	return i.spinner || i.message != nil
}

// Start moves to Pending, inserting the spinner and dropping any stale message.
func (i *Indicator) Start() {
	i.state = Pending
	i.spinner = true
	i.message = nil
	i.failures = 0
}

// Succeed moves to Success and clears the block.
func (i *Indicator) Succeed() {
	i.state = Success
	i.spinner = false
	i.message = nil
}

// Fail moves to Error and shows msg. Repeated failures before the next Start
// re-show the existing block instead of stacking another one.
func (i *Indicator) Fail(msg Message) {
	i.state = Error
	i.spinner = false
	i.failures++
	if i.message != nil && i.message.Icon == IconError {
		return
	}
	m := msg
	i.message = &m
}

// ShowEmpty shows msg directly, bypassing Pending.
func (i *Indicator) ShowEmpty(msg Message) {
	i.state = Empty
	i.spinner = false
	m := msg
	i.message = &m
}

// Hide clears the block and returns to Idle.
func (i *Indicator) Hide() {
	i.state = Idle
	i.spinner = false
	i.message = nil
}
