// ABOUTME: Pure reducer for the searchable list: search term, highlight, committed value
// ABOUTME: Every action yields a new State; invalid transitions return the input unchanged

package listbox

// State is the immutable list box state. Highlighted is -1 or an index
// into the list filtered by SearchTerm. When HasCommitted is true,
// Committed is the Value of an option in the full universe.
type State struct {
	Open         bool
	SearchTerm   string
	Highlighted  int
	Committed    string
	HasCommitted bool
	// ScrollOffset is the first filtered index shown in the viewport.
	ScrollOffset int
}

// Initial returns the closed, empty state.
func Initial() State {
	return State{Highlighted: -1}
}

// Env is the context the reducer reads but never changes.
type Env struct {
	Options []Option
	Filter  Filter
	// ViewHeight is the number of visible rows; 0 means unbounded.
	ViewHeight int
	// NoSearch turns typing into a no-op (plain dropdown menus).
	NoSearch bool
	// Controlled leaves Committed to the owner; commits only report.
	Controlled bool
}

// Visible returns the indexes into env.Options shown for s.
func (env Env) Visible(s State) []int {
	f := env.Filter
	if f == nil {
		f = SubstringFilter
	}
	return f(env.Options, s.SearchTerm)
}

// Direction is a keyboard navigation step.
type Direction int

const (
	Next Direction = iota
	Prev
	First
	Last
)

// Action is an input to Reduce.
type Action interface{ isAction() }

type (
	// OpenAction opens the list with an empty search and no highlight.
	OpenAction struct{}
	// TypeAction appends one rune to the search term.
	TypeAction struct{ Char rune }
	// BackspaceAction removes the last rune of the search term.
	BackspaceAction struct{}
	// NavigateAction moves the highlight with wraparound.
	NavigateAction struct{ Dir Direction }
	// CommitAction commits the highlighted option.
	CommitAction struct{}
	// EscapeAction closes without committing.
	EscapeAction struct{}
	// SelectAction highlights the option with Value and commits it.
	SelectAction struct{ Value string }
	// SetValueAction sets or clears the committed value from outside.
	SetValueAction struct {
		Value string
		Clear bool
	}
	// RetainAction re-derives the state after the option universe changed.
	// HighlightedValue is the value highlighted before the change.
	RetainAction struct {
		HighlightedValue string
		HadHighlight     bool
	}
)

func (OpenAction) isAction()      {}
func (TypeAction) isAction()      {}
func (BackspaceAction) isAction() {}
func (NavigateAction) isAction()  {}
func (CommitAction) isAction()    {}
func (EscapeAction) isAction()    {}
func (SelectAction) isAction()    {}
func (SetValueAction) isAction()  {}
func (RetainAction) isAction()    {}

// Effect reports side effects the caller must perform.
type Effect struct {
	// Commit is set when a commit succeeded; Value is the committed value.
	Commit bool
	Value  string
}

// Reduce applies a to s.
func Reduce(env Env, s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case OpenAction:
		if s.Open {
			return s, Effect{}
		}
		s.Open = true
		s.SearchTerm = ""
		s.Highlighted = -1
		s.ScrollOffset = 0
		return s, Effect{}

	case TypeAction:
		if !s.Open || env.NoSearch {
			return s, Effect{}
		}
		return refilter(env, s, s.SearchTerm+string(a.Char)), Effect{}

	case BackspaceAction:
		if !s.Open || env.NoSearch || s.SearchTerm == "" {
			return s, Effect{}
		}
		r := []rune(s.SearchTerm)
		return refilter(env, s, string(r[:len(r)-1])), Effect{}

	case NavigateAction:
		if !s.Open {
			return s, Effect{}
		}
		n := len(env.Visible(s))
		if n == 0 {
			return s, Effect{}
		}
		s.Highlighted = step(s.Highlighted, n, a.Dir)
		s.ScrollOffset = scrollIntoView(s.ScrollOffset, s.Highlighted, n, env.ViewHeight)
		return s, Effect{}

	case CommitAction:
		if !s.Open {
			return s, Effect{}
		}
		visible := env.Visible(s)
		if s.Highlighted < 0 || s.Highlighted >= len(visible) {
			return s, Effect{}
		}
		value := env.Options[visible[s.Highlighted]].Value
		if !env.Controlled {
			s.Committed = value
			s.HasCommitted = true
		}
		return closed(s), Effect{Commit: true, Value: value}

	case SelectAction:
		if !s.Open {
			return s, Effect{}
		}
		visible := env.Visible(s)
		for i, idx := range visible {
			if env.Options[idx].Value == a.Value {
				s.Highlighted = i
				return Reduce(env, s, CommitAction{})
			}
		}
		return s, Effect{}

	case EscapeAction:
		if !s.Open {
			return s, Effect{}
		}
		return closed(s), Effect{}

	case SetValueAction:
		if a.Clear {
			s.Committed = ""
			s.HasCommitted = false
			return s, Effect{}
		}
		for _, o := range env.Options {
			if o.Value == a.Value {
				s.Committed = a.Value
				s.HasCommitted = true
				break
			}
		}
		return s, Effect{}

	case RetainAction:
		if s.HasCommitted && !hasValue(env.Options, s.Committed) {
			s.Committed = ""
			s.HasCommitted = false
		}
		visible := env.Visible(s)
		s.Highlighted = -1
		if a.HadHighlight {
			s.Highlighted = indexOfValue(env.Options, visible, a.HighlightedValue)
		}
		s.ScrollOffset = scrollIntoView(s.ScrollOffset, s.Highlighted, len(visible), env.ViewHeight)
		return s, Effect{}
	}
	return s, Effect{}
}

// refilter swaps the search term and keeps the highlighted option if it
// is still visible; otherwise the highlight resets to -1.
func refilter(env Env, s State, term string) State {
	prev := env.Visible(s)
	var keep string
	had := s.Highlighted >= 0 && s.Highlighted < len(prev)
	if had {
		keep = env.Options[prev[s.Highlighted]].Value
	}

	s.SearchTerm = term
	next := env.Visible(s)
	s.Highlighted = -1
	if had {
		s.Highlighted = indexOfValue(env.Options, next, keep)
	}
	s.ScrollOffset = scrollIntoView(s.ScrollOffset, s.Highlighted, len(next), env.ViewHeight)
	return s
}

func closed(s State) State {
	s.Open = false
	s.SearchTerm = ""
	s.Highlighted = -1
	s.ScrollOffset = 0
	return s
}

func step(cur, n int, d Direction) int {
	switch d {
	case Prev:
		if cur <= 0 {
			return n - 1
		}
		return cur - 1
	case First:
		return 0
	case Last:
		return n - 1
	default:
		if cur >= n-1 {
			return 0
		}
		return cur + 1
	}
}

// scrollIntoView moves offset by the least amount that shows highlighted
// within a window of height rows, then clamps it to the list.
func scrollIntoView(offset, highlighted, n, height int) int {
	if height <= 0 {
		return 0
	}
	if highlighted >= 0 {
		if highlighted < offset {
			offset = highlighted
		}
		if highlighted >= offset+height {
			offset = highlighted - height + 1
		}
	}
	offset = min(offset, max(0, n-height))
	return max(0, offset)
}

func indexOfValue(options []Option, visible []int, value string) int {
	for i, idx := range visible {
		if options[idx].Value == value {
			return i
		}
	}
	return -1
}

func hasValue(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
