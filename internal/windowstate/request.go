// Package windowstate resolves window-state arguments into a filter and a
// set of actions, walks the selected windows and either applies the actions
// or describes each window as JSON.
package windowstate

import "github.com/Norgate-AV/wintools/internal/interfaces"

// MaxHandles caps how many --handle filters one invocation may list.
const MaxHandles = 64

// FilterKind selects how target windows are found.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterForeground
	FilterDesktop
	FilterHandle
	FilterParent
)

func (k FilterKind) String() string {
	switch k {
	case FilterForeground:
		return "foreground"
	case FilterDesktop:
		return "desktop"
	case FilterHandle:
		return "handle"
	case FilterParent:
		return "parent"
	default:
		return "none"
	}
}

// Filter is the resolved target selection. Handles is only used by
// FilterHandle and Parent only by FilterParent.
type Filter struct {
	Kind    FilterKind
	Handles []interfaces.Handle
	Parent  interfaces.Handle
}

// BringToTop is the requested z-order change.
type BringToTop int

const (
	BringNone BringToTop = iota
	BringTop
	BringTopMost
)

// Actions is the order-independent set of requested mutations.
type Actions struct {
	SetForeground bool
	BringToTop    BringToTop

	Move bool
	X, Y int32

	Resize        bool
	Width, Height int32

	Show     bool
	Hide     bool
	Maximize bool
	Minimize bool
}

// Any reports whether at least one action was requested.
func (a Actions) Any() bool {
	return a.SetForeground || a.BringToTop != BringNone || a.Move || a.Resize ||
		a.Show || a.Hide || a.Maximize || a.Minimize
}

// ShowCommand combines the visibility actions into a single ShowWindow
// command. Hide wins over minimize, minimize over maximize, and maximize
// over show. Show together with minimize selects SW_SHOWMINIMIZED.
func (a Actions) ShowCommand() (int32, bool) {
	switch {
	case a.Hide:
		return SW_HIDE, true
	case a.Minimize && a.Show:
		return SW_SHOWMINIMIZED, true
	case a.Minimize:
		return SW_MINIMIZE, true
	case a.Maximize:
		return SW_SHOWMAXIMIZED, true
	case a.Show:
		return SW_SHOW, true
	default:
		return 0, false
	}
}

// PositionFlags returns the SetWindowPos flags for the move/resize request.
// The request never changes the z-order.
func (a Actions) PositionFlags() (uint32, bool) {
	if !a.Move && !a.Resize {
		return 0, false
	}

	flags := uint32(SWP_NOZORDER)
	if !a.Move {
		flags |= SWP_NOMOVE
	}

	if !a.Resize {
		flags |= SWP_NOSIZE
	}

	return flags, true
}

// Request is a fully parsed window-state invocation.
type Request struct {
	Filter  Filter
	Actions Actions

	// Strict aborts chain and foreground walks on the first failed action.
	Strict bool

	// Help is set when usage should be printed instead of running.
	// HelpExit is the exit code to use afterwards.
	Help     bool
	HelpExit int
}

// Query reports whether the request describes windows rather than changing them.
func (r Request) Query() bool {
	return !r.Actions.Any()
}
