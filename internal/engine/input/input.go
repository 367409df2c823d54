// Package input turns raw key and mouse state into fly camera commands.
// It knows nothing about the windowing backend; the viewer supplies a
// lookup for whether an action's key is held.
package input

// Action is a camera command bound to a key.
type Action int

const (
	ActionForward Action = iota
	ActionBack
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
)

// Actions lists every movement action.
var Actions = []Action{
	ActionForward, ActionBack, ActionLeft, ActionRight, ActionUp, ActionDown,
}

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBack:
		return "back"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	default:
		return "unknown"
	}
}

// Axes folds held actions into forward, right and up axis values in
// [-1, 1]. Opposing keys cancel.
func Axes(held func(Action) bool) (forward, right, up float32) {
	axis := func(pos, neg Action) float32 {
		var v float32
		if held(pos) {
			v++
		}
		if held(neg) {
			v--
		}
		return v
	}
	return axis(ActionForward, ActionBack),
		axis(ActionRight, ActionLeft),
		axis(ActionUp, ActionDown)
}

// Drag tracks a held mouse button and reports per-frame cursor deltas.
type Drag struct {
	active bool
	lastX  float32
	lastY  float32
}

// Update feeds the current cursor position and button state. The first
// frame of a drag yields no delta so the view does not jump.
func (d *Drag) Update(x, y float32, down bool) (dx, dy float32) {
	if !down {
		d.active = false
		return 0, 0
	}
	if d.active {
		dx, dy = x-d.lastX, y-d.lastY
	}
	d.active = true
	d.lastX, d.lastY = x, y
	return dx, dy
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}
