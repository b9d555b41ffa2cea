// Package flow implements the menu and game flow state machine with
// gesture-based, debounced menu selection.
package flow

import (
	"time"
)

// State identifies where the session is in the menu/game flow.
type State int

const (
	// StateMainMenu is the initial state: the menu is shown and
	// gesture selection is active.
	StateMainMenu State = iota
	// StatePlaying means the bubble game is running. There is no
	// transition back to the menu; a session ends from here.
	StatePlaying
	// StateExited is terminal: the user selected exit.
	StateExited
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StatePlaying:
		return "playing"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Menu action results understood by the controller. Any other action
// result leaves the state unchanged.
const (
	ActionStartGame = "start_game"
	ActionExit      = "exit"
)

// DefaultSelectionCooldown is the minimum time between two successful
// menu selections.
const DefaultSelectionCooldown = 1 * time.Second

// Default menu item box size in pixels.
const (
	DefaultItemWidth  = 200
	DefaultItemHeight = 50
)

// MenuItem is one selectable menu entry with an axis-aligned bounding
// box centered at (CenterX, CenterY).
type MenuItem struct {
	Label   string
	CenterX int
	CenterY int
	Width   int
	Height  int
	Hovered bool

	// Action runs when the item is selected and returns an action
	// result tag driving the state transition.
	Action func() string
}

// Contains reports whether the pixel position lies inside the item's box.
func (m *MenuItem) Contains(x, y int) bool {
	return x >= m.CenterX-m.Width/2 && x <= m.CenterX+m.Width/2 &&
		y >= m.CenterY-m.Height/2 && y <= m.CenterY+m.Height/2
}

// Controller owns the flow state, the menu items and the selection
// debounce clock. It is driven once per tick by the session loop and is
// not safe for concurrent use.
type Controller struct {
	state         State
	items         []*MenuItem
	cooldown      time.Duration
	lastSelection time.Time

	now func() time.Time
}

// NewController creates a Controller in the main menu state. A
// non-positive cooldown falls back to the default.
func NewController(cooldown time.Duration) *Controller {
	if cooldown <= 0 {
		cooldown = DefaultSelectionCooldown
	}
	return &Controller{
		state:    StateMainMenu,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// AddItem registers a menu item at the given center position with the
// default box size. Hit-testing honors registration order.
func (c *Controller) AddItem(label string, centerX, centerY int, action func() string) {
	c.items = append(c.items, &MenuItem{
		Label:   label,
		CenterX: centerX,
		CenterY: centerY,
		Width:   DefaultItemWidth,
		Height:  DefaultItemHeight,
		Action:  action,
	})
}

// State returns the current flow state.
func (c *Controller) State() State {
	return c.state
}

// Items returns the registered menu items for renderers.
func (c *Controller) Items() []*MenuItem {
	return c.items
}

// HoveredItem returns the currently hovered item, or nil.
func (c *Controller) HoveredItem() *MenuItem {
	for _, item := range c.items {
		if item.Hovered {
			return item
		}
	}
	return nil
}

// UpdateHover marks the first registered item containing the pointer
// pixel position as hovered. At most one item is hovered at a time;
// first match wins.
func (c *Controller) UpdateHover(pointerX, pointerY int) {
	matched := false
	for _, item := range c.items {
		if !matched && item.Contains(pointerX, pointerY) {
			item.Hovered = true
			matched = true
			continue
		}
		item.Hovered = false
	}
}

// Tick processes one frame of menu input while in the main menu:
// it refreshes hover state and, when the closed-hand gesture is active,
// attempts a selection. A selection only fires when the pointer lies
// inside some item's box and the cooldown since the last successful
// selection has elapsed; on fire the item's action runs, the cooldown
// clock resets and the state transitions per the action result.
// Outside the main menu Tick is a no-op.
func (c *Controller) Tick(pointerX, pointerY int, isClosed bool) {
	if c.state != StateMainMenu {
		return
	}

	c.UpdateHover(pointerX, pointerY)

	if !isClosed {
		return
	}

	now := c.now()
	if now.Sub(c.lastSelection) < c.cooldown {
		return
	}

	for _, item := range c.items {
		if !item.Contains(pointerX, pointerY) {
			continue
		}

		c.lastSelection = now

		result := ""
		if item.Action != nil {
			result = item.Action()
		}
		switch result {
		case ActionStartGame:
			c.state = StatePlaying
		case ActionExit:
			c.state = StateExited
		}
		return
	}
}

// Exit forces the controller into the terminal state, used when the
// session ends by external quit signal.
func (c *Controller) Exit() {
	c.state = StateExited
}
