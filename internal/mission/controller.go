package mission

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"

	"missionmap/internal/draw"
)

var ErrInvalidTransition = errors.New("invalid transition")

// State is the modal shown over the map.
type State int

const (
	Idle State = iota
	Instructions
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Instructions:
		return "instructions"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Canvas is the drawing surface the controller arms captures on. BeginDraw must
// drop any previously armed capture.
type Canvas interface {
	BeginDraw(kind draw.Kind, onComplete func(draw.Result)) (*draw.Session, error)
	RemoveInteraction()
}

type insertion struct {
	index int
	pos   Position
}

// Controller turns user actions and finished drawings into route edits and
// modal changes. It is owned by a single UI loop.
type Controller struct {
	route  *Route
	canvas Canvas
	log    *slog.Logger

	state   State
	menu    int // -1 when no action menu is open
	pending *insertion
	capture draw.Kind
	arming  bool
}

func NewController(route *Route, canvas Canvas, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{route: route, canvas: canvas, log: log, state: Instructions, menu: -1}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Route() *Route { return c.route }

// Capturing reports whether a drawing is armed and which kind.
func (c *Controller) Capturing() (draw.Kind, bool) { return c.capture, c.arming }

// Pending returns the waypoint index and side the armed polygon will be inserted at.
func (c *Controller) Pending() (int, Position, bool) {
	if c.pending == nil {
		return 0, Before, false
	}
	return c.pending.index, c.pending.pos, true
}

// MenuIndex returns the row whose action menu is open.
func (c *Controller) MenuIndex() (int, bool) { return c.menu, c.menu >= 0 }

// ToggleMenu opens the action menu on row i, closing any other; toggling the
// open row closes it.
func (c *Controller) ToggleMenu(i int) {
	if c.menu == i {
		c.menu = -1
		return
	}
	c.menu = i
}

func (c *Controller) CloseMenu() { c.menu = -1 }

// StartMission leaves the instructions and arms line drawing.
func (c *Controller) StartMission() error {
	if err := c.expect("start mission", Instructions); err != nil {
		return err
	}
	return c.armLine()
}

// Dismiss closes the instructions without drawing.
func (c *Controller) Dismiss() error {
	if err := c.expect("dismiss", Instructions); err != nil {
		return err
	}
	c.transition(Idle)
	return nil
}

// Regenerate closes the mission table and arms a fresh line drawing.
func (c *Controller) Regenerate() error {
	if err := c.expect("regenerate", Editing); err != nil {
		return err
	}
	return c.armLine()
}

// Close dismisses the mission table; like Regenerate it re-arms line drawing.
func (c *Controller) Close() error { return c.Regenerate() }

// InsertPolygon arms a polygon drawing that will be spliced in before waypoint i.
func (c *Controller) InsertPolygon(i int) error {
	if err := c.expect("insert polygon", Editing); err != nil {
		return err
	}
	if i < 0 || i >= c.route.Len() {
		return fmt.Errorf("insert polygon at %d (%d waypoints): %w", i, c.route.Len(), ErrIndexOutOfRange)
	}
	ins := &insertion{index: i, pos: Before}
	if err := c.arm(draw.Polygon, func(r draw.Result) { c.polygonDone(ins, r) }); err != nil {
		return err
	}
	c.pending = ins
	c.CloseMenu()
	c.transition(Idle)
	return nil
}

// CancelCapture drops the armed drawing and returns to the table when there is
// a route to show, otherwise to the instructions.
func (c *Controller) CancelCapture() error {
	if !c.arming {
		return fmt.Errorf("cancel: nothing armed: %w", ErrInvalidTransition)
	}
	c.canvas.RemoveInteraction()
	c.disarm()
	if c.route.Len() > 0 {
		c.transition(Editing)
	} else {
		c.transition(Instructions)
	}
	return nil
}

// Reopen shows the instructions again from an idle map.
func (c *Controller) Reopen() error {
	if err := c.expect("reopen", Idle); err != nil {
		return err
	}
	if c.arming {
		return fmt.Errorf("reopen: drawing in progress: %w", ErrInvalidTransition)
	}
	c.transition(Instructions)
	return nil
}

// Load replaces the route with an imported line and shows the table.
func (c *Controller) Load(coords []orb.Point) {
	if c.arming {
		c.canvas.RemoveInteraction()
		c.disarm()
	}
	c.route.SetLineWaypoints(coords)
	c.CloseMenu()
	c.transition(Editing)
}

func (c *Controller) armLine() error {
	if err := c.arm(draw.LineString, c.lineDone); err != nil {
		return err
	}
	c.pending = nil
	c.CloseMenu()
	c.transition(Idle)
	return nil
}

func (c *Controller) arm(kind draw.Kind, done func(draw.Result)) error {
	if _, err := c.canvas.BeginDraw(kind, done); err != nil {
		return fmt.Errorf("begin %s drawing: %w", kind, err)
	}
	c.capture, c.arming = kind, true
	return nil
}

func (c *Controller) disarm() {
	c.arming = false
	c.pending = nil
}

func (c *Controller) lineDone(r draw.Result) {
	c.disarm()
	c.route.SetLineWaypoints(r.Coords)
	c.log.Info("route drawn", "waypoints", len(r.Coords), "km", c.route.TotalKm())
	c.transition(Editing)
}

func (c *Controller) polygonDone(ins *insertion, r draw.Result) {
	c.disarm()
	if err := c.route.InsertPolygonAt(ins.index, ins.pos, r.Coords); err != nil {
		c.log.Warn("polygon dropped", "err", err)
	} else {
		c.log.Info("polygon inserted", "index", ins.index, "position", ins.pos, "vertices", len(r.Coords))
	}
	c.transition(Editing)
}

func (c *Controller) expect(op string, want State) error {
	if c.state != want {
		return fmt.Errorf("%s from %s: %w", op, c.state, ErrInvalidTransition)
	}
	return nil
}

func (c *Controller) transition(to State) {
	if c.state != to {
		c.log.Debug("modal", "from", c.state, "to", to)
	}
	c.state = to
}
