package draw

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
)

var (
	ErrInvalidView    = errors.New("invalid map view")
	ErrClosed         = errors.New("map closed")
	ErrNoSession      = errors.New("no drawing in progress")
	ErrTooFewVertices = errors.New("too few vertices")
)

// Kind is the geometry a draw session captures.
type Kind int

const (
	LineString Kind = iota
	Polygon
)

func (k Kind) String() string {
	switch k {
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MinVertices is the vertex count needed before a session can finish.
func (k Kind) MinVertices() int {
	if k == Polygon {
		return 3
	}
	return 1
}

// Result is delivered once when a session finishes. Coords are [lon, lat].
type Result struct {
	Session uint64
	Kind    Kind
	Coords  []orb.Point
}

// Session is one armed drawing interaction.
type Session struct {
	id       uint64
	kind     Kind
	vertices []orb.Point // projected
	done     func(Result)
}

func (s *Session) ID() uint64 { return s.id }
func (s *Session) Kind() Kind { return s.kind }
func (s *Session) Len() int { return len(s.vertices) }

// Vertices returns the projected vertices captured so far.
func (s *Session) Vertices() []orb.Point {
	return append([]orb.Point(nil), s.vertices...)
}

// Options configures a new map.
type Options struct {
	Center orb.Point // [lon, lat]
	Zoom   float64
	Logger *slog.Logger
}

// Map is the drawing surface: a viewport plus at most one armed draw session.
type Map struct {
	Viewport

	active *Session
	nextID uint64
	closed bool
	log    *slog.Logger
}

// NewMap validates the initial view and returns a ready map.
func NewMap(o Options) (*Map, error) {
	lon, lat := o.Center.Lon(), o.Center.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) || lon < -180 || lon > 180 || lat < -MaxLatitude || lat > MaxLatitude {
		return nil, fmt.Errorf("center %v: %w", o.Center, ErrInvalidView)
	}
	if math.IsNaN(o.Zoom) || o.Zoom < MinZoom || o.Zoom > MaxZoom {
		return nil, fmt.Errorf("zoom %v: %w", o.Zoom, ErrInvalidView)
	}
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Map{Viewport: newViewport(o.Center, o.Zoom), log: log}, nil
}

// BeginDraw arms a new session. Any armed session is removed first, so its
// completion callback will never run.
func (m *Map) BeginDraw(kind Kind, onComplete func(Result)) (*Session, error) {
	if m.closed {
		return nil, ErrClosed
	}
	m.RemoveInteraction()
	m.nextID++
	m.active = &Session{id: m.nextID, kind: kind, done: onComplete}
	m.log.Debug("draw armed", "session", m.nextID, "kind", kind)
	return m.active, nil
}

// RemoveInteraction cancels the armed session, if any.
func (m *Map) RemoveInteraction() {
	if m.active == nil {
		return
	}
	m.log.Debug("draw removed", "session", m.active.id, "vertices", len(m.active.vertices))
	m.active = nil
}

// Active returns the armed session or nil.
func (m *Map) Active() *Session { return m.active }

// AddVertex appends a projected vertex to the armed session.
func (m *Map) AddVertex(p orb.Point) error {
	if m.active == nil {
		return ErrNoSession
	}
	m.active.vertices = append(m.active.vertices, p)
	return nil
}

// UndoVertex drops the last captured vertex.
func (m *Map) UndoVertex() error {
	if m.active == nil {
		return ErrNoSession
	}
	if n := len(m.active.vertices); n > 0 {
		m.active.vertices = m.active.vertices[:n-1]
	}
	return nil
}

// Finish completes the armed session and runs its callback exactly once. With
// too few vertices the session stays armed.
func (m *Map) Finish() error {
	s := m.active
	if s == nil {
		return ErrNoSession
	}
	if len(s.vertices) < s.kind.MinVertices() {
		return fmt.Errorf("%s needs %d, has %d: %w", s.kind, s.kind.MinVertices(), len(s.vertices), ErrTooFewVertices)
	}
	// disarm before the callback so it may begin the next session
	m.active = nil
	res := Result{Session: s.id, Kind: s.kind, Coords: toGeographic(s.vertices)}
	m.log.Debug("draw finished", "session", s.id, "kind", s.kind, "vertices", len(res.Coords))
	if s.done != nil {
		s.done(res)
	}
	return nil
}

// Close tears the map down; no further sessions can be armed.
func (m *Map) Close() {
	m.RemoveInteraction()
	m.closed = true
}
