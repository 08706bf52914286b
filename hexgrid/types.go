package hexgrid

import "fmt"

// Direction is one of the six headings on the grid, numbered clockwise.
type Direction int

const (
	// NorthEast points up and to the right.
	NorthEast Direction = iota
	// East points right.
	East
	// SouthEast points down and to the right.
	SouthEast
	// SouthWest points down and to the left.
	SouthWest
	// West points left.
	West
	// NorthWest points up and to the left.
	NorthWest

	numDirections = 6
)

var directionNames = [numDirections]string{
	"NORTH_EAST", "EAST", "SOUTH_EAST", "SOUTH_WEST", "WEST", "NORTH_WEST",
}

// directionOffsets is the axial step for each Direction, indexed by ordinal.
var directionOffsets = [numDirections]Coord{
	{Q: 1, R: -1}, // NorthEast
	{Q: 1, R: 0},  // East
	{Q: 0, R: 1},  // SouthEast
	{Q: -1, R: 1}, // SouthWest
	{Q: -1, R: 0}, // West
	{Q: 0, R: -1}, // NorthWest
}

// Valid reports whether d is one of the six headings.
func (d Direction) Valid() bool {
	return d >= 0 && d < numDirections
}

// String returns the upper-snake name of d, e.g. "SOUTH_EAST".
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("hexgrid: unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Angle is a turn relative to the current heading. Every Angle has a fixed
// rotation (in clockwise sixths) and a fixed arithmetic rule.
type Angle byte

const (
	// Forward keeps the heading and adds 1.
	Forward Angle = 'w'
	// Left turns 60° counter-clockwise and adds 5.
	Left Angle = 'q'
	// Right turns 60° clockwise and adds 10.
	Right Angle = 'e'
	// LeftBack turns 120° counter-clockwise and doubles.
	LeftBack Angle = 'a'
	// RightBack turns 120° clockwise and halves.
	RightBack Angle = 'd'
)

// Angles lists every valid Angle in signature-character order.
var Angles = []Angle{Forward, Left, Right, LeftBack, RightBack}

// rotation returns the clockwise sixths an Angle turns by, or -1 when a is
// not a valid Angle.
func (a Angle) rotation() int {
	switch a {
	case Forward:
		return 0
	case Right:
		return 1
	case RightBack:
		return 2
	case LeftBack:
		return 4
	case Left:
		return 5
	}
	return -1
}

// Valid reports whether a is one of the five angles.
func (a Angle) Valid() bool { return a.rotation() >= 0 }

// String returns the signature character of a.
func (a Angle) String() string { return string(rune(a)) }

// Apply returns v transformed by the arithmetic rule of a.
// Invalid angles leave v unchanged.
func (a Angle) Apply(v float64) float64 {
	switch a {
	case Forward:
		return v + 1
	case Left:
		return v + 5
	case Right:
		return v + 10
	case LeftBack:
		return v * 2
	case RightBack:
		return v / 2
	}
	return v
}

// ParseAngle converts a signature character into an Angle.
func ParseAngle(c byte) (Angle, error) {
	a := Angle(c)
	if !a.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAngle, c)
	}
	return a, nil
}

// ParseAngles converts a whole signature, reporting the first bad position.
func ParseAngles(s string) ([]Angle, error) {
	out := make([]Angle, len(s))
	for i := 0; i < len(s); i++ {
		a, err := ParseAngle(s[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out[i] = a
	}
	return out, nil
}

// Coord is an axial coordinate of a lattice point.
type Coord struct {
	Q, R int
}

// String formats c as "(q,r)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}
