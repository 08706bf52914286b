// Package hexgrid provides the geometry of the hex grid: headings, turns,
// lattice steps and undirected edge identities.
package hexgrid

// MaxCoord bounds |Q| and |R| of any coordinate that takes part in an edge.
// Each axis is biased into a 16-bit lane of the packed EdgeKey.
const MaxCoord = 1 << 14

// coordBias shifts [-MaxCoord, MaxCoord] into the unsigned 16-bit lane.
const coordBias = 1 << 15

// Turn returns the heading reached by turning d by a.
// Every (Direction, Angle) pair is defined; an invalid a leaves d unchanged.
// Complexity: O(1).
func (d Direction) Turn(a Angle) Direction {
	r := a.rotation()
	if r < 0 {
		return d
	}
	return Direction((int(d) + r) % numDirections)
}

// Delta returns the axial offset of one step in heading d.
// Complexity: O(1).
func (d Direction) Delta() Coord {
	if !d.Valid() {
		return Coord{}
	}
	return directionOffsets[d]
}

// Step returns the neighbour of c in heading d.
// Complexity: O(1).
func (c Coord) Step(d Direction) Coord {
	off := d.Delta()
	return Coord{Q: c.Q + off.Q, R: c.R + off.R}
}

// less orders coordinates by R, then Q.
func (c Coord) less(o Coord) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	return c.Q < o.Q
}

func (c Coord) inRange() bool {
	return c.Q >= -MaxCoord && c.Q <= MaxCoord && c.R >= -MaxCoord && c.R <= MaxCoord
}

// pack maps c onto 32 bits: biased Q in the high lane, biased R in the low lane.
func (c Coord) pack() uint64 {
	return uint64(uint16(c.Q+coordBias))<<16 | uint64(uint16(c.R+coordBias))
}

func unpack(v uint64) Coord {
	return Coord{
		Q: int(uint16(v>>16)) - coordBias,
		R: int(uint16(v)) - coordBias,
	}
}

// EdgeKey is the identity of an undirected edge between two lattice points.
// Keys of geometrically identical edges are equal regardless of direction.
type EdgeKey uint64

// MakeEdge returns the canonical key of the edge {a, b}.
// The smaller endpoint (by R, then Q) occupies the high 32 bits.
// Returns ErrOutOfRange if either endpoint lies beyond ±MaxCoord.
// Complexity: O(1).
func MakeEdge(a, b Coord) (EdgeKey, error) {
	if !a.inRange() || !b.inRange() {
		return 0, ErrOutOfRange
	}
	if b.less(a) {
		a, b = b, a
	}
	return EdgeKey(a.pack()<<32 | b.pack()), nil
}

// Endpoints unpacks k into its two endpoints, smaller first.
func (k EdgeKey) Endpoints() (Coord, Coord) {
	return unpack(uint64(k) >> 32), unpack(uint64(k) & 0xffffffff)
}
