// Package geom implements the point and bounding-region primitives used by
// the point-cloud index: Point, BBox, the per-axis child-direction enum,
// and the Climber that descends a subdivision tree one child at a time.
package geom

import "golang.org/x/exp/constraints"

func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Point is an ordered (x, y, z) triple. In 2D mode z is ignored by
// geometry; in 3D mode all three axes are used.
type Point struct {
	X, Y, Z float64
}

// Dir identifies one child quadrant (2D) or octant (3D) of a BBox. The
// low two bits select the horizontal split the same way a subset id's
// 2-bit groups do; the third bit, set only in 3D, selects up
// vs. down.
type Dir uint8

const (
	DirNwd Dir = iota // north-west, down/low-z
	DirNed            // north-east, down/low-z
	DirSwd            // south-west, down/low-z
	DirSed            // south-east, down/low-z
	DirNwu            // north-west, up/high-z (3D only)
	DirNeu            // north-east, up/high-z (3D only)
	DirSwu            // south-west, up/high-z (3D only)
	DirSeu            // south-east, up/high-z (3D only)
)

// DirFromBits decodes a 2D quadrant from two bits of a subset id:
// {nwd=0, ned=1, swd=2, sed=3}.
func DirFromBits(bits uint) Dir {
	switch bits & 0b11 {
	case 0:
		return DirNwd
	case 1:
		return DirNed
	case 2:
		return DirSwd
	default:
		return DirSed
	}
}

// BBox is an axis-aligned bounding region, 2D or 3D. Invariant: Min.i <=
// Max.i on every active axis.
type BBox struct {
	Min, Max Point
	Is3d     bool
}

// NewBBox2d constructs a 2D bbox, panicking if min/max are inverted.
func NewBBox2d(min, max Point) BBox {
	b := BBox{Min: min, Max: max, Is3d: false}
	b.checkInvariant()
	return b
}

// NewBBox3d constructs a 3D bbox, panicking if min/max are inverted.
func NewBBox3d(min, max Point) BBox {
	b := BBox{Min: min, Max: max, Is3d: true}
	b.checkInvariant()
	return b
}

func (b BBox) checkInvariant() {
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || (b.Is3d && b.Min.Z > b.Max.Z) {
		panic("geom: BBox invariant violated: min > max on an active axis")
	}
}

func (b BBox) mid() Point {
	m := Point{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
	}
	if b.Is3d {
		m.Z = (b.Min.Z + b.Max.Z) / 2
	}
	return m
}

// Volume returns width*height[*depth].
func (b BBox) Volume() float64 {
	v := (b.Max.X - b.Min.X) * (b.Max.Y - b.Min.Y)
	if b.Is3d {
		v *= b.Max.Z - b.Min.Z
	}
	return v
}

// GoNwd returns the north-west (low-z in 3D) child region.
func (b BBox) GoNwd() BBox { return b.child(DirNwd) }

// GoNed returns the north-east (low-z in 3D) child region.
func (b BBox) GoNed() BBox { return b.child(DirNed) }

// GoSwd returns the south-west (low-z in 3D) child region.
func (b BBox) GoSwd() BBox { return b.child(DirSwd) }

// GoSed returns the south-east (low-z in 3D) child region.
func (b BBox) GoSed() BBox { return b.child(DirSed) }

// Go descends into the child region named by dir. dir must be one of the
// four 2D directions unless b is 3D, in which case all eight are valid.
func (b BBox) Go(dir Dir) BBox {
	if dir >= DirNwu && !b.Is3d {
		panic("geom: 3D-only direction requested on a 2D bbox")
	}
	return b.child(dir)
}

func (b BBox) child(dir Dir) BBox {
	m := b.mid()
	out := b
	north := dir == DirNwd || dir == DirNed || dir == DirNwu || dir == DirNeu
	west := dir == DirNwd || dir == DirSwd || dir == DirNwu || dir == DirSwu
	low := dir < DirNwu

	if north {
		out.Min.Y = m.Y
	} else {
		out.Max.Y = m.Y
	}
	if west {
		out.Max.X = m.X
	} else {
		out.Min.X = m.X
	}
	if b.Is3d {
		if low {
			out.Max.Z = m.Z
		} else {
			out.Min.Z = m.Z
		}
	}
	return out
}

// Union returns the smallest bbox covering both b and other. Both must
// share the same dimensionality.
func (b BBox) Union(other BBox) BBox {
	if b.Is3d != other.Is3d {
		panic("geom: Union of bboxes with different dimensionality")
	}
	out := BBox{
		Min:  Point{X: minOf(b.Min.X, other.Min.X), Y: minOf(b.Min.Y, other.Min.Y)},
		Max:  Point{X: maxOf(b.Max.X, other.Max.X), Y: maxOf(b.Max.Y, other.Max.Y)},
		Is3d: b.Is3d,
	}
	if b.Is3d {
		out.Min.Z = minOf(b.Min.Z, other.Min.Z)
		out.Max.Z = maxOf(b.Max.Z, other.Max.Z)
	}
	return out
}

// Climber is a stateful walker descending a subdivision tree one child at
// a time from a starting bbox, tracking the current region only (no tree
// index bookkeeping — that lives in lib/pcidx). It is transient: built,
// walked, and discarded per query.
type Climber struct {
	cur BBox
}

// NewClimber starts a climber at the given whole-region bbox.
func NewClimber(whole BBox) *Climber {
	return &Climber{cur: whole}
}

// BBox returns the climber's current region.
func (c *Climber) BBox() BBox { return c.cur }

// Go descends one level into the named child direction and returns the
// climber for chaining.
func (c *Climber) Go(dir Dir) *Climber {
	c.cur = c.cur.Go(dir)
	return c
}
