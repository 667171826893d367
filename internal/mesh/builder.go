package mesh

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Builder accumulates the geometry of many shapes, one group per shape,
// and produces a Record. Calls are expected in the order
//
//	NewGroup, AddPosition..., EndGroup(shape)
//
// repeated per shape, then Build once. The first out-of-order call puts the
// builder in a failed state: later calls are ignored and Build returns the
// error. A builder cannot be reused after Build.
//
// Builders are not safe for concurrent use.
type Builder interface {
	// SetColor replaces the uniform color.
	SetColor(c colorful.Color)
	// AddColor appends one vertex color to the per-vertex buffer.
	AddColor(r, g, b float32)
	NewGroup()
	EndGroup(shape ShapeID)
	AddPosition(x, y, z float32)
	Build() (Record, error)
	// Err returns the first error the builder ran into.
	Err() error
}

// accumulator is the state shared by every builder.
type accumulator struct {
	positions   []float32
	groups      GroupIndex
	color       *colorful.Color
	vertexColor []float32

	open  bool
	built bool
	err   error
}

func (a *accumulator) Err() error { return a.err }

func (a *accumulator) fail(op string, err error) {
	if a.err == nil {
		a.err = fmt.Errorf("%s: %w", op, err)
	}
}

// usable reports whether the builder still accepts calls.
func (a *accumulator) usable(op string) bool {
	if a.err != nil {
		return false
	}
	if a.built {
		a.fail(op, ErrBuilt)
		return false
	}
	return true
}

func (a *accumulator) SetColor(c colorful.Color) {
	if !a.usable("SetColor") {
		return
	}
	a.color = &c
}

func (a *accumulator) AddColor(r, g, b float32) {
	if !a.usable("AddColor") {
		return
	}
	a.vertexColor = append(a.vertexColor, r, g, b)
}

func (a *accumulator) beginGroup() bool {
	if !a.usable("NewGroup") {
		return false
	}
	if a.open {
		a.fail("NewGroup", ErrGroupOpen)
		return false
	}
	a.open = true
	return true
}

// requireGroup guards accumulation calls.
func (a *accumulator) requireGroup(op string) bool {
	if !a.usable(op) {
		return false
	}
	if !a.open {
		a.fail(op, ErrNoGroup)
		return false
	}
	return true
}

func (a *accumulator) endGroup(start, count int, shape ShapeID) {
	a.groups = append(a.groups, Group{Start: start, Count: count, Shape: shape})
	a.open = false
}

// finish resolves the color and hands the buffers over to the caller.
func (a *accumulator) finish() (base, error) {
	if !a.usable("Build") {
		return base{}, a.err
	}
	if a.open {
		a.fail("Build", ErrGroupOpen)
		return base{}, a.err
	}
	b := base{
		positions: a.positions,
		groups:    a.groups,
		color:     ResolveColor(a.color, a.vertexColor, len(a.positions)),
	}
	a.positions, a.groups, a.color, a.vertexColor = nil, nil, nil, nil
	a.built = true
	return b, nil
}
