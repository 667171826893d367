package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cadview/internal/mesh"
)

type change struct {
	selected, unselected []mesh.ShapeID
}

func record(s *Selection) *[]change {
	var got []change
	s.OnChange(func(sel, unsel []mesh.ShapeID) {
		got = append(got, change{sel, unsel})
	})
	return &got
}

func TestSelectReplaces(t *testing.T) {
	var s Selection
	got := record(&s)
	s.Select([]mesh.ShapeID{1, 2}, false)
	s.Select([]mesh.ShapeID{2, 3}, false)

	assert.Equal(t, []mesh.ShapeID{2, 3}, s.Selected())
	assert.Len(t, *got, 2)
	assert.Equal(t, []mesh.ShapeID{1}, (*got)[1].unselected)
}

func TestSelectToggle(t *testing.T) {
	var s Selection
	got := record(&s)
	s.Select([]mesh.ShapeID{1, 2}, true)
	s.Select([]mesh.ShapeID{2, 3}, true)

	assert.Equal(t, []mesh.ShapeID{1, 3}, s.Selected())
	assert.True(t, s.IsSelected(3))
	assert.False(t, s.IsSelected(2))
	assert.Equal(t, []mesh.ShapeID{2}, (*got)[1].unselected)
}

func TestDeselectAndClear(t *testing.T) {
	var s Selection
	s.Select([]mesh.ShapeID{1, 2, 3}, false)
	got := record(&s)

	s.Deselect([]mesh.ShapeID{2, 9})
	assert.Equal(t, []mesh.ShapeID{1, 3}, s.Selected())
	assert.Equal(t, []mesh.ShapeID{2}, (*got)[0].unselected)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, []mesh.ShapeID{1, 3}, (*got)[1].unselected)
	assert.Empty(t, (*got)[1].selected)
}

func TestSelectedIsCopy(t *testing.T) {
	var s Selection
	s.Select([]mesh.ShapeID{1}, false)
	ids := s.Selected()
	ids[0] = 7
	assert.True(t, s.IsSelected(1))
}
