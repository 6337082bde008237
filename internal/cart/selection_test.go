package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testItems() []*CartItem {
	return []*CartItem{
		{ID: "item-1", ProductName: "A", Price: 1000, Quantity: 1},
		{ID: "item-2", ProductName: "B", Price: 2000, Quantity: 2},
		{ID: "item-3", ProductName: "C", Price: 3000, Quantity: 1},
	}
}

func TestDefaultSelection(t *testing.T) {
	items := testItems()

	s := DefaultSelection(items)
	assert.Equal(t, len(items), s.Len())
	for _, it := range items {
		assert.True(t, s.IsSelected(it.ID))
	}
}

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection("item-1")

	t.Run("SelectOn", func(t *testing.T) {
		s.Toggle("item-2", true)
		assert.True(t, s.IsSelected("item-2"))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("Idempotent", func(t *testing.T) {
		s.Toggle("item-2", true)
		assert.Equal(t, 2, s.Len())

		s.Toggle("item-9", false) // not selected, no-op
		assert.Equal(t, 2, s.Len())
	})

	t.Run("SelectOff", func(t *testing.T) {
		s.Toggle("item-1", false)
		assert.False(t, s.IsSelected("item-1"))
		assert.Equal(t, 1, s.Len())
	})
}

func TestSelection_SelectAllAndClear(t *testing.T) {
	s := NewSelection("stale-id")

	s.SelectAll([]string{"item-1", "item-2"})
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsSelected("stale-id"))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.IDs())
}

func TestSelection_IDs_StableOrder(t *testing.T) {
	s := NewSelection("b", "c", "a")
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestSelection_SelectedItems(t *testing.T) {
	items := testItems()

	t.Run("PreservesCartOrder", func(t *testing.T) {
		s := NewSelection("item-3", "item-1")
		got := s.SelectedItems(items)
		assert.Len(t, got, 2)
		assert.Equal(t, "item-1", got[0].ID)
		assert.Equal(t, "item-3", got[1].ID)
	})

	t.Run("DropsUnknownIDs", func(t *testing.T) {
		s := NewSelection("item-2", "deleted-item")
		got := s.SelectedItems(items)
		assert.Len(t, got, 1)
		assert.Equal(t, "item-2", got[0].ID)
	})

	t.Run("EmptySelection", func(t *testing.T) {
		s := NewSelection()
		assert.Empty(t, s.SelectedItems(items))
	})
}

func TestSelection_IsStale(t *testing.T) {
	items := testItems()

	t.Run("FreshSelection", func(t *testing.T) {
		s := NewSelection("item-1", "item-2")
		assert.False(t, s.IsStale(items))
	})

	t.Run("RemovedItem", func(t *testing.T) {
		s := NewSelection("item-1", "deleted-item")
		assert.True(t, s.IsStale(items))
	})

	t.Run("EmptyIsNeverStale", func(t *testing.T) {
		s := NewSelection()
		assert.False(t, s.IsStale(items))
	})
}

func TestCartItem_LineTotal(t *testing.T) {
	it := &CartItem{Price: 15000, Quantity: 3}
	assert.Equal(t, int64(45000), it.LineTotal())
}
