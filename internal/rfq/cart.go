package rfq

import (
	"sync"

	"labequip/storefront/internal/domain"
)

// Cart is the ordered set of line items a visitor wants quoted, keyed by item ID.
// Re-adding an ID that is already present keeps the existing entry and its position.
type Cart struct {
	mu    sync.Mutex
	items []domain.LineItem
}

func NewCart(items ...domain.LineItem) *Cart {
	c := &Cart{}
	for _, item := range items {
		c.insert(item)
	}
	return c
}

// Add inserts item unless an entry with the same ID exists. It reports whether the cart changed.
// Items with an empty ID are ignored.
func (c *Cart) Add(item domain.LineItem) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insert(item)
}

// Remove deletes the entry with the given ID. Absent IDs are a no-op.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) Items() []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(id) >= 0
}

func (c *Cart) insert(item domain.LineItem) bool {
	if item.ID == "" || c.indexOf(item.ID) >= 0 {
		return false
	}
	c.items = append(c.items, item)
	return true
}

func (c *Cart) indexOf(id string) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
