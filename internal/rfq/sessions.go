package rfq

import (
	"context"
	"fmt"

	"labequip/storefront/internal/domain"
)

// ChangeHook observes a session cart after it has been changed and saved
type ChangeHook func(sessionID string, items []domain.LineItem)

// Sessions applies cart operations to the cart of one visitor session
type Sessions struct {
	store SessionStore
	hooks []ChangeHook
}

func NewSessions(store SessionStore, hooks ...ChangeHook) *Sessions {
	return &Sessions{store: store, hooks: hooks}
}

// Items returns the current contents of the session's cart
func (s *Sessions) Items(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.Items(), nil
}

// Contains reports whether the session's cart lists the given item ID
func (s *Sessions) Contains(ctx context.Context, sessionID, id string) (bool, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return cart.Contains(id), nil
}

// Add puts item on the session's cart and reports whether the cart changed
func (s *Sessions) Add(ctx context.Context, sessionID string, item domain.LineItem) ([]domain.LineItem, bool, error) {
	return s.update(ctx, sessionID, func(c *Cart) bool { return c.Add(item) })
}

func (s *Sessions) Remove(ctx context.Context, sessionID, id string) ([]domain.LineItem, error) {
	items, _, err := s.update(ctx, sessionID, func(c *Cart) bool { return c.Remove(id) })
	return items, err
}

func (s *Sessions) Clear(ctx context.Context, sessionID string) error {
	_, _, err := s.update(ctx, sessionID, func(c *Cart) bool {
		if c.Count() == 0 {
			return false
		}
		c.Clear()
		return true
	})
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// update runs fn against the session cart and saves it only if fn reports a change
func (s *Sessions) update(ctx context.Context, sessionID string, fn func(*Cart) bool) ([]domain.LineItem, bool, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	if !fn(cart) {
		return cart.Items(), false, nil
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, false, err
	}

	items := cart.Items()
	for _, hook := range s.hooks {
		hook(sessionID, items)
	}
	return items, true, nil
}

// End drops the session and its cart
func (s *Sessions) End(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}
