package service

import (
	"context"
	"errors"
	"fmt"

	"restaurant-ordering/order-svc/internal/domain"
	"restaurant-ordering/validation"
)

var (
	ErrNotInCart    = errors.New("item is not in the cart")
	ErrOutOfStock   = errors.New("menu item is out of stock")
	ErrUnknownItem  = errors.New("menu item does not exist")
	ErrMissingOwner = errors.New("cart owner is required")
)

type CartService struct {
	guests CartStore
	users  CartStore
	menu   MenuReader
}

func NewCartService(guests, users CartStore, menu MenuReader) *CartService {
	return &CartService{guests: guests, users: users, menu: menu}
}

func (s *CartService) store(owner domain.CartOwner) (CartStore, string, error) {
	if !owner.IsGuest() {
		return s.users, owner.UserID, nil
	}
	if owner.SessionID == "" {
		return nil, "", ErrMissingOwner
	}
	return s.guests, owner.SessionID, nil
}

func (s *CartService) load(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error) {
	store, key, err := s.store(owner)
	if err != nil {
		return nil, err
	}
	return store.Load(ctx, key)
}

func (s *CartService) save(ctx context.Context, owner domain.CartOwner, items []domain.CartItem) (domain.Cart, error) {
	store, key, err := s.store(owner)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(items) == 0 {
		err = store.Delete(ctx, key)
	} else {
		err = store.Save(ctx, key, items)
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return domain.NewCart(items), nil
}

func (s *CartService) Get(ctx context.Context, owner domain.CartOwner) (domain.Cart, error) {
	items, err := s.load(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.NewCart(items), nil
}

// Add prices the line from the live menu, so clients cannot choose their own price.
func (s *CartService) Add(ctx context.Context, owner domain.CartOwner, menuItemID, quantity int) (domain.Cart, error) {
	if menuItemID <= 0 {
		return domain.Cart{}, validation.Errors{"menu_item_id": "is required"}
	}
	snapshots, err := s.menu.MenuSnapshots(ctx, []int{menuItemID})
	if err != nil {
		return domain.Cart{}, err
	}
	snap, ok := snapshots[menuItemID]
	if !ok {
		return domain.Cart{}, ErrUnknownItem
	}
	if !snap.InStock {
		return domain.Cart{}, ErrOutOfStock
	}

	items, err := s.load(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	items = domain.AddItem(items, domain.CartItem{
		ID:       snap.ID,
		Name:     snap.Name,
		Price:    snap.Price,
		Image:    snap.ImageURL,
		Quantity: quantity,
	})
	return s.save(ctx, owner, items)
}

func (s *CartService) Remove(ctx context.Context, owner domain.CartOwner, menuItemID int) (domain.Cart, error) {
	items, err := s.load(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.save(ctx, owner, domain.RemoveItem(items, menuItemID))
}

func (s *CartService) UpdateQuantity(ctx context.Context, owner domain.CartOwner, menuItemID, quantity int) (domain.Cart, error) {
	items, err := s.load(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	items, found := domain.SetQuantity(items, menuItemID, quantity)
	if !found {
		return domain.Cart{}, ErrNotInCart
	}
	return s.save(ctx, owner, items)
}

func (s *CartService) Clear(ctx context.Context, owner domain.CartOwner) error {
	store, key, err := s.store(owner)
	if err != nil {
		return err
	}
	return store.Delete(ctx, key)
}

// Merge folds the guest cart of sessionID into the cart of userID and
// drops the guest cart. Quantities of items present in both are summed.
func (s *CartService) Merge(ctx context.Context, sessionID, userID string) (domain.Cart, error) {
	user := domain.CartOwner{UserID: userID}
	userItems, err := s.users.Load(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if sessionID == "" {
		return domain.NewCart(userItems), nil
	}
	guestItems, err := s.guests.Load(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(guestItems) == 0 {
		return domain.NewCart(userItems), nil
	}

	cart, err := s.save(ctx, user, domain.MergeCarts(userItems, guestItems))
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.guests.Delete(ctx, sessionID); err != nil {
		return domain.Cart{}, fmt.Errorf("drop guest cart: %w", err)
	}
	return cart, nil
}
