package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"restaurant-ordering/order-svc/internal/domain"
	"restaurant-ordering/validation"

	"github.com/sirupsen/logrus"
)

// Demo card accepted by the simulated card payment.
const (
	DemoCardNumber = "4242424242424242"
	DemoCardExpiry = "12/28"
	DemoCardCVV    = "123"
)

type CheckoutService struct {
	carts     CartServiceInterface
	menu      MenuReader
	orders    OrderRepository
	publisher NotificationPublisher
	log       *logrus.Entry
	now       func() time.Time
}

func NewCheckoutService(carts CartServiceInterface, menu MenuReader, orders OrderRepository, publisher NotificationPublisher, log *logrus.Entry) *CheckoutService {
	return &CheckoutService{carts: carts, menu: menu, orders: orders, publisher: publisher, log: log, now: time.Now}
}

var cardSeparators = strings.NewReplacer(" ", "", "-", "")

func validateCard(req domain.CheckoutRequest, errs validation.Errors) {
	if req.PaymentMethod != domain.PaymentMethodCard {
		return
	}
	card := req.Card
	if card == nil {
		card = &domain.CardDetails{}
	}
	if cardSeparators.Replace(card.Number) != DemoCardNumber {
		errs.Add("card_number", "use the demo card 4242 4242 4242 4242")
	}
	if strings.TrimSpace(card.Expiry) != DemoCardExpiry {
		errs.Add("expiry", "use the demo expiry 12/28")
	}
	if strings.TrimSpace(card.CVV) != DemoCardCVV {
		errs.Add("cvv", "use the demo CVV 123")
	}
}

// buildItems reprices every cart line from the live menu.
func (s *CheckoutService) buildItems(ctx context.Context, lines []domain.CartItem) ([]domain.OrderItem, error) {
	ids := make([]int, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	snapshots, err := s.menu.MenuSnapshots(ctx, ids)
	if err != nil {
		return nil, err
	}

	errs := validation.Errors{}
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		snap, ok := snapshots[l.ID]
		if !ok || !snap.InStock {
			errs.Add("items", fmt.Sprintf("%s is no longer available", l.Name))
			continue
		}
		items = append(items, domain.OrderItem{
			MenuItemID: snap.ID,
			Name:       snap.Name,
			Quantity:   l.Quantity,
			Price:      snap.Price,
			Subtotal:   domain.RoundCents(snap.Price * float64(l.Quantity)),
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return items, nil
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, owner domain.CartOwner, req domain.CheckoutRequest) (*domain.Order, error) {
	errs := validation.Errors{}
	if err := validation.Struct(req); err != nil {
		verrs, ok := validation.As(err)
		if !ok {
			return nil, err
		}
		for f, msg := range verrs {
			errs.Add(f, msg)
		}
	}
	validateCard(req, errs)

	cart, err := s.carts.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		errs.Add("items", "your cart is empty")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	items, err := s.buildItems(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Address:       strings.TrimSpace(req.Address),
		Notes:         strings.TrimSpace(req.Notes),
		Status:        domain.StatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentPending,
		Items:         items,
	}
	if !owner.IsGuest() {
		userID := owner.UserID
		order.UserID = &userID
	}
	if req.PaymentMethod == domain.PaymentMethodCard {
		order.PaymentStatus = domain.PaymentPaid
	}
	for _, it := range items {
		order.Subtotal += it.Subtotal
	}
	order.Subtotal = domain.RoundCents(order.Subtotal)
	order.Total = domain.RoundCents(order.Subtotal + order.DeliveryFee + order.Tax)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	log := s.log.WithField("order_id", order.ID)
	log.WithField("total", order.Total).Info("Order placed")

	if err := s.carts.Clear(ctx, owner); err != nil {
		log.WithError(err).Warn("Failed to clear cart after checkout")
	}
	if err := s.publishConfirmation(ctx, order); err != nil {
		log.WithError(err).Warn("Failed to publish order confirmation")
	}
	return order, nil
}

func (s *CheckoutService) publishConfirmation(ctx context.Context, order *domain.Order) error {
	confirmation := domain.OrderConfirmation{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Address:       order.Address,
		PaymentMethod: order.PaymentMethod,
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		Tax:           order.Tax,
		Total:         order.Total,
	}
	lines := append([]domain.OrderItem(nil), order.Items...)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	for _, it := range lines {
		confirmation.Items = append(confirmation.Items, domain.OrderConfirmationLine{
			Name: it.Name, Quantity: it.Quantity, Price: it.Price, Subtotal: it.Subtotal,
		})
	}
	payload, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, domain.Notification{
		Type:      domain.NotificationOrderConfirmation,
		Payload:   payload,
		Timestamp: s.now(),
	})
}
