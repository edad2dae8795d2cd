package service

import (
	"context"
	"errors"
	"fmt"

	"restaurant-ordering/order-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidPayment    = errors.New("unknown payment status")
	ErrInvalidTransition = errors.New("order status cannot move that way")
)

type OrderService struct {
	repo OrderRepository
	qr   QRGenerator
	log  *logrus.Entry
}

func NewOrderService(repo OrderRepository, qr QRGenerator, log *logrus.Entry) *OrderService {
	return &OrderService{repo: repo, qr: qr, log: log}
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	return order, notFound(err)
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter) (*domain.OrderPage, error) {
	if filter.Status != "" && !domain.ValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	orders, total, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return &domain.OrderPage{Orders: orders, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	current, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if current.Status == status {
		return current, nil
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
	}
	order, err := s.repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, notFound(err)
	}
	s.log.WithFields(logrus.Fields{"order_id": id, "from": current.Status, "to": status}).Info("Order status changed")
	return order, nil
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	if !domain.ValidPaymentStatus(status) {
		return nil, ErrInvalidPayment
	}
	order, err := s.repo.UpdatePaymentStatus(ctx, id, status)
	return order, notFound(err)
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	n, err := s.repo.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// QRCode returns the receipt QR code of the order, generating and caching
// it on first request.
func (s *OrderService) QRCode(ctx context.Context, id int) ([]byte, error) {
	png, err := s.repo.GetQRCode(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if len(png) > 0 {
		return png, nil
	}
	png, err = s.qr.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	if err := s.repo.SaveQRCode(ctx, id, png); err != nil {
		s.log.WithError(err).WithField("order_id", id).Warn("Failed to cache QR code")
	}
	return png, nil
}

func (s *OrderService) QRLink(orderID int) string {
	return s.qr.Link(orderID)
}
