package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"reflect"
	"strings"

	"agrimart/internal/domain"
	"agrimart/internal/notifier"
	orderrepo "agrimart/internal/repository/order"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CheckoutInput is what the shopper types into the checkout form.
type CheckoutInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required,len=10,number"`
}

func (in CheckoutInput) trimmed() CheckoutInput {
	return CheckoutInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
	}
}

type cartClearer interface {
	ClearSession(ctx context.Context, session domain.SessionID) error
}

type Service struct {
	orders   orderrepo.Repository
	carts    cartClearer
	notifier notifier.Notifier
	validate *validator.Validate
	logger   *log.Logger
}

func New(orders orderrepo.Repository, carts cartClearer, n notifier.Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{orders: orders, carts: carts, notifier: n, validate: v, logger: logger}
}

// PlaceOrder turns the given cart lines into a pending cash-on-delivery order
// and empties the session's cart. The total is computed from the product
// snapshots on the lines. An order id is returned only when every step
// succeeded.
func (s *Service) PlaceOrder(ctx context.Context, session domain.SessionID, lines []domain.CartLine, in CheckoutInput) (string, error) {
	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}
	in = in.trimmed()
	if err := s.check(in); err != nil {
		return "", err
	}

	order := domain.Order{
		CustomerName:    in.Name,
		CustomerEmail:   in.Email,
		ShippingAddress: in.Address,
		Phone:           in.Phone,
		TotalAmount:     domain.CartTotal(lines),
		Status:          domain.OrderStatusPending,
		PaymentMethod:   domain.PaymentCashOnDelivery,
	}
	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		orderLines = append(orderLines, domain.OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		})
	}

	created, err := s.orders.Create(ctx, order, orderLines)
	if err != nil {
		s.logger.Printf("order: create session=%s err=%v", session, err)
		return "", &CreationError{Err: err}
	}

	if err := s.carts.ClearSession(ctx, session); err != nil {
		s.logger.Printf("order: clear cart session=%s order=%s err=%v", session, created.ID, err)
		if derr := s.orders.Delete(ctx, created.ID); derr != nil {
			s.logger.Printf("order: compensating delete order=%s err=%v", created.ID, derr)
		}
		return "", fmt.Errorf("%w: %w", ErrCartNotCleared, domain.NewStoreError("clear cart", err))
	}

	s.logger.Printf("order: placed order=%s session=%s total=%s lines=%d",
		created.ID, session, created.TotalAmount.StringFixed(2), len(created.Lines))
	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, *created); err != nil {
			s.logger.Printf("order: notify order=%s err=%v", created.ID, err)
		}
	}
	return created.ID, nil
}

// GetOrder returns a placed order with its lines.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("get order", err)
	}
	return o, nil
}

func (s *Service) check(in CheckoutInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "len", "number":
		return "must be exactly 10 digits"
	}
	return "is invalid"
}
