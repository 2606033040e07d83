package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/internal/domain"
	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
	"github.com/EddyKilonzo/shopie/pkg/logger"
)

// CheckoutUseCase converts a user's cart into an immutable CONFIRMED order.
// The order header, its line snapshots, the confirmation-email outbox row and
// the cart purge commit as one transaction; the email itself is delivered
// later by the notification worker and can never fail a checkout.
type CheckoutUseCase struct {
	txRunner  TxRunner
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	log       *logger.Logger
}

// NewCheckoutUseCase builds the use case.
func NewCheckoutUseCase(
	txRunner TxRunner,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:  txRunner,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		log:       log,
	}
}

// Checkout places an order from the user's current cart. The reserved stock
// stays sold: the cart purge here does not return quantities to the ledger.
// Any failure before commit leaves the cart and the ledger untouched.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string) (*dto.CheckoutResponse, error) {
	lines, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	orderID := uuid.New().String()
	err = uc.txRunner.RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		orderRepo repository.OrderRepository,
		notifRepo repository.NotificationRepository,
	) error {
		// Re-read inside the transaction; the precheck ran on a snapshot that
		// may be stale by now.
		lines, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		now := time.Now()
		total := decimal.Zero
		for _, line := range lines {
			total = total.Add(line.Total)
		}

		order := &entity.Order{
			ID:          orderID,
			UserID:      userID,
			TotalAmount: total,
			Status:      entity.OrderStatusConfirmed,
			CreatedAt:   now,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		summary := entity.OrderSummary{OrderID: orderID, TotalAmount: total}
		for _, line := range lines {
			unitPrice := line.Total.Div(decimal.NewFromInt(int64(line.Quantity)))
			ol := &entity.OrderLine{
				ID:          uuid.New().String(),
				OrderID:     orderID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				UnitPrice:   unitPrice,
				LineTotal:   line.Total,
			}
			if err := orderRepo.CreateLine(ctx, ol); err != nil {
				return err
			}
			summary.Items = append(summary.Items, entity.OrderSummaryItem{
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				LineTotal:   line.Total,
			})
		}

		payload, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		notification := &entity.Notification{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			Recipient: user.Email,
			UserName:  user.Name,
			Payload:   payload,
			Status:    entity.NotificationPending,
			NextRunAt: now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := notifRepo.Enqueue(ctx, notification); err != nil {
			return err
		}

		// Purge without restoring stock: these units are sold now.
		return cartRepo.DeleteByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("user_id", userID).
		Str("order_id", orderID).
		Msg("checkout confirmed")

	return &dto.CheckoutResponse{Message: "Order placed successfully", OrderID: orderID}, nil
}

// PurchaseHistory returns the user's orders, newest first.
func (uc *CheckoutUseCase) PurchaseHistory(ctx context.Context, userID string) ([]*dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponses(orders), nil
}
