package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/internal/domain"
	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
	"github.com/EddyKilonzo/shopie/pkg/logger"
)

// CartUseCase coordinates cart-line mutations with the product stock counter.
// Adding to the cart reserves stock (decrement), removing releases it
// (increment); both sides happen in one transaction with the product row
// locked, so stock never goes negative and cart totals never drift from the
// reserved quantities.
type CartUseCase struct {
	txRunner TxRunner
	cartRepo repository.CartRepository // read-only paths outside a transaction
	log      *logger.Logger
}

// NewCartUseCase builds the use case.
func NewCartUseCase(txRunner TxRunner, cartRepo repository.CartRepository, log *logger.Logger) *CartUseCase {
	return &CartUseCase{txRunner: txRunner, cartRepo: cartRepo, log: log}
}

// AddToCart reserves stock for the requested quantity and creates or merges
// the user's cart line for the product. A repeated add merges: the merged
// quantity must still fit in the pre-decrement stock value, and the ledger is
// decremented by the requested quantity only, since the existing line already
// holds its own reservation. The line total is recomputed from the product's
// current unit price.
func (uc *CartUseCase) AddToCart(ctx context.Context, userID string, in dto.AddToCartRequest) (*dto.CartLineResponse, error) {
	if in.ProductID == "" || in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.CartLine
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		line, err := cartRepo.FindLine(ctx, userID, in.ProductID)
		if err != nil {
			return err
		}

		now := time.Now()
		if line != nil {
			newQty := line.Quantity + in.Quantity
			if product.StockQuantity < newQty {
				return domain.NewInsufficientStock(product.ID, product.StockQuantity)
			}
			// The existing reservation covers the prior quantity; only the
			// requested amount leaves the ledger.
			if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity-in.Quantity); err != nil {
				return err
			}
			total := product.Price.Mul(decimal.NewFromInt(int64(newQty)))
			if err := cartRepo.UpdateLine(ctx, line.ID, newQty, total); err != nil {
				return err
			}
			line.Quantity = newQty
			line.Total = total
			line.UpdatedAt = now
			result = line
			return nil
		}

		if product.StockQuantity < in.Quantity {
			return domain.NewInsufficientStock(product.ID, product.StockQuantity)
		}
		if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity-in.Quantity); err != nil {
			return err
		}
		newLine := &entity.CartLine{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			Total:       product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := cartRepo.Create(ctx, newLine); err != nil {
			return err
		}
		result = newLine
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToCartLineResponse(result), nil
}

// ListCart returns the user's cart lines, most recently created first.
func (uc *CartUseCase) ListCart(ctx context.Context, userID string) ([]*dto.CartLineResponse, error) {
	lines, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToCartLineResponses(lines), nil
}

// CartTotal returns the sum of line totals and the item count for the user.
func (uc *CartUseCase) CartTotal(ctx context.Context, userID string) (*dto.CartTotalResponse, error) {
	totals, err := uc.cartRepo.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.CartTotalResponse{Total: totals.Total, ItemCount: totals.ItemCount}, nil
}

// RemoveFromCart deletes a cart line and returns its full reserved quantity to
// the stock pool. The line must belong to the calling user.
func (uc *CartUseCase) RemoveFromCart(ctx context.Context, userID, lineID string) error {
	if lineID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		line, err := cartRepo.GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrCartLineNotFound
		}
		if line.UserID != userID {
			return domain.ErrForbidden
		}
		// No-op when the product was deleted from the catalog meanwhile.
		if err := productRepo.IncrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
		return cartRepo.Delete(ctx, line.ID)
	})
}

// ClearCart removes every line from the user's cart and releases each line's
// reservation back to the ledger. Clearing an already-empty cart is a no-op.
func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		lines, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := productRepo.IncrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return cartRepo.DeleteByUser(ctx, userID)
	})
}

// IncreaseQuantity bumps a cart line by exactly one unit, reserving one more
// unit of stock at the product's current price.
func (uc *CartUseCase) IncreaseQuantity(ctx context.Context, userID, lineID string) (*dto.CartLineResponse, error) {
	var result *entity.CartLine
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		line, err := cartRepo.GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrCartLineNotFound
		}
		if line.UserID != userID {
			return domain.ErrForbidden
		}
		product, err := productRepo.GetForUpdate(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.StockQuantity < 1 {
			return domain.NewInsufficientStock(product.ID, product.StockQuantity)
		}
		if err := productRepo.UpdateStock(ctx, product.ID, product.StockQuantity-1); err != nil {
			return err
		}
		newQty := line.Quantity + 1
		total := product.Price.Mul(decimal.NewFromInt(int64(newQty)))
		if err := cartRepo.UpdateLine(ctx, line.ID, newQty, total); err != nil {
			return err
		}
		line.Quantity = newQty
		line.Total = total
		line.UpdatedAt = time.Now()
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToCartLineResponse(result), nil
}

// DecreaseQuantity lowers a cart line by exactly one unit, returning that unit
// to the ledger. When the quantity would reach zero the line is removed with
// full RemoveFromCart semantics and no line is returned.
func (uc *CartUseCase) DecreaseQuantity(ctx context.Context, userID, lineID string) (*dto.CartLineResponse, error) {
	var result *entity.CartLine
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		cartRepo repository.CartRepository,
	) error {
		line, err := cartRepo.GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrCartLineNotFound
		}
		if line.UserID != userID {
			return domain.ErrForbidden
		}
		if line.Quantity <= 1 {
			// Dropping to zero removes the line and releases its whole reservation.
			if err := productRepo.IncrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			return cartRepo.Delete(ctx, line.ID)
		}
		if err := productRepo.IncrementStock(ctx, line.ProductID, 1); err != nil {
			return err
		}
		newQty := line.Quantity - 1
		product, err := productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return err
		}
		var unitPrice decimal.Decimal
		if product != nil {
			unitPrice = product.Price
		} else {
			// Product gone from the catalog: fall back to the price implied by
			// the line itself.
			unitPrice = line.Total.Div(decimal.NewFromInt(int64(line.Quantity)))
		}
		total := unitPrice.Mul(decimal.NewFromInt(int64(newQty)))
		if err := cartRepo.UpdateLine(ctx, line.ID, newQty, total); err != nil {
			return err
		}
		line.Quantity = newQty
		line.Total = total
		line.UpdatedAt = time.Now()
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToCartLineResponse(result), nil
}
