package commands

import (
	"context"

	"checkout/internal/core/domain/model/basket"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
)

// AddProductResult is the state of the product's line after the merge. Line is
// nil when the merge removed it.
type AddProductResult struct {
	BasketID kernel.UUID
	Line     *basket.Line
	Created  bool
}

type AddProductCommandHandler struct {
	uowFactory BasketUoWFactory
}

func NewAddProductCommandHandler(uowFactory BasketUoWFactory) AddProductCommandHandler {
	return AddProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks the product against the catalogue and the basket rules, then
// lets the store apply the merge atomically.
func (h AddProductCommandHandler) Handle(ctx context.Context, cmd AddProductCommand) (AddProductResult, error) {
	if err := cmd.Validate(); err != nil {
		return AddProductResult{}, err
	}
	if err := requireAuthenticated(cmd.Actor()); err != nil {
		return AddProductResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AddProductResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	product, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return AddProductResult{}, err
	}
	if !product.IsPublic() {
		return AddProductResult{}, errs.NewNotAcceptableError(ErrProductNotAvailable, "Product not available for sale")
	}

	basketRepo := uow.BasketRepository()
	b, err := openBasket(ctx, basketRepo, cmd.Actor().UserID())
	if err != nil {
		return AddProductResult{}, err
	}

	if _, _, err = b.AddProduct(product, cmd.Quantity()); err != nil {
		return AddProductResult{}, err
	}

	line, created, err := basketRepo.MergeLine(ctx, b.ID(), product, cmd.Quantity())
	if err != nil {
		return AddProductResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AddProductResult{}, err
	}

	return AddProductResult{BasketID: b.ID(), Line: line, Created: created}, nil
}
