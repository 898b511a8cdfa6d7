package forms

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/attachments"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

func parsePrice(f Fields) (float64, error) {
	p, err := strconv.ParseFloat(f.Trimmed("price"), 64)
	if err != nil || p < 0 {
		return 0, &ValidationError{Field: "price", Message: common.MsgProductPriceBad}
	}
	return p, nil
}

func parseStock(f Fields) (int, error) {
	s, err := strconv.Atoi(f.Trimmed("stock"))
	if err != nil || s < 0 {
		return 0, &ValidationError{Field: "stock", Message: common.MsgProductStockBad}
	}
	return s, nil
}

// ProductRegisterForm submits a product with the images already uploaded
// into list. On success the draft is cleared.
func ProductRegisterForm(b Backend, list *attachments.List) Spec {
	return Spec{
		Name:   "product-register",
		Fields: []string{"title", "description", "price", "stock"},
		Validate: func(f Fields) error {
			if err := required(f, common.MsgProductTitleNeeded, "title"); err != nil {
				return err
			}
			if _, err := parsePrice(f); err != nil {
				return err
			}
			_, err := parseStock(f)
			return err
		},
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			price, _ := parsePrice(f)
			stock, _ := parseStock(f)

			p := models.Product{
				Title:         f.Trimmed("title"),
				Description:   f.Get("description"),
				Price:         price,
				Stock:         stock,
				ContentImages: list.Attachments(),
			}
			if th, _, ok := list.Thumbnail(); ok {
				p.ThumbnailImage = &th
			}

			if _, err := b.RegisterProduct(ctx, p); err != nil {
				return Success{}, err
			}
			list.Clear()
			return Success{Message: common.MsgProductRegistered, ResetForm: true, NavigateTo: "/"}, nil
		},
		FailureMessage: common.MsgProductFailed,
		FixedFailure:   true,
	}
}

// AddToCartForm puts the product shown on a detail page into the cart.
func AddToCartForm(b Backend) Spec {
	return Spec{
		Name:   "add-to-cart",
		Fields: []string{"productId", "quantity"},
		Validate: func(f Fields) error {
			if f.Trimmed("productId") == "" {
				return &ValidationError{Field: "productId", Message: common.MsgGenericError}
			}
			_, err := parseQuantity(f)
			return err
		},
		Submit: func(ctx context.Context, f Fields) (Success, error) {
			q, _ := parseQuantity(f)
			if _, err := b.AddToCart(ctx, models.CartItem{ProductID: f.Trimmed("productId"), Quantity: q}); err != nil {
				return Success{}, err
			}
			return Success{Message: common.MsgCartAdded}, nil
		},
		FixedFailure: true,
	}
}

func parseQuantity(f Fields) (int, error) {
	q, err := strconv.Atoi(f.Trimmed("quantity"))
	if err != nil || q < 1 {
		return 0, &ValidationError{Field: "quantity", Message: common.MsgCartQuantityBad}
	}
	return q, nil
}

// ProductOrderURL is where the order button sends the user.
func ProductOrderURL(productID string, quantity int) string {
	q := url.Values{}
	q.Set("productId", productID)
	q.Set("quantity", strconv.Itoa(quantity))
	return "/productOrder?" + q.Encode()
}
