package server

import (
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
)

type productResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousPrice float64 `json:"previousPrice"`
	Picture       string  `json:"picture,omitempty"`
	InStock       int     `json:"inStock"`
	FlashSale     bool    `json:"flashSale"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		CurrentPrice:  p.CurrentPrice.Amount.InexactFloat64(),
		PreviousPrice: p.PreviousPrice.Amount.InexactFloat64(),
		Picture:       p.PicturePath,
		InStock:       p.InStock,
		FlashSale:     p.FlashSale,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type cartLineResponse struct {
	ID       string          `json:"id"`
	Quantity int             `json:"quantity"`
	Product  productResponse `json:"product"`
}

type cartViewResponse struct {
	Lines  []cartLineResponse `json:"cart"`
	Amount float64            `json:"amount"`
	Total  float64            `json:"total"`
}

func toCartViewResponse(view domain.CartView) cartViewResponse {
	lines := make([]cartLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, cartLineResponse{
			ID:       line.ID.String(),
			Quantity: line.Quantity,
			Product:  toProductResponse(line.Product),
		})
	}

	return cartViewResponse{
		Lines:  lines,
		Amount: view.Amount.InexactFloat64(),
		Total:  view.Total.InexactFloat64(),
	}
}

type cartMutationResponse struct {
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
	Total    float64 `json:"total"`
}

func toCartMutationResponse(m domain.CartMutation) cartMutationResponse {
	return cartMutationResponse{
		Quantity: m.Quantity,
		Amount:   m.Amount.InexactFloat64(),
		Total:    m.Total.InexactFloat64(),
	}
}

type orderResponse struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customerId"`
	ProductID  string  `json:"productId"`
	Price      float64 `json:"price"`
	PaymentID  string  `json:"paymentId"`
	Quantity   int     `json:"quantity"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderResponse{
			ID:         o.ID.String(),
			CustomerID: o.CustomerID.String(),
			ProductID:  o.ProductID.String(),
			Price:      o.Price.Amount.InexactFloat64(),
			PaymentID:  o.PaymentID,
			Quantity:   o.Quantity,
			Status:     string(o.Status),
			CreatedAt:  o.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

type customerResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	DateJoined string `json:"dateJoined"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:         c.ID.String(),
		Username:   c.Username,
		Email:      c.Email,
		Role:       string(c.Role),
		DateJoined: c.DateJoined.Format(time.RFC3339),
	}
}
