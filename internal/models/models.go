package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// JSON field matching in encoding/json is case-insensitive, so these tags
// accept both the camelCase and PascalCase payloads the backend sends.

type AccountType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Account struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	AccountTypeID   int    `json:"accountTypeId"`
	AccountTypeName string `json:"-"` // resolved from the account type lookup
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

type ProductImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

type Product struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Brand           string           `json:"brand"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	Stock           int              `json:"stock"`
	CategoryID      int              `json:"categoryId"`
	Description     string           `json:"description"`
	Images          []ProductImage   `json:"images"`
}

// PrimaryImage returns the image flagged primary, the first image otherwise.
func (p Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// HasDiscount reports whether the discounted price is set and below the list price.
func (p Product) HasDiscount() bool {
	return p.DiscountedPrice != nil && p.DiscountedPrice.LessThan(p.Price)
}

// EffectivePrice is the price a customer pays for one unit.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.DiscountedPrice
	}
	return p.Price
}

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

type Voucher struct {
	ID            int             `json:"id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	DiscountKind  DiscountKind    `json:"discountKind"`
	StartDate     Date            `json:"startDate"`
	EndDate       Date            `json:"endDate"`
	Remaining     int             `json:"remaining"`
	Active        bool            `json:"active"`
}

type Promotion struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	PercentOff  decimal.Decimal `json:"percentOff"`
	StartDate   Date            `json:"startDate"`
	EndDate     Date            `json:"endDate"`
	Products    []Product       `json:"products"`
}

// HasProduct reports whether the product is attached to the promotion.
func (p Promotion) HasProduct(productID int) bool {
	for _, prod := range p.Products {
		if prod.ID == productID {
			return true
		}
	}
	return false
}

type Contact struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	SentAt  Date   `json:"sentAt"`
}

type CartLine struct {
	ProductID           int              `json:"productId"`
	ProductName         string           `json:"productName"`
	ImageURL            string           `json:"imageUrl"`
	Quantity            int              `json:"quantity"`
	UnitPrice           decimal.Decimal  `json:"unitPrice"`
	DiscountedUnitPrice *decimal.Decimal `json:"discountedUnitPrice,omitempty"`
}

type Cart struct {
	Lines []CartLine `json:"items"`
}

type Order struct {
	ID              int             `json:"id"`
	CreatedAt       Date            `json:"createdAt"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Lines           []CartLine      `json:"items"`
}

// UserInfo is the minimal profile cached in the session after sign-in.
type UserInfo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar"`
	Role      string `json:"role"`
}

const RoleAdmin = "admin"

// IsAdmin matches the role regardless of case.
func (u UserInfo) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(u.Role), RoleAdmin)
}

// Page is one page of a server-paginated list.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
