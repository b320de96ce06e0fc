package domain

import "github.com/shopspring/decimal"

// ProductService is a sellable product or service.
type ProductService struct {
	ProductID     string          `json:"productID" db:"product_id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Cost          decimal.Decimal `json:"cost" db:"cost"`
	StockQuantity *int            `json:"stockQuantity,omitempty" db:"stock_quantity"`
	AuditFields
	SoftDeleteFields
}

// CategoryKind separates income categories from expense categories.
type CategoryKind string

const (
	CategoryIncome  CategoryKind = "income"
	CategoryExpense CategoryKind = "expense"
)

// Category labels income or expense.
type Category struct {
	CategoryID  string       `json:"categoryID" db:"category_id"`
	Kind        CategoryKind `json:"kind" db:"kind"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	AuditFields
	SoftDeleteFields
}
