// Package api содержит wire-типы контракта удалённого реестра.
// Они используются и клиентом кассы, и референсным сервером реестра,
// поэтому вынесены в pkg.
package api

import "time"

// SaleLineDocument представляет одну строку продажи в документе реестра
type SaleLineDocument struct {
	SKU       string `json:"sku"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	UnitCost  int64  `json:"unit_cost"`
}

// SaleDocument представляет полный снимок продажи, реплицируемый
// через PUT /sales/{saleId}. Ключом документа служит id продажи,
// поэтому повторная доставка перезаписывает документ, а не дублирует его.
type SaleDocument struct {
	Timestamp     time.Time          `json:"timestamp"`
	Lines         []SaleLineDocument `json:"lines"`
	PaymentMethod string             `json:"payment_method"`
	Cashier       string             `json:"cashier"`
	Location      string             `json:"location"`
	SaleID        int64              `json:"sale_id"`
	Discount      int64              `json:"discount"`
	Subtotal      int64              `json:"subtotal"`
	Total         int64              `json:"total"`
	Profit        int64              `json:"profit"`
}

// ProductDocument представляет документ товара в реестре.
// Реплицируется через PUT /products/{sku}; UpdatedAt используется
// обеими сторонами для LWW-сверки.
type ProductDocument struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SKU       string    `json:"sku"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	ItemType  string    `json:"item_type"`
	Price     int64     `json:"price"`
	Cost      int64     `json:"cost"`
	Stock     int       `json:"stock"`
	Deleted   bool      `json:"deleted"`
}

// StockPatch представляет тело PATCH /products/{sku}.
// Передаётся абсолютное значение остатка, а не дельта: повторная
// доставка того же события безопасна.
type StockPatch struct {
	Stock int `json:"stock"`
}

// DailySummary представляет агрегат продаж за день,
// хранящийся в реестре по ключу даты (YYYY-MM-DD)
type DailySummary struct {
	LastUpdated      time.Time `json:"last_updated"`
	TotalSales       int64     `json:"total_sales"`
	TransactionCount int       `json:"transaction_count"`
}

// ErrorResponse представляет тело ошибки от сервера реестра
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
