// Package receipt строит печатное представление зафиксированной продажи.
// Контракт простой: на входе готовая продажа, на выходе текст;
// драйвер принтера и сохранение файла - забота вызывающего.
package receipt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/iudanet/bookpos/internal/models"
)

const receiptTemplate = `{{.Shop}}
{{.Divider}}
Sale:    #{{.Sale.ID}}
Date:    {{.Sale.Timestamp.Format "2006-01-02 15:04:05"}}
Cashier: {{.Sale.Cashier}}
{{.Divider}}
{{- range .Sale.Lines}}
{{printf "%-24.24s" .Title}} x{{.Quantity}}
{{printf "  %s @ %s" .SKU (money .UnitPrice)}} = {{money .LineTotal}}
{{- end}}
{{.Divider}}
Subtotal: {{money .Sale.Subtotal}}
{{- if gt .Sale.Discount 0}}
Discount: -{{money .Sale.Discount}}
{{- end}}
TOTAL:    {{money .Sale.Total}}
Paid:     {{money .Sale.Tendered}} ({{.Sale.PaymentMethod}})
Change:   {{money .Sale.Change}}
{{.Divider}}
Thank you for your business!
`

// Renderer renders committed sales as printable text
type Renderer struct {
	tmpl *template.Template
	shop string
}

// NewRenderer создает рендерер чеков.
// shop - заголовок магазина на чеке, currency печатается перед суммами.
func NewRenderer(shop, currency string) (*Renderer, error) {
	tmpl := template.New("receipt").Funcs(template.FuncMap{
		"money": func(amount int64) string {
			return FormatMoney(currency, amount)
		},
	})

	tmpl, err := tmpl.Parse(receiptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt template: %w", err)
	}

	return &Renderer{tmpl: tmpl, shop: shop}, nil
}

// Render возвращает печатное представление продажи
func (r *Renderer) Render(sale *models.Sale) (string, error) {
	data := struct {
		Sale    *models.Sale
		Shop    string
		Divider string
	}{
		Sale:    sale,
		Shop:    r.shop,
		Divider: strings.Repeat("-", 32),
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}

	return sb.String(), nil
}

// FormatMoney форматирует сумму в минимальных единицах валюты
func FormatMoney(currency string, amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s %d.%02d", sign, currency, amount/100, amount%100)
}
