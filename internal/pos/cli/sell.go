package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/cart"
)

var sellUsage = "Usage: bookpos sell SKU[:QTY]... [--discount AMOUNT] [--method cash|mpesa|card] [--tendered AMOUNT]"

func (c *Cli) runSell(ctx context.Context, args []string) error {
	items, rest := splitItems(args)
	if len(items) == 0 {
		return fmt.Errorf("nothing to sell. %s", sellUsage)
	}

	fs := flag.NewFlagSet("sell", flag.ContinueOnError)
	discountStr := fs.String("discount", "", "Discount amount, e.g. 1.00")
	methodStr := fs.String("method", string(models.PaymentCash), "Payment method: cash, mpesa or card")
	tenderedStr := fs.String("tendered", "", "Amount tendered (default: exact total)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	method := models.PaymentMethod(*methodStr)
	if !method.Valid() {
		return fmt.Errorf("unknown payment method %q. %s", *methodStr, sellUsage)
	}

	crt := cart.New(c.catalog)
	for _, item := range items {
		sku, qty, err := parseItem(item)
		if err != nil {
			return err
		}
		if err := crt.AddLine(ctx, sku, qty); err != nil {
			return fmt.Errorf("failed to add %s: %w", sku, err)
		}
	}

	if *discountStr != "" {
		discount, err := parseMoney(*discountStr)
		if err != nil {
			return fmt.Errorf("invalid discount: %w", err)
		}
		if err := crt.ApplyDiscount(discount); err != nil {
			return fmt.Errorf("failed to apply discount: %w", err)
		}
	}

	// Без флага продажа идет под расчет, без сдачи
	tendered := crt.Totals().Total
	if *tenderedStr != "" {
		var err error
		tendered, err = parseMoney(*tenderedStr)
		if err != nil {
			return fmt.Errorf("invalid tendered amount: %w", err)
		}
	}

	sale, err := c.committer.Commit(ctx, crt, method, tendered, c.cashier)
	if err != nil {
		return err
	}

	text, err := c.renderer.Render(sale)
	if err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	fmt.Println(text)
	return nil
}

// splitItems отделяет позиции от флагов: позиции идут до первого "--" аргумента
func splitItems(args []string) (items, rest []string) {
	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}

// parseItem разбирает позицию вида "SKU" или "SKU:QTY".
// Двоеточие не встречается в SKU, поэтому разбор однозначен
// для любых артикулов.
func parseItem(item string) (sku string, qty int, err error) {
	sku, qtyStr, found := strings.Cut(item, ":")
	if !found {
		return item, 1, nil
	}

	qty, err = strconv.Atoi(qtyStr)
	if err != nil || sku == "" || qty < 1 {
		return "", 0, fmt.Errorf("invalid item %q, expected SKU or SKU:QTY", item)
	}
	return sku, qty, nil
}
