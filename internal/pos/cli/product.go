package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/receipt"
	"github.com/iudanet/bookpos/internal/pos/storage"
)

var addProductUsage = "Usage: bookpos add-product SKU TITLE PRICE COST STOCK [AUTHOR [CATEGORY [TYPE]]]"

func (c *Cli) runAddProduct(ctx context.Context, args []string) error {
	if !c.cashier.Role.CanEditInventory() {
		return fmt.Errorf("%w: role %s cannot edit inventory", models.ErrPermissionDenied, c.cashier.Role)
	}
	if len(args) < 5 {
		return fmt.Errorf("missing arguments. %s", addProductUsage)
	}

	price, err := parseMoney(args[2])
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	cost, err := parseMoney(args[3])
	if err != nil {
		return fmt.Errorf("invalid cost: %w", err)
	}
	stock, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("invalid stock %q", args[4])
	}

	product := &models.Product{
		SKU:      args[0],
		Title:    args[1],
		Price:    price,
		Cost:     cost,
		Stock:    stock,
		ItemType: models.ItemTypeBook,
	}
	if len(args) > 5 {
		product.Author = args[5]
	}
	if len(args) > 6 {
		product.Category = args[6]
	}
	if len(args) > 7 {
		product.ItemType = args[7]
	}

	// Сохраняем существующую дату создания при обновлении
	if existing, err := c.catalog.GetProduct(ctx, product.SKU); err == nil {
		product.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, storage.ErrProductNotFound) {
		return fmt.Errorf("failed to check existing product: %w", err)
	}

	if err := c.reconciler.Push(ctx, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	fmt.Printf("Saved %s (%s), price %s, stock %d\n",
		product.SKU, product.Title, receipt.FormatMoney(c.currency, product.Price), product.Stock)
	return nil
}

func (c *Cli) runDeleteProduct(ctx context.Context, args []string) error {
	if !c.cashier.Role.CanEditInventory() {
		return fmt.Errorf("%w: role %s cannot edit inventory", models.ErrPermissionDenied, c.cashier.Role)
	}
	if len(args) == 0 {
		return fmt.Errorf("missing SKU. Usage: bookpos delete-product SKU")
	}

	sku := args[0]
	if err := c.reconciler.PushDelete(ctx, sku); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	fmt.Printf("Deleted %s\n", sku)
	return nil
}

func (c *Cli) runListProducts(ctx context.Context) error {
	products, err := c.catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if len(products) == 0 {
		fmt.Println("Catalog is empty")
		return nil
	}

	// Себестоимость видна только директору
	showCost := c.cashier.Role.CanViewCost()

	fmt.Println("=== Catalog ===")
	for _, p := range products {
		line := fmt.Sprintf("  %-12s %-30s %10s  stock %d",
			p.SKU, p.Title, receipt.FormatMoney(c.currency, p.Price), p.Stock)
		if showCost {
			line += fmt.Sprintf("  cost %s", receipt.FormatMoney(c.currency, p.Cost))
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d product(s)\n", len(products))
	return nil
}
