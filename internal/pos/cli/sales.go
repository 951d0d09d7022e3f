package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/bookpos/internal/pos/receipt"
)

func (c *Cli) runListSales(ctx context.Context) error {
	sales, err := c.sales.ListSales(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sales: %w", err)
	}

	if len(sales) == 0 {
		fmt.Println("No sales recorded")
		return nil
	}

	showProfit := c.cashier.Role.CanViewCost()

	fmt.Println("=== Sales ===")
	for _, s := range sales {
		line := fmt.Sprintf("  #%-6d %s  %-5s %10s  %d line(s)  [%s]",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04"),
			s.PaymentMethod,
			receipt.FormatMoney(c.currency, s.Total),
			len(s.Lines),
			s.SyncStatus,
		)
		if showProfit {
			line += fmt.Sprintf("  profit %s", receipt.FormatMoney(c.currency, s.Profit))
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d sale(s)\n", len(sales))
	return nil
}

func (c *Cli) runReverse(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing sale id. Usage: bookpos reverse SALE_ID")
	}

	saleID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid sale id %q", args[0])
	}

	if err := c.committer.Reverse(ctx, saleID, c.cashier); err != nil {
		return err
	}

	fmt.Printf("Sale #%d reversed, stock restored\n", saleID)
	return nil
}
