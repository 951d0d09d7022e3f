package cli

import (
	"context"
	"fmt"
	"os"
)

// Run выполняет команду терминала
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error
	switch command {
	case "add-product":
		err = c.runAddProduct(ctx, args)
	case "delete-product":
		err = c.runDeleteProduct(ctx, args)
	case "products":
		err = c.runListProducts(ctx)
	case "sell":
		err = c.runSell(ctx, args)
	case "sales":
		err = c.runListSales(ctx)
	case "reverse":
		err = c.runReverse(ctx, args)
	case "pull":
		err = c.runPull(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "run":
		err = c.runDispatcher(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
