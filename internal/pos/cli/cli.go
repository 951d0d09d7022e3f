// Package cli реализует команды кассового терминала.
package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/api"
	"github.com/iudanet/bookpos/internal/pos/committer"
	"github.com/iudanet/bookpos/internal/pos/dispatcher"
	"github.com/iudanet/bookpos/internal/pos/receipt"
	"github.com/iudanet/bookpos/internal/pos/reconciler"
	"github.com/iudanet/bookpos/internal/pos/storage"
)

// Cli связывает команды терминала с сервисами кассы
type Cli struct {
	catalog    storage.CatalogStore
	sales      storage.SaleStore
	queue      storage.EventQueue
	committer  *committer.Committer
	dispatcher *dispatcher.Dispatcher
	reconciler *reconciler.Service
	renderer   *receipt.Renderer
	client     api.ClientAPI
	logger     *slog.Logger
	cashier    models.Principal
	currency   string
}

// Deps собирает зависимости для конструктора Cli
type Deps struct {
	Catalog    storage.CatalogStore
	Sales      storage.SaleStore
	Queue      storage.EventQueue
	Committer  *committer.Committer
	Dispatcher *dispatcher.Dispatcher
	Reconciler *reconciler.Service
	Renderer   *receipt.Renderer
	Client     api.ClientAPI
	Logger     *slog.Logger
	Cashier    models.Principal
	Currency   string
}

// New создает новый Cli
func New(deps Deps) *Cli {
	return &Cli{
		catalog:    deps.Catalog,
		sales:      deps.Sales,
		queue:      deps.Queue,
		committer:  deps.Committer,
		dispatcher: deps.Dispatcher,
		reconciler: deps.Reconciler,
		renderer:   deps.Renderer,
		client:     deps.Client,
		logger:     deps.Logger,
		cashier:    deps.Cashier,
		currency:   deps.Currency,
	}
}

func PrintUsage() {
	fmt.Println("BookPOS Till")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  bookpos [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version            Show version information")
	fmt.Println("  --ledger URL         Remote ledger URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH            Path to local sales database (default: bookpos.db)")
	fmt.Println("  --queue PATH         Path to local sync queue (default: bookpos-queue.db)")
	fmt.Println("  --cashier NAME       Cashier name (default: $USER)")
	fmt.Println("  --role ROLE          Cashier role: director or attendant (default: attendant)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add-product SKU TITLE PRICE COST STOCK [AUTHOR [CATEGORY [TYPE]]]")
	fmt.Println("                          Add or update a product in the catalog")
	fmt.Println("  delete-product SKU      Remove a product from the catalog")
	fmt.Println("  products                List the local catalog")
	fmt.Println("  sell SKU[:QTY]... [--discount AMOUNT] [--method cash|mpesa|card] [--tendered AMOUNT]")
	fmt.Println("                          Ring up a sale and print the receipt")
	fmt.Println("  sales                   List local sales with their sync status")
	fmt.Println("  reverse SALE_ID         Reverse a sale and restore stock (director only)")
	fmt.Println("  pull                    Pull the remote catalog and merge it locally")
	fmt.Println("  status                  Show sync queue status")
	fmt.Println("  run                     Run the sync dispatcher until interrupted")
}

// parseMoney разбирает денежную сумму вида "12.50" в минорные единицы.
// Больше двух знаков после точки - ошибка, деньги не округляем молча.
func parseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, found := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if units < 0 {
		return 0, fmt.Errorf("amount %q must not be negative", s)
	}

	var cents int64
	if found {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q: expected at most two decimal places", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	return units*100 + cents, nil
}
