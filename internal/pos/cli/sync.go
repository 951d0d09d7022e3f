package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
)

func (c *Cli) runPull(ctx context.Context) error {
	result, err := c.reconciler.Pull(ctx)
	if err != nil {
		return fmt.Errorf("failed to pull catalog: %w", err)
	}

	fmt.Printf("Pulled %d product(s): %d merged, %d kept local, %d skipped\n",
		result.Pulled, result.Merged, result.Conflicts, result.Skipped)
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	pending, err := c.queue.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}

	failed, err := c.queue.ListFailed(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}

	fmt.Println("=== Sync Status ===")
	fmt.Printf("Pending events: %d\n", pending)
	fmt.Printf("Failed events:  %d\n", len(failed))
	for _, ev := range failed {
		fmt.Printf("  %s %s key=%s attempts=%d: %s\n",
			ev.CreatedAt.Format("2006-01-02 15:04"), ev.Type, ev.Key, ev.Attempts, ev.LastError)
	}
	return nil
}

// runDispatcher гоняет диспетчер доставки до Ctrl-C
func (c *Cli) runDispatcher(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Sync dispatcher running, press Ctrl-C to stop")
	return c.dispatcher.Run(ctx)
}
