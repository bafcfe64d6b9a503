package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Wege0921/prodev-be-ecommerce/app/jobs"
	"github.com/Wege0921/prodev-be-ecommerce/config"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/cache"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/database"
	"github.com/Wege0921/prodev-be-ecommerce/pkg/queue"
)

// prodev queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Run queue workers until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			fmt.Println("redis unavailable, falling back to the in-memory queue")
		}
		if config.QueueDriver() == "redis" && cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}
		jobs.RegisterAll()
		jobs.UseDB(database.DB)
		queue.UseDB(database.DB)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		queue.StartWorkers(ctx, config.QueueWorkers())
		<-ctx.Done()
		return nil
	},
}

// prodev queue:failed
var queueFailedCmd = &cobra.Command{
	Use:   "queue:failed",
	Short: "List jobs that exhausted their retries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		records, err := queue.FailedJobRecords(database.DB)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no failed jobs")
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%-5d %-40s attempts=%d failed_at=%s\n  %s\n",
				rec.ID, rec.JobType, rec.Attempts,
				rec.FailedAt.Format("2006-01-02 15:04:05"), rec.Error)
		}
		return nil
	},
}
