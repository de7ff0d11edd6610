package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/frahmantamala/hrtool/internal/mq"
	"github.com/frahmantamala/hrtool/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background consumers for queues fed by the HTTP server.`,
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Consume forwarded domain events",
	Long:  `Consume the RabbitMQ events queue and write an audit line per event.`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var workerQueue string

func startEventWorker() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	lg := logger.LoggerWrapper()

	if config.Messaging.RabbitMQURL == "" {
		fmt.Fprintln(os.Stderr, "RABBITMQ_URL is required for the events worker")
		os.Exit(1)
	}
	queue := getStringFlag(workerQueue, config.Messaging.EventsQueue)

	client, err := mq.NewRabbitMQClient(config.Messaging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to rabbitmq: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = client.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	audit := events.AuditHandler(lg)
	handler := func(ctx context.Context, msg mq.Message) error {
		event, err := mq.DecodeEvent(msg)
		if err != nil {
			lg.Warn("dropping undecodable message", "message_id", msg.ID, "error", err)
			return err
		}
		return audit(ctx, event)
	}

	lg.Info("events worker started", "queue", queue)
	if err := client.Subscribe(ctx, queue, handler); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("events worker stopped", "error", err)
		os.Exit(1)
	}
	lg.Info("events worker shutdown complete")
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func init() {
	eventWorkerCmd.Flags().StringVar(&workerQueue, "queue", "", "queue to consume (overrides config)")

	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
