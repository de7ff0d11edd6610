package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/frahmantamala/hrtool/internal/mq"
	"github.com/frahmantamala/hrtool/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish test events to check the audit log and the RabbitMQ forwarding path`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event through the event bus. When RABBITMQ_URL is set it is also forwarded to the events queue.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := publishTestEvent(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to publish event: %v\n", err)
			os.Exit(1)
		}
	},
}

var eventData string

func publishTestEvent(eventType string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	bus := events.NewEventBus(lg)
	bus.SubscribeAll(events.AuditHandler(lg))
	if config.Messaging.RabbitMQURL != "" {
		client, err := mq.NewRabbitMQClient(config.Messaging)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		mq.NewForwarder(client, config.Messaging.EventsQueue, lg).Register(bus)
	}

	ctx := context.Background()
	testEvent := events.NewEvent(ctx, eventType, uuid.New(), map[string]interface{}{
		"message": eventData,
		"source":  "cli-command",
	})

	lg.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)
	return bus.PublishSync(ctx, testEvent)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
