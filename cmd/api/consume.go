package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-prospector/internal/infra/queue"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Log outreach events from the message queue",
	Long: `Consume the outreach event queue and write every delivered message to
the structured log. Events that cannot be decoded are dead-lettered.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.Queue.URL == "" {
			return errors.New("RABBITMQ_URL is required to consume events")
		}
		rmq, err := queue.NewRabbitMQ(a.cfg.Queue.URL)
		if err != nil {
			return err
		}
		a.rabbit = rmq

		worker := queue.NewWorker(rmq.Ch, queue.LogHandler{Logger: a.logger}, a.logger)
		return worker.Run(ctx, queue.QueueName)
	},
}
