package service

import (
	"context"
	"fmt"

	"klinik/config"
	"klinik/infras/kafka"
	appointmentDto "klinik/internal/domains/appointment/model/dto"
	"klinik/internal/domains/notification/model"
	"klinik/internal/domains/notification/repository"
	"klinik/shared/constant"
	gModel "klinik/shared/model"
	"klinik/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Consumer turns appointment events into notification rows for the account
// that made the booking.
type Consumer struct {
	repo  repository.Notification
	kafka kafka.Client
	cfg   *config.Config
}

func NewConsumer(repo repository.Notification, kafkaClient kafka.Client, cfg *config.Config) *Consumer {
	return &Consumer{
		repo:  repo,
		kafka: kafkaClient,
		cfg:   cfg,
	}
}

// Start blocks reading the appointment events topic until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	if !c.cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, notification consumer not started.")

		return
	}

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, constant.KafkaTopicAppointmentEvents, func(message kafkaGo.Message) {
		c.handle(ctx, message)
	})
}

func (c *Consumer) handle(ctx context.Context, message kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[appointmentDto.AppointmentEvent](message)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode appointment event")

		return
	}

	event, ok := decoded.Value.(appointmentDto.AppointmentEvent)
	if !ok {
		log.Error().Msg("unexpected appointment event payload")

		return
	}

	if event.BookedBy == constant.Empty {
		return
	}

	title, body := describeEvent(event)

	notification := model.Notification{
		ID:        uuid.NewString(),
		AccountID: event.BookedBy,
		Title:     title,
		Body:      body,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.SystemActor,
			ModifiedBy: constant.SystemActor,
		},
	}

	if err := c.repo.Insert(ctx, notification); err != nil {
		log.Error().Err(err).Str("appointmentID", event.AppointmentID).Msg("failed to store notification")
	}
}

func describeEvent(event appointmentDto.AppointmentEvent) (string, string) {
	switch event.Type {
	case appointmentDto.EventTypeStatusChanged:
		return "Appointment updated",
			fmt.Sprintf("Your appointment on %s is now %s.", event.BookingDate, event.Status)
	default:
		return "Appointment booked",
			fmt.Sprintf("Your appointment on %s has been received with status %s.", event.BookingDate, event.Status)
	}
}
