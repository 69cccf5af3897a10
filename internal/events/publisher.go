package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/salon-booking/internal/logging"
)

const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmed is published once a booking has been written.
type BookingConfirmed struct {
	Reference   string    `json:"reference"`
	Backend     string    `json:"backend"`
	ServiceName string    `json:"service_name"`
	StaffName   string    `json:"staff_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ClientEmail string    `json:"client_email"`
	Price       float64   `json:"price"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev BookingConfirmed) error
}

// AMQPPublisher dials the broker on every publish.
type AMQPPublisher struct {
	url    string
	logger *logging.Logger
}

func NewAMQPPublisher(url string, logger *logging.Logger) *AMQPPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &AMQPPublisher{url: url, logger: logger}
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmed) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		BookingConfirmedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.logger.Warn("rabbitmq queue declare failed", "error", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",
		BookingConfirmedQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			MessageId:    ev.Reference,
			Body:         body,
		},
	)
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct {
	logger *logging.Logger
}

func NewNoopPublisher(logger *logging.Logger) *NoopPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishBookingConfirmed(_ context.Context, ev BookingConfirmed) error {
	p.logger.Debug("event publishing disabled", "queue", BookingConfirmedQueue, "reference", ev.Reference)
	return nil
}
