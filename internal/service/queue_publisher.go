// Package queue_publisher pushes confirmed bookings onto RabbitMQ for
// downstream consumers such as ticket delivery mails. Publishing is
// best effort: errors are logged and returned, and the booking flow
// ignores the return value.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gigstage/music-event-backend/internal/queue"
)

const bookingConfirmedQueue = "booking.confirmed"

// BookingPublisher publishes booking lifecycle events. The broker URL
// is fixed at construction from configuration; a connection is dialed
// per publish because bookings are rare relative to reads and a held
// connection would need reconnect handling the flow cannot justify.
type BookingPublisher struct {
	url string
}

func NewBookingPublisher(url string) *BookingPublisher {
	return &BookingPublisher{url: url}
}

// PublishBookingConfirmed sends ev to the booking.confirmed queue as a
// persistent JSON message. The queue declare is idempotent and durable
// so messages survive broker restarts.
func (p *BookingPublisher) PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(bookingConfirmedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",                    // default exchange
		bookingConfirmedQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
	return err
}
