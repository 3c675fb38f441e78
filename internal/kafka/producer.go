package kafka

import (
	"context"
	"encoding/json"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"eventspark/internal/models"
)

// Producer streams booking domain events. Publishing happens after commit
// and is best-effort; callers log failures instead of propagating them.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
	}
	return &Producer{writer: writer}
}

type bookingEvent struct {
	BookingID   string    `json:"bookingId"`
	EventID     string    `json:"eventId"`
	SeatIDs     []string  `json:"seatIds"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type seatStatusEvent struct {
	EventID    string    `json:"eventId"`
	SeatIDs    []string  `json:"seatIds"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (p *Producer) PublishBookingConfirmed(booking models.Booking) error {
	return p.publishBooking(TopicBookingConfirmed, booking)
}

func (p *Producer) PublishBookingCancelled(booking models.Booking) error {
	return p.publishBooking(TopicBookingCancelled, booking)
}

func (p *Producer) publishBooking(topic string, booking models.Booking) error {
	payload, err := json.Marshal(bookingEvent{
		BookingID:   booking.BookingID,
		EventID:     booking.EventID,
		SeatIDs:     booking.SeatIDs,
		TotalAmount: booking.TotalAmount,
		Status:      booking.Status,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(booking.BookingID),
		Value: payload,
	})
}

func (p *Producer) PublishSeatStatusChanged(eventID string, seatIDs []string, status string) error {
	payload, err := json.Marshal(seatStatusEvent{
		EventID:    eventID,
		SeatIDs:    seatIDs,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: TopicSeatStatusChanged,
		Key:   []byte(eventID),
		Value: payload,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
