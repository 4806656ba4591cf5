package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderConfirmed = "order.confirmed"
	EventOrderRefunded  = "order.refunded"
)

type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Producer   string    `json:"producer"`
	OrderID    string    `json:"order_id"`
}

// Publisher は確定・返金の通知イベントを発行する。
// 通知の失敗は通知側の問題として処理し、注文の遷移には波及させない
type Publisher struct {
	producer *Producer
	name     string
}

func NewPublisher(producer *Producer, name string) *Publisher {
	return &Publisher{producer: producer, name: name}
}

func (p *Publisher) OrderConfirmed(orderID string) {
	p.publish(EventOrderConfirmed, orderID)
}

func (p *Publisher) OrderRefunded(orderID string) {
	p.publish(EventOrderRefunded, orderID)
}

func (p *Publisher) publish(eventType, orderID string) {
	ev := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   p.name,
		OrderID:    orderID,
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return
	}
	p.producer.Publish([]byte(orderID), value,
		kafka.Header{Key: "x-event-type", Value: []byte(eventType)},
	)
}
