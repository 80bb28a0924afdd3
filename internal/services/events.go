package services

import (
	"encoding/json"
	"log"
)

// Event routing keys published to the orders exchange.
const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderStatusChanged = "order.status_changed"
)

// EventPublisher abstracts the RabbitMQ client so services can be tested
// without a broker. A nil publisher disables publishing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent marshals and publishes a lifecycle event. Publishing is
// best effort: a broker failure is logged, never surfaced to the caller,
// because the state change has already been committed.
func publishEvent(publisher EventPublisher, routingKey string, payload map[string]interface{}) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
