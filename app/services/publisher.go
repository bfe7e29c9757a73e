package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher is the minimal interface the task handlers need to notify
// about assignments. A nil publisher means notifications are disabled.
type EventPublisher interface {
	PublishTaskAssigned(ctx context.Context, taskID, assigneeID int64, title string) error
}

// RabbitMQPublisher publishes to the pmp.events topic exchange.
type RabbitMQPublisher struct {
	ch *amqp.Channel
}

func NewRabbitMQPublisher(ch *amqp.Channel) *RabbitMQPublisher {
	return &RabbitMQPublisher{ch: ch}
}

type taskAssignedMessage struct {
	Type       string `json:"type"`
	TaskID     int64  `json:"task_id"`
	AssigneeID int64  `json:"assignee_id"`
	Title      string `json:"title"`
	AssignedAt int64  `json:"assigned_at"`
}

// PublishTaskAssigned emits a task.assigned event; a notification worker
// downstream turns it into an email or chat ping.
func (p *RabbitMQPublisher) PublishTaskAssigned(ctx context.Context, taskID, assigneeID int64, title string) error {
	msg := taskAssignedMessage{
		Type:       "task_assigned",
		TaskID:     taskID,
		AssigneeID: assigneeID,
		Title:      title,
		AssignedAt: time.Now().Unix(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(
		ctx,
		"pmp.events",    // exchange
		"task.assigned", // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			MessageId:   uuid.NewString(),
			ContentType: "application/json",
			Body:        body,
		},
	)
}
