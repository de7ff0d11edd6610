package mq

import "context"

// Message is a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Returning an error requeues it.
type Handler func(ctx context.Context, msg Message) error

type Backend interface {
	Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, queue string, handler Handler) error
	Close() error
}
