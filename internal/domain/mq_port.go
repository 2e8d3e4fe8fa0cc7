package domain

import "context"

type Message struct {
	Key 	[]byte
	Value 	[]byte
}

type PublisherPort interface {
	Publish(ctx context.Context, topic string, msgs ...Message) error
}
