package models

// EventMessage is a serialized event bound for an output destination.
type EventMessage struct {
	Topic   string
	Message []byte
}
