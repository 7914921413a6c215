package engine

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Message wraps an event received from a producer together with the
// identifier of the peer that originated it. Locally produced events carry an
// empty origin.
type Message struct {
	OriginID string
	Payload  interface{}
}

// MessageStore is the interface to abstract how messages are buffered in
// memory before being handled by the engine.
type MessageStore interface {
	Put(*Message) bool
	Get() (*Message, bool)
}

type Pattern struct {
	// Match is a function to match a message to this pattern, typically by payload type.
	Match MatchFunc
	// Map is a function to apply to messages before storing them. If not provided, then the message won't get mapped.
	Map MapFunc
	// Store is an abstract message store where we will store the message upon receipt.
	Store MessageStore
	// BeforeStore is a hook for functions to be called when a message is stored.
	BeforeStore []OnMessageFunc
}

type OnMessageFunc func(*Message)

type MatchFunc func(*Message) bool

type MapFunc func(*Message) *Message

// MessageHandler routes incoming messages to per-type message stores and
// notifies a single consumer about pending work.
type MessageHandler struct {
	log      zerolog.Logger
	notify   chan struct{}
	patterns []Pattern
}

func NewMessageHandler(log zerolog.Logger, patterns ...Pattern) *MessageHandler {
	// The 1-message buffer is important to avoid a race condition: the
	// consumer might decide to listen to the notify channel and drain the
	// message stores, leaving a blind period between learning the stores are
	// empty and listening on the notifier again. With the buffer, a message
	// arriving during the blind period leaves a wake-up behind, so the
	// consumer drains the stores again once it returns to the channel.
	notifier := make(chan struct{}, 1)
	enqueuer := &MessageHandler{
		log:      log.With().Str("component", "message_handler").Logger(),
		notify:   notifier,
		patterns: patterns,
	}
	return enqueuer
}

// Process routes the given payload to the first matching pattern's store and
// wakes up the consumer. Payloads that match no pattern are discarded with an
// IncompatibleInputTypeError.
func (e *MessageHandler) Process(originID string, payload interface{}) error {
	msg := &Message{
		OriginID: originID,
		Payload:  payload,
	}

	for _, pattern := range e.patterns {
		if pattern.Match(msg) {
			if pattern.Map != nil {
				msg = pattern.Map(msg)
			}

			for _, apply := range pattern.BeforeStore {
				apply(msg)
			}

			ok := pattern.Store.Put(msg)
			if !ok {
				e.log.Warn().
					Str("msg_type", fmt.Sprintf("%T", payload)).
					Str("origin_id", originID).
					Msg("failed to store message - discarding")
				return nil
			}

			e.doNotify()

			// message can only be matched by one pattern, and processed by one handler
			return nil
		}
	}

	return fmt.Errorf("no matching processor pattern for message of type %T: %w", payload, IncompatibleInputTypeError)
}

// doNotify wakes up the consumer to pick new messages from the queues.
func (e *MessageHandler) doNotify() {
	select {
	// dropping the notification keeps Process non-blocking when the consumer
	// already has a pending wake-up
	case e.notify <- struct{}{}:
	default:
	}
}

func (e *MessageHandler) GetNotifier() <-chan struct{} {
	return e.notify
}
