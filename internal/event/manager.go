package event

import (
	"github.com/nu7hatch/gouuid"
	"go.uber.org/zap"
	"time"
)

var listeners = make([]*Listener, 0)

type Listener struct {
	eventType Type
	channel   chan Envelope
}

func AddEventListener(eventType Type, callback func(msg Envelope)) {
	zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: AddListener")

	listener := Listener{
		eventType: eventType,
		channel:   make(chan Envelope),
	}

	listeners = append(listeners, &listener)

	go func() {
		for {
			msg := <-listener.channel
			callback(msg)
		}
	}()
}

func EmitEvent(eventType Type, payload interface{}) {
	envelope := Envelope{Id: eventId(), Type: eventType, Time: time.Now().UTC(), Payload: payload}

	if len(listeners) == 0 {
		zap.L().Debug("No event listeners available")
	}
	for _, listener := range listeners {
		if listener.eventType == eventType {
			zap.L().With(zap.String("type", string(eventType)), zap.String("id", envelope.Id)).Debug("EventManager: Emitting event")
			go func(handler chan Envelope) {
				handler <- envelope
			}(listener.channel)
		}
	}
}

func eventId() string {
	u, _ := uuid.NewV4()
	return u.String()
}
