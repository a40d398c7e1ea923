package event

import (
	"github.com/sirupsen/logrus"

	"crm/pkg/domain/service"
)

// NewLogDispatcher returns a dispatcher that records every domain event as a
// structured log entry. Dispatch never fails, so services can fire events
// best-effort without caring about delivery.
func NewLogDispatcher(log *logrus.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

type LogDispatcher struct {
	log *logrus.Logger
}

func (d *LogDispatcher) Dispatch(e service.Event) error {
	d.log.WithFields(logrus.Fields{
		"event":   e.Type(),
		"payload": e,
	}).Info("domain event")
	return nil
}
