package notify

import (
	"context"
	"log"
)

// LogNotifier writes notifications to a logger, the standard logger when
// Logger is nil.
type LogNotifier struct {
	Logger *log.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notification) error {
	if l.Logger != nil {
		l.Logger.Printf("notify: [%s] %s: %s", n.Tag, n.Title, n.Body)
		return nil
	}
	log.Printf("notify: [%s] %s: %s", n.Tag, n.Title, n.Body)
	return nil
}
