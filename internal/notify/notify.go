// Package notify shows user-facing notifications.
package notify

import "go.uber.org/zap"

// Metrics counts shown notifications.
type Metrics interface {
	NotificationShown()
}

// Logged writes notifications to the host log, the closest thing a
// headless host has to a notification toast.
type Logged struct {
	logger  *zap.Logger
	metrics Metrics
}

// NewLogged creates a log-backed notifier
func NewLogged(logger *zap.Logger, metrics Metrics) *Logged {
	return &Logged{logger: logger, metrics: metrics}
}

// Notify shows one notification.
func (n *Logged) Notify(text string) {
	n.logger.Info("Notification", zap.String("text", text))
	if n.metrics != nil {
		n.metrics.NotificationShown()
	}
}
