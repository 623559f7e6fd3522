// Package metrics registers the bot's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PollTicks counts completed poll ticks per platform
	PollTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamnotify_poll_ticks_total",
		Help: "Number of poll ticks executed",
	}, []string{"platform"})

	// PollErrors counts per-creator fetch or delivery failures
	PollErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamnotify_poll_errors_total",
		Help: "Number of per-creator poll failures",
	}, []string{"platform"})

	// NotificationsSent counts delivered notifications per platform
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "streamnotify_notifications_total",
		Help: "Number of notifications delivered",
	}, []string{"platform"})

	// MessagesRewarded counts chat messages that earned XP
	MessagesRewarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamnotify_messages_xp_total",
		Help: "Number of chat messages that earned XP",
	})
)
