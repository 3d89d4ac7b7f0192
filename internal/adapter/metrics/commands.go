package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/epdtext-web/internal/domain"
)

// CommandMetrics tracks renderer command delivery and rejected input.
type CommandMetrics struct {
	CommandsSent       *prometheus.CounterVec
	CommandsFailed     *prometheus.CounterVec
	SendDuration       prometheus.Histogram
	ScreenNameRejected *prometheus.CounterVec
}

func NewCommandMetrics(reg prometheus.Registerer) *CommandMetrics {
	m := &CommandMetrics{
		CommandsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ipc",
			Name:      "commands_sent_total",
			Help:      "Commands delivered to the renderer queue, by action.",
		}, []string{"action"}),
		CommandsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ipc",
			Name:      "command_failures_total",
			Help:      "Commands that could not be delivered, by action and reason.",
		}, []string{"action", "reason"}),
		SendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ipc",
			Name:      "send_duration_seconds",
			Help:      "Time spent in a single queue send.",
			Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		ScreenNameRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screen_name_rejections_total",
			Help:      "Requests refused because the screen name failed validation, by action.",
		}, []string{"action"}),
	}

	reg.MustRegister(m.CommandsSent, m.CommandsFailed, m.SendDuration, m.ScreenNameRejected)
	return m
}

func (m *CommandMetrics) CommandSent(action string, duration time.Duration) {
	m.CommandsSent.WithLabelValues(action).Inc()
	m.SendDuration.Observe(duration.Seconds())
}

func (m *CommandMetrics) CommandFailed(action string, err error, duration time.Duration) {
	m.CommandsFailed.WithLabelValues(action, FailureReason(err)).Inc()
	m.SendDuration.Observe(duration.Seconds())
}

func (m *CommandMetrics) ScreenNameRejectedFor(action string) {
	m.ScreenNameRejected.WithLabelValues(action).Inc()
}

// FailureReason maps a send error to a bounded label value.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrChannelFull):
		return "full"
	case errors.Is(err, domain.ErrSendTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrChannelClosed):
		return "closed"
	case errors.Is(err, domain.ErrMessageTooLarge):
		return "too_large"
	default:
		return "other"
	}
}
