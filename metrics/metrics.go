package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProposalTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "grant_proposal_transitions_total", Help: "Proposal status transitions by target status"},
		[]string{"status"},
	)
	NotificationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "grant_notifications_created_total", Help: "Total notification rows created"},
	)
	ReportsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "grant_progress_reports_total", Help: "Total progress reports submitted"},
	)
)

func Register() {
	prometheus.MustRegister(ProposalTransitions, NotificationsCreated, ReportsSubmitted)
}
