package organization

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"p9e.in/lms/pkg/apperr"
)

var (
	stepUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lms",
		Name:      "step_updates_total",
		Help:      "Registration step updates by step and outcome.",
	}, []string{"step", "result"})

	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lms",
		Name:      "submissions_total",
		Help:      "Submission attempts by outcome.",
	}, []string{"result"})
)

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperr.KindOf(err))
}

func observeStep(step string, err error) {
	stepUpdates.WithLabelValues(step, resultLabel(err)).Inc()
}

func observeSubmission(err error) {
	submissions.WithLabelValues(resultLabel(err)).Inc()
}
