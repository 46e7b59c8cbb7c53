package metrics

// Entity labels used by EntitiesTotal
const (
	EntityUsers        = "users"
	EntityProjects     = "projects"
	EntityPositions    = "positions"
	EntityApplications = "applications"
)

func (m *Metrics) IncrementUserRegistered() {
	m.safeExecute("IncrementUserRegistered", func() {
		m.UserRegisteredTotal.Inc()
	})
}

func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

func (m *Metrics) IncrementApplicationSubmitted() {
	m.safeExecute("IncrementApplicationSubmitted", func() {
		m.ApplicationSubmittedTotal.Inc()
	})
}

// IncrementApplicationDecision counts an approve or reject; decision is the resulting status
func (m *Metrics) IncrementApplicationDecision(decision string) {
	m.safeExecute("IncrementApplicationDecision", func() {
		m.ApplicationDecisionsTotal.WithLabelValues(decision).Inc()
	})
}

func (m *Metrics) SetEntityTotal(entity string, count int64) {
	m.safeExecute("SetEntityTotal", func() {
		m.EntitiesTotal.WithLabelValues(entity).Set(float64(count))
	})
}

func (m *Metrics) SetApplicationsByStatus(status string, count int64) {
	m.safeExecute("SetApplicationsByStatus", func() {
		m.ApplicationsByStatus.WithLabelValues(status).Set(float64(count))
	})
}
