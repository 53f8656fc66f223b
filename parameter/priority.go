package parameter

// System Execution Priorities (lower runs first)
const (
	// PriorityMotion integrates every en-route peer before any arrival check
	PriorityMotion = 100
	// PriorityRoute clears reached destinations and assigns new ones
	PriorityRoute = 200
	// PriorityDiagnostics collects per-tick telemetry after all simulation
	PriorityDiagnostics = 1000
)
