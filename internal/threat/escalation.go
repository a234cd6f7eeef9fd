package threat

// Notification priorities carried by escalation events.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
)

// EscalationEvent says a stored detection is severe enough that the user
// must be alerted. The event only records the decision; delivering the
// notification is the messaging collaborator's job.
type EscalationEvent struct {
	Category    Category
	Level       Severity
	DetectionID string
	Priority    string
}

// Escalate decides whether a result warrants an escalation event. An event
// is produced only for detected threats at high or critical severity;
// critical maps to urgent priority, high to high.
func Escalate(result Result, detectionID string) (*EscalationEvent, bool) {
	if !result.ThreatDetected || !result.ThreatLevel.AtLeast(SeverityHigh) {
		return nil, false
	}

	priority := PriorityHigh
	if result.ThreatLevel == SeverityCritical {
		priority = PriorityUrgent
	}

	return &EscalationEvent{
		Category:    result.ThreatType,
		Level:       result.ThreatLevel,
		DetectionID: detectionID,
		Priority:    priority,
	}, true
}
