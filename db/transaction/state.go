package transaction

// State identifies one running transaction to its context. It is supplied by
// the transaction execution layer when the transaction registers and handed
// back to nested transactions that join an embeddable context.
type State struct {
	// ID is the transaction id, assigned by the execution layer.
	ID uint64
	// ReadOnly marks transactions that perform no writes.
	ReadOnly bool
}

// Result is the final outcome of a transaction, recorded exactly once on its
// context and read afterward by replication and telemetry collaborators.
type Result struct {
	ID                  uint64
	HasFailedOperations bool
}

// phase tracks the context lifecycle: Created -> Active -> Ended. There are
// no backward transitions.
type phase int

const (
	phaseCreated phase = iota
	phaseActive
	phaseEnded
)

func (p phase) String() string {
	switch p {
	case phaseCreated:
		return "created"
	case phaseActive:
		return "active"
	case phaseEnded:
		return "ended"
	}
	return "unknown"
}
