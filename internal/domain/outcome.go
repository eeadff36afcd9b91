package domain

// ApplyOutcome is the result of pushing a confirmed payment through the
// idempotency gate.
type ApplyOutcome int

const (
	// ApplyApplied means this delivery won the gate and credits were applied.
	ApplyApplied ApplyOutcome = iota + 1
	// ApplyDuplicate means the trade number was already processed.
	ApplyDuplicate
	// ApplyForeign means the trade number does not belong to this system.
	ApplyForeign
)

func (o ApplyOutcome) String() string {
	switch o {
	case ApplyApplied:
		return "applied"
	case ApplyDuplicate:
		return "duplicate"
	case ApplyForeign:
		return "foreign"
	default:
		return "unknown"
	}
}

// CreditOutcome is the result of spending a credit on a record.
type CreditOutcome int

const (
	CreditUsed CreditOutcome = iota + 1
	CreditAlreadyViewed
	CreditInsufficient
)

func (o CreditOutcome) String() string {
	switch o {
	case CreditUsed:
		return "used"
	case CreditAlreadyViewed:
		return "already_viewed"
	case CreditInsufficient:
		return "insufficient"
	default:
		return "unknown"
	}
}

// CreditResult carries the outcome together with the balance after it.
type CreditResult struct {
	Outcome CreditOutcome
	Credits int
}
