package services

// Outcome classifies how a verification attempt ended.
type Outcome int

const (
	OutcomeVerified Outcome = iota
	OutcomeAlreadyVerified
	OutcomeInvalidRequest
	OutcomeSignatureInvalid
	OutcomeOrderNotFound
	OutcomeOwnerMismatch
	OutcomePersistenceFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeAlreadyVerified:
		return "already_verified"
	case OutcomeInvalidRequest:
		return "invalid_request"
	case OutcomeSignatureInvalid:
		return "signature_invalid"
	case OutcomeOrderNotFound:
		return "order_not_found"
	case OutcomeOwnerMismatch:
		return "owner_mismatch"
	case OutcomePersistenceFailed:
		return "persistence_failed"
	default:
		return "unknown"
	}
}

// VerificationResult is the detailed result of Reconcile. Err is nil for
// the two successful outcomes and for OutcomeSignatureInvalid.
type VerificationResult struct {
	Outcome      Outcome
	Err          error
	ItemsCreated int
}

// OK reports whether the order is paid, either now or by an earlier call.
func (r VerificationResult) OK() bool {
	return r.Outcome == OutcomeVerified || r.Outcome == OutcomeAlreadyVerified
}
