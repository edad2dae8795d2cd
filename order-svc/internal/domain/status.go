package domain

var statusRank = map[string]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusDelivered: 4,
}

func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok || s == StatusCancelled
}

func IsTerminal(s string) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition allows moving forward along
// pending → confirmed → preparing → ready → delivered, possibly skipping
// steps, or cancelling any order that is not yet terminal.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) || IsTerminal(from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}
