package recommend

type AvailabilityStatus string

const (
	Available AvailabilityStatus = "available"
	Partial   AvailabilityStatus = "partial"
	Missing   AvailabilityStatus = "missing"
)

// Classify compares the quantity a recipe needs with what the user holds.
// Both quantities must already be in the same unit. Nothing required is
// always available; a malformed required quantity is missing and a malformed
// user quantity counts as zero.
func Classify(required, user float64) AvailabilityStatus {
	if !validQuantity(required) {
		return Missing
	}
	if !validQuantity(user) {
		user = 0
	}
	switch {
	case required == 0 || user >= required:
		return Available
	case user > 0:
		return Partial
	default:
		return Missing
	}
}

// credit is the covered fraction of a required quantity, in [0,1].
func credit(required, user float64) float64 {
	switch Classify(required, user) {
	case Available:
		return 1
	case Partial:
		return user / required
	}
	return 0
}
