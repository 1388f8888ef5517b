package dateparse

// Tier identifies which interpretation strategy produced a result. Tiers are
// tried in declaration order.
type Tier int

const (
	TierUnix Tier = iota + 1
	TierRFC3339
	TierRFC2822
	TierOffset
	TierNaive
	TierNaiveComma
	TierDate
	TierDateComma
)

func (t Tier) String() string {
	switch t {
	case TierUnix:
		return "unix"
	case TierRFC3339:
		return "rfc3339"
	case TierRFC2822:
		return "rfc2822"
	case TierOffset:
		return "offset"
	case TierNaive:
		return "naive"
	case TierNaiveComma:
		return "naive-comma"
	case TierDate:
		return "date"
	case TierDateComma:
		return "date-comma"
	default:
		return "unknown"
	}
}
