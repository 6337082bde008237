package metrics

import "sync/atomic"

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Checkout counters, exposed read-only through the debug endpoint.
var (
	SummariesComputed   Counter
	CouponsDisqualified Counter
	SessionsCreated     Counter
	SessionsConfirmed   Counter
	StaleSelections     Counter
	StockShortfalls     Counter
)

// Snapshot returns the current counter values keyed by name.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"summaries_computed":   SummariesComputed.Load(),
		"coupons_disqualified": CouponsDisqualified.Load(),
		"sessions_created":     SessionsCreated.Load(),
		"sessions_confirmed":   SessionsConfirmed.Load(),
		"stale_selections":     StaleSelections.Load(),
		"stock_shortfalls":     StockShortfalls.Load(),
	}
}
