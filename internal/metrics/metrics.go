// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on the /debug/vars endpoint of any server that
// mounts http.DefaultServeMux.
package metrics

import "expvar"

// Operation counters.
var (
	TurnsTotal          = expvar.NewInt("tripwise_turns_total")
	ClarificationsTotal = expvar.NewInt("tripwise_clarifications_total")
	LLMFallbacksTotal   = expvar.NewInt("tripwise_llm_fallbacks_total")
	LookupFailuresTotal = expvar.NewInt("tripwise_lookup_failures_total")
	SessionResetsTotal  = expvar.NewInt("tripwise_session_resets_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
