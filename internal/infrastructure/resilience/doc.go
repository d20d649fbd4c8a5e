/*
Package resilience guards the relay's outbound Gemini calls with a circuit
breaker.

When the provider keeps failing, the breaker opens and chat, terminal, maps
and speech requests fail fast with ErrCircuitOpen. The handlers turn that
into the same static 500 they return for any provider failure, and
/api/metrics/snapshot reports the breaker state. After Timeout a limited
number of trial calls are let through; enough consecutive successes close
it again.

A caller hanging up is not the provider's fault, so the relay builds its
breaker with IsSuccessful set to IgnoreCancellation.

	breaker := resilience.New("gemini", resilience.Settings{
		Timeout:      cfg.Breaker.Timeout,
		ReadyToTrip:  func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 5 },
		IsSuccessful: resilience.IgnoreCancellation,
	})

	text, err := resilience.Call(ctx, breaker, func(ctx context.Context) (string, error) {
		return provider.Terminal(ctx, "ls")
	})

A nil *Breaker runs calls unguarded, which keeps tests and the breaker-less
configuration simple.
*/
package resilience
