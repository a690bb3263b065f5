// Package resilience limits how much work runs at once.
//
// A Bulkhead admits at most MaxConcurrent calls. Callers beyond the limit
// either queue until a slot frees or are rejected, depending on MaxWait:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{
//	    Name:          "dispatch",
//	    MaxConcurrent: 4,
//	    MaxWait:       resilience.WaitForever,
//	})
//	err := bh.Execute(ctx, func() error {
//	    return roundTrip(ctx)
//	})
package resilience
