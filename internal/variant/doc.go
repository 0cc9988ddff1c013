// Package variant classifies LoRA checkpoint files into High/Low noise
// variants and merges matched pairs into single card entries. It is structured
// into small files by concern:
//
//   - classify.go: marker vocabulary, tokenizer, Classification, the pure
//     classifier over model records and raw strings.
//   - keys.go: key normalization fallback chain and the injected unique-id
//     generator used as its terminal step.
//   - eligible.go: the merge eligibility predicate.
//   - merge.go: the grouping engine (order-preserving group-by over seeds).
//   - order.go: deterministic variant ordering inside a merged card.
//
// The engine is stateless between calls, performs no I/O, and is safe to
// invoke from any goroutine. A single Merge call owns its own bookkeeping for
// the duration of the call.
package variant
