// Package channels provides CSP-style typed channels, a fair select over
// heterogeneous operations, and the cancellable-completion primitive they
// share.
//
// Core types
//   - Channel[T]: a typed rendezvous with an optional fixed-capacity FIFO
//     buffer. Supports blocking Send/Receive, non-blocking TrySend/TryReceive,
//     and the WaitUntilReadable/WaitUntilWritable primitives used by Select.
//   - Select: races a keyed set of selectable channel operations, plain
//     completions, and completion factories, and commits exactly one.
//   - CancellableCompletion[T]: a one-shot value-or-error token whose
//     lifetime can be bound to a context.Context.
//
// Defaults
// A zero-capacity Channel is unbuffered (a pure rendezvous point). Select
// shuffles its arms before racing them so that ties break uniformly at
// random; see WithChannelMetrics and WithSelectMetrics for the available
// options.
//
// Composition
// On top of the core, this package provides Merge (fan-in), PartitionTime
// (time-boxed batching), Timeout (a time.After-shaped Channel), MapReadable/
// MapWritable (adapters), and NewIterator (a pull-style async view over
// repeated Receive calls). These are mechanical composition over the core
// primitives above and carry no additional invariants of their own.
package channels
