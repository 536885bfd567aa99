// Package listing renders catalog records into nested lists.
//
// A Template describes one list kind: its class names, the decorators that turn
// a record into a Node, and an optional Async policy that makes the
// container wait for a completion signal per item (thumbnail loads for
// photos). Renderer.Render builds the list, registers every node by handle
// and returns a Pass whose probes feed a Barrier. The barrier settles the
// container indicator once, all-or-nothing.
package listing
