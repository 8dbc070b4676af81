// Package engine turns a text resource and its configuration into a generated
// C# declaration unit that exposes the resource content as a string member.
//
// # Design Principles
//
// The package performs no I/O and keeps no state between calls:
//
//  1. Options are resolved once per resource into an immutable ResolvedOptions.
//  2. Names are derived only from the resource path and explicit overrides.
//  3. The content is embedded unchanged inside a raw literal whose fence is
//     longer than any run of quotes in the content.
//
// Running the engine twice on the same inputs yields identical units, and
// resources may be processed concurrently without synchronization.
//
// # Pipeline
//
//	Resolve -> MapNames -> Fence + BuildPreview -> Unit -> Source
//
// Misconfiguration is reported per resource as a *Diagnostic and never stops
// the processing of other resources.
package engine
