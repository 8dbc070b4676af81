// Package app contains the core application logic. It wires the manifest
// loader, resource discovery, the generation pass, the unit store and the
// output writer, decoupled from any specific entrypoint like a CLI.
package app
