// Package config defines the format-agnostic manifest model for the
// generator, along with the Loader interface for reading manifests from
// various sources.
//
// The `config.Model` is the single source of truth for resource discovery
// and the generation pass. Concrete implementations of the interface, such
// as for HCL and YAML, are provided in separate packages.
package config
