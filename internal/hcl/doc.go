// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for manifest parsing, attribute evaluation,
// and the translation of cty values into option strings.
package hcl
