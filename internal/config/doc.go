// Package config defines the format-agnostic model of a job file, along with
// the Loader interface implemented by each file format.
//
// The `config.Model` is the single source of truth for the `app` package.
// Concrete implementations of the Loader interface, such as for HCL and YAML,
// are provided in separate packages.
package config
