// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for parsing .hcl job files, evaluating their
// expressions and translating the decoded blocks into the format-agnostic
// config model.
package hcl
