// Package render turns a job.Descriptor into scheduler directive text.
//
// Two dialects are provided: SGE (grid engine, "#$" directives) and PBS
// ("#PBS" directives). Rendering is pure: the same descriptor and Options
// always yield the same lines, and nothing is written anywhere. A descriptor
// is validated before any line is produced.
package render
