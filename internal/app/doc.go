// Package app contains the core application logic: it loads job files,
// orders jobs by their after dependencies, writes or previews each script,
// submits what was asked for and reports the outcome. It is decoupled from
// any specific entrypoint like a CLI.
package app
