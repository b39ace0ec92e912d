// Package script writes rendered job scripts to disk.
package script

import (
	"bufio"
	"fmt"
	"os"
)

// IOError reports a failure to create or write a script file.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s script %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Write creates or truncates path and writes each line followed by a
// newline. The file is executable by its owner and always closed.
func Write(path string, lines []string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return &IOError{Path: path, Op: "create", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Path: path, Op: "close", Err: cerr}
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return &IOError{Path: path, Op: "write", Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &IOError{Path: path, Op: "write", Err: err}
	}
	return nil
}
