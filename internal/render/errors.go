package render

import "fmt"

// MissingFieldError reports a required descriptor field that is absent or
// empty. Field uses the attribute names queueType, scriptPath, commandList
// and jobName.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required job field %q", e.Field)
}

// UnsupportedDialectError reports a queue type with no renderer.
type UnsupportedDialectError struct {
	QueueType string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported queue type %q: must be 'SGE' or 'PBS'", e.QueueType)
}
