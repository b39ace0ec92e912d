// Package job holds the scheduler-agnostic description of a batch job.
//
// A Descriptor is built incrementally: attributes are stored with Set,
// prerequisite jobs are appended with AddWait and AddWaitArray, and extra
// scheduler directives are accumulated with AddResource. Nothing is validated
// while accumulating; the render package validates a Descriptor when it is
// turned into a script.
package job
