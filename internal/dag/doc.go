// Package dag orders jobs that wait on each other. Nodes are job names and an
// edge from a to b means b is submitted after a, so b can hold on a's
// scheduler id.
package dag
