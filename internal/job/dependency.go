package job

import (
	"fmt"
	"regexp"
	"strconv"
)

var arraySpecRe = regexp.MustCompile(`^([^\[\]\s]+)(?:\[(\d*)\])?$`)

// ArrayDependency is a dependency on a job array. Count is the number of
// array tasks that must finish; zero means the whole array.
type ArrayDependency struct {
	ArrayID string
	Count   int
}

// ParseArrayDependency parses "arrayId", "arrayId[]" or "arrayId[count]".
func ParseArrayDependency(spec string) (ArrayDependency, error) {
	m := arraySpecRe.FindStringSubmatch(spec)
	if m == nil {
		return ArrayDependency{}, fmt.Errorf("invalid array dependency %q: want arrayId[count]", spec)
	}
	dep := ArrayDependency{ArrayID: m[1]}
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return ArrayDependency{}, fmt.Errorf("invalid array dependency count in %q: %w", spec, err)
		}
		if n == 0 {
			return ArrayDependency{}, fmt.Errorf("invalid array dependency %q: count must be positive, use %s[] for the whole array", spec, m[1])
		}
		dep.Count = n
	}
	return dep, nil
}

// String renders the dependency the way PBS expects it: "id[count]", or
// "id[]" for the entire array.
func (a ArrayDependency) String() string {
	if a.Count > 0 {
		return fmt.Sprintf("%s[%d]", a.ArrayID, a.Count)
	}
	return a.ArrayID + "[]"
}
