package job

// Pair is a single resource directive: one key with one value.
type Pair struct {
	Key   string
	Value string
}

// Resources is an insertion-ordered multimap of extra scheduler directives.
// Keys keep the order of their first Add, values keep append order.
// The zero value is ready to use.
type Resources struct {
	keys   []string
	values map[string][]string
}

// Add appends value under key, creating the key on first use.
func (r *Resources) Add(key, value string) {
	if r.values == nil {
		r.values = make(map[string][]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = append(r.values[key], value)
}

// Len reports the number of (key, value) pairs.
func (r Resources) Len() int {
	n := 0
	for _, k := range r.keys {
		n += len(r.values[k])
	}
	return n
}

// Pairs flattens the map into one Pair per value, keys in insertion order.
func (r Resources) Pairs() []Pair {
	pairs := make([]Pair, 0, r.Len())
	for _, k := range r.keys {
		for _, v := range r.values[k] {
			pairs = append(pairs, Pair{Key: k, Value: v})
		}
	}
	return pairs
}
