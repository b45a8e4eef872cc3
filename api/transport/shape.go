package transport

// Match is the outcome of a successful shape probe: the collection itself
// and, when the collection sat inside an object, that containing object
// (useful for sibling fields such as pagination or stats).
type Match struct {
	Items     []interface{}
	Container map[string]interface{}
}

// matcher is one tagged attempt at locating a collection in a loosely
// shaped payload.
type matcher struct {
	name  string
	probe func(v interface{}, names []string) (Match, bool)
}

// The upstream nests list payloads inconsistently: sometimes a bare array,
// sometimes {data: [...]}, sometimes {data: {data: [...]}}, sometimes a
// named field ({users: [...], pagination: {...}}). The matchers are tried
// in order and the first structural hit wins.
var collectionMatchers = []matcher{
	{"bare-array", probeBareArray},
	{"data-array", probeDataArray},
	{"data-data-array", probeDataDataArray},
	{"named-field", probeNamedField},
	{"data-named-field", probeDataNamedField},
}

// MatchCollection runs the ordered shape matchers against an unwrapped
// payload. It never fails: when nothing matches it returns an empty Match
// so callers degrade to an empty collection instead of crashing.
func MatchCollection(v interface{}, names ...string) Match {
	for _, m := range collectionMatchers {
		if match, ok := m.probe(v, names); ok {
			return match
		}
	}
	return Match{}
}

func probeBareArray(v interface{}, _ []string) (Match, bool) {
	arr, ok := v.([]interface{})
	if !ok {
		return Match{}, false
	}
	return Match{Items: arr}, true
}

func probeDataArray(v interface{}, _ []string) (Match, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return Match{}, false
	}
	arr, ok := obj["data"].([]interface{})
	if !ok {
		return Match{}, false
	}
	return Match{Items: arr, Container: obj}, true
}

func probeDataDataArray(v interface{}, _ []string) (Match, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return Match{}, false
	}
	inner, ok := obj["data"].(map[string]interface{})
	if !ok {
		return Match{}, false
	}
	arr, ok := inner["data"].([]interface{})
	if !ok {
		return Match{}, false
	}
	return Match{Items: arr, Container: inner}, true
}

func probeNamedField(v interface{}, names []string) (Match, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return Match{}, false
	}
	return probeFields(obj, names)
}

// probeDataNamedField handles {data: {orders: [...], pagination: {...}}},
// the shape the orders endpoint favours.
func probeDataNamedField(v interface{}, names []string) (Match, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return Match{}, false
	}
	inner, ok := obj["data"].(map[string]interface{})
	if !ok {
		return Match{}, false
	}
	return probeFields(inner, names)
}

func probeFields(obj map[string]interface{}, names []string) (Match, bool) {
	for _, name := range names {
		if arr, ok := obj[name].([]interface{}); ok {
			return Match{Items: arr, Container: obj}, true
		}
	}
	return Match{}, false
}

// Record unwraps the single-object analogue of the collection shapes:
// detail endpoints sometimes answer {data: {...}} inside the already
// unwrapped envelope. One level only; anything else passes through.
func Record(v interface{}) interface{} {
	if obj, ok := v.(map[string]interface{}); ok {
		if inner, ok := obj["data"].(map[string]interface{}); ok {
			return inner
		}
	}
	return v
}

// PaginationFrom decodes the pagination block next to a matched collection,
// applying page/limit defaults when the block is missing or malformed.
func (m Match) PaginationFrom(dst interface{}) error {
	if m.Container == nil {
		return nil
	}
	block, ok := m.Container["pagination"]
	if !ok {
		return nil
	}
	return DecodeValue(block, dst)
}
