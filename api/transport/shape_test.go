package transport

import "testing"

func TestMatchCollection_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		items     int
		container bool
	}{
		{"bare array", `[{"a":1},{"a":2}]`, 2, false},
		{"data array", `{"data":[{"a":1}],"pagination":{"page":2}}`, 1, true},
		{"data data array", `{"data":{"data":[{"a":1},{"a":2},{"a":3}]}}`, 3, true},
		{"named field", `{"users":[{"a":1}],"pagination":{"page":1}}`, 1, true},
		{"data named field", `{"data":{"users":[{"a":1},{"a":2}],"pagination":{}}}`, 2, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			match := MatchCollection(decode(t, tc.body), "users")
			if len(match.Items) != tc.items {
				t.Errorf("items = %d, want %d", len(match.Items), tc.items)
			}
			if (match.Container != nil) != tc.container {
				t.Errorf("container presence = %v, want %v", match.Container != nil, tc.container)
			}
		})
	}
}

func TestMatchCollection_OrderMatters(t *testing.T) {
	// Both the data-array and named-field probes could hit; data-array is
	// tried first.
	body := decode(t, `{"data":[{"a":1}],"users":[{"a":1},{"a":2}]}`)
	match := MatchCollection(body, "users")
	if len(match.Items) != 1 {
		t.Errorf("expected the data field to win, got %d items", len(match.Items))
	}
}

func TestMatchCollection_NoMatchDegrades(t *testing.T) {
	match := MatchCollection(decode(t, `{"count":3}`), "users")
	if match.Items != nil || match.Container != nil {
		t.Errorf("expected empty match, got %+v", match)
	}
}

func TestMatchCollection_MultipleNames(t *testing.T) {
	match := MatchCollection(decode(t, `{"orders":[{"a":1}]}`), "users", "orders")
	if len(match.Items) != 1 {
		t.Errorf("expected fallback name to match, got %d items", len(match.Items))
	}
}

func TestRecord(t *testing.T) {
	nested := decode(t, `{"data":{"id":"1"}}`)
	out, ok := Record(nested).(map[string]interface{})
	if !ok || out["id"] != "1" {
		t.Errorf("Record did not unwrap a nested object: %v", Record(nested))
	}

	flat := decode(t, `{"id":"2"}`)
	out, ok = Record(flat).(map[string]interface{})
	if !ok || out["id"] != "2" {
		t.Errorf("Record must pass flat objects through: %v", Record(flat))
	}

	// one level only
	deep := decode(t, `{"data":{"data":{"id":"3"}}}`)
	out, _ = Record(deep).(map[string]interface{})
	if _, ok := out["data"]; !ok {
		t.Error("Record must unwrap a single level only")
	}
}

func TestPaginationFrom(t *testing.T) {
	match := MatchCollection(decode(t, `{"users":[],"pagination":{"page":3,"limit":10,"total":42,"totalPages":5}}`), "users")

	var p struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	}
	p.Page, p.Limit = 1, 10
	if err := match.PaginationFrom(&p); err != nil {
		t.Fatalf("PaginationFrom failed: %v", err)
	}
	if p.Page != 3 || p.Total != 42 || p.TotalPages != 5 {
		t.Errorf("pagination = %+v", p)
	}
}

func TestPaginationFrom_MissingBlockKeepsDefaults(t *testing.T) {
	match := MatchCollection(decode(t, `{"users":[]}`), "users")

	var p struct {
		Page int `json:"page"`
	}
	p.Page = 1
	if err := match.PaginationFrom(&p); err != nil {
		t.Fatalf("PaginationFrom failed: %v", err)
	}
	if p.Page != 1 {
		t.Errorf("defaults must survive a missing block, page = %d", p.Page)
	}
}
