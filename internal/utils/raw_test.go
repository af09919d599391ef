package utils

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func TestDig(t *testing.T) {
	m := decode(t, `{"a": {"b": {"c": 42}}, "s": "x"}`)

	if v := Dig(m, "a", "b", "c"); v != float64(42) {
		t.Errorf("Dig(a.b.c) = %v", v)
	}
	if v := Dig(m, "a", "missing", "c"); v != nil {
		t.Errorf("expected nil for missing path, got %v", v)
	}
	if v := Dig(m, "s", "b"); v != nil {
		t.Errorf("expected nil when walking through a scalar, got %v", v)
	}
	if v := Dig(m); len(AsMap(v)) != 2 {
		t.Errorf("empty path should return the map itself, got %v", v)
	}
}

func TestAsString(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"hello", "hello"},
		{float64(42), "42"},
		{float64(1.5), "1.5"},
		{nil, ""},
		{true, ""},
	}
	for _, tt := range tests {
		if got := AsString(tt.in); got != tt.want {
			t.Errorf("AsString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAsNumber(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{float64(7), 7, true},
		{"1200", 1200, true},
		{"1,200,000", 1200000, true},
		{" 95.5 ", 95.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := AsNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("AsNumber(%v) = %v/%v, want %v/%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFirstString(t *testing.T) {
	m := decode(t, `{"a": "", "b": {"c": "found"}, "d": "later"}`)

	got := FirstString(m, []string{"a"}, []string{"b", "c"}, []string{"d"})
	if got != "found" {
		t.Errorf("FirstString = %q, want %q", got, "found")
	}
	if got := FirstString(m, []string{"x"}, []string{"y"}); got != "" {
		t.Errorf("expected empty string for no match, got %q", got)
	}
}

func TestFirstNumber(t *testing.T) {
	m := decode(t, `{"a": "oops", "b": {"c": 12}, "d": 99}`)

	got, ok := FirstNumber(m, []string{"a"}, []string{"b", "c"}, []string{"d"})
	if !ok || got != 12 {
		t.Errorf("FirstNumber = %v/%v, want 12/true", got, ok)
	}
}

func TestStringList(t *testing.T) {
	var v interface{}
	if err := json.Unmarshal([]byte(`[{"url": "a"}, "b", {"href": "c"}, {"other": 1}, 5]`), &v); err != nil {
		t.Fatal(err)
	}

	got := StringList(v, "url", "href")
	want := []string{"a", "b", "c", "5"}
	if len(got) != len(want) {
		t.Fatalf("StringList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("StringList[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := StringList("not a list"); got != nil {
		t.Errorf("expected nil for non-list, got %v", got)
	}
}

func TestToISO8601(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"epoch seconds", float64(1672531200), "2023-01-01T00:00:00Z"},
		{"epoch milliseconds", float64(1672531200000), "2023-01-01T00:00:00Z"},
		{"rfc3339", "2023-06-15T08:30:00Z", "2023-06-15T08:30:00Z"},
		{"date only", "2023-06-15", "2023-06-15T00:00:00Z"},
		{"numeric string", "1672531200", "2023-01-01T00:00:00Z"},
		{"empty", "", ""},
		{"garbage", "soon", ""},
		{"nil", nil, ""},
		{"zero", float64(0), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToISO8601(tt.in); got != tt.want {
				t.Errorf("ToISO8601(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{"false", false},
		{"yes", false},
		{nil, false},
		{float64(1), false},
	}
	for _, tt := range tests {
		if got := AsBool(tt.in); got != tt.want {
			t.Errorf("AsBool(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
