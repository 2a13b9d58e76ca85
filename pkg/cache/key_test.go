package cache

import "testing"

func TestSearchKey(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"phone", "search_phone"},
		{"Phone", "search_phone"},
		{"LAPTOP", "search_laptop"},
		{"", "search_"},
	}

	for _, tt := range tests {
		if got := SearchKey(tt.query); got != tt.want {
			t.Errorf("SearchKey(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"electronics", "category_electronics"},
		{"Electronics", "category_electronics"},
		{"HOME", "category_home"},
	}

	for _, tt := range tests {
		if got := CategoryKey(tt.category); got != tt.want {
			t.Errorf("CategoryKey(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

// Identical literal text must never collide across namespaces.
func TestKeyIsolation(t *testing.T) {
	if SearchKey("foo") == CategoryKey("foo") {
		t.Error("search and category keys must not collide for identical text")
	}
	if SearchKey(KeyAllProducts) == KeyAllProducts {
		t.Error("search key must not collide with the allProducts key")
	}
}

func TestKeyDeterminism(t *testing.T) {
	if SearchKey("Phone") != SearchKey("phone") {
		t.Error("case variants of a query must derive the same key")
	}
	if CategoryKey("Home") != CategoryKey("HOME") {
		t.Error("case variants of a category must derive the same key")
	}
}
