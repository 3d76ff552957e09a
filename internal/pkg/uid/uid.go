// Package uid provides small generators for the identifier shapes the
// application needs: sortable int64 database ids and string correlation
// ids.
package uid

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
