package validator

// Validator validates annotated structs.
type Validator interface {
	// Validate returns nil when data passes all rules, otherwise an
	// error describing the failing fields.
	Validate(data any) error
}
