package differ

// Option is a functional option for configuring Differ
type Option func(*differ)

// WithFuzzyMatching enables/disables weak folded-name matching.
// Disabling it suppresses suspect classifications entirely.
func WithFuzzyMatching(enabled bool) Option {
	return func(d *differ) {
		d.fuzzy = enabled
	}
}

// WithRecency enables/disables the record timestamp recency rule.
// When disabled, timestamps are ignored and differing records of
// matched ids always classify as modified.
func WithRecency(enabled bool) Option {
	return func(d *differ) {
		d.recency = enabled
	}
}
