// Package options defines the generic option interfaces shared by the fixture packages.
package options

// NewFixtureOption interface contains functions that should be implemented by any
// custom option to qualify as a fixture construction option for fixtures of type T.
// Example:
// ```
//
//	type loggerOpt struct{ log *zap.Logger }
//	func (o *loggerOpt) Apply(c *TempContainer) {
//		c.log = o.log
//	}
//	func (o *loggerOpt) NewFixtureOptionName() string {
//		return "logger"
//	}
//
// ```
type NewFixtureOption[T any] interface {
	// Apply applies the option to the fixture under construction
	Apply(*T)

	// NewFixtureOptionName returns the name of the option
	NewFixtureOptionName() string
}

// ApplyOptions applies each option, in order, to the fixture under construction.
func ApplyOptions[T any](fixture *T, opts ...NewFixtureOption[T]) {
	for _, o := range opts {
		o.Apply(fixture)
	}
}
