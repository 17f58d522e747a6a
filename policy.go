package aztemp

// CleanupMode controls what a fixture does with items in a resource, either
// when the fixture is created (setup) or when it is disposed (teardown).
type CleanupMode int

const (
	// LeaveAll leaves every item in place.
	LeaveAll CleanupMode = iota

	// CleanAll deletes every item.
	CleanAll

	// CleanMatching deletes the items that match at least one of the
	// policy's filters.
	CleanMatching
)

// String returns a readable name for the mode.
func (m CleanupMode) String() string {
	switch m {
	case LeaveAll:
		return "leave-all"
	case CleanAll:
		return "clean-all"
	case CleanMatching:
		return "clean-matching"
	default:
		return "unknown"
	}
}

// Policy is a cleanup policy over items of type T. The zero value leaves
// everything in place.
type Policy[T any] struct {
	mode    CleanupMode
	filters []func(T) bool
}

// LeaveAllPolicy returns a policy that cleans nothing.
func LeaveAllPolicy[T any]() Policy[T] {
	return Policy[T]{mode: LeaveAll}
}

// CleanAllPolicy returns a policy that cleans every item.
func CleanAllPolicy[T any]() Policy[T] {
	return Policy[T]{mode: CleanAll}
}

// CleanMatchingPolicy returns a policy that cleans items matching at least one
// of the given filters.
func CleanMatchingPolicy[T any](filters ...func(T) bool) Policy[T] {
	return Policy[T]{mode: CleanMatching, filters: filters}
}

// Mode returns the policy's cleanup mode.
func (p Policy[T]) Mode() CleanupMode {
	return p.mode
}

// Match appends additional filters to a CleanMatching policy. Filters compose
// with logical OR.
func (p Policy[T]) Match(filters ...func(T) bool) Policy[T] {
	p.filters = append(p.filters[:len(p.filters):len(p.filters)], filters...)
	return p
}

// ShouldClean reports whether the policy cleans the given item. A
// CleanMatching policy with no filters cleans nothing.
func (p Policy[T]) ShouldClean(item T) bool {
	switch p.mode {
	case CleanAll:
		return true
	case CleanMatching:
		for _, filter := range p.filters {
			if filter(item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
