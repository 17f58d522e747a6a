package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// ErrBadContainerName constant is returned when a blob container or file share name breaks the Azure naming rules
	ErrBadContainerName = "container name is invalid - must be 3-63 lowercase letters, digits, or single hyphens and start and end with a letter or digit"
	// ErrBadTableName constant is returned when a table name breaks the Azure naming rules
	ErrBadTableName = "table name is invalid - must be 3-63 alphanumeric characters and start with a letter"
	// ErrBadItemName constant is returned when an item name is empty
	ErrBadItemName = "item name is invalid - may not be empty"
)

// regex for valid blob container and file share names
var containerNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9]|-[a-z0-9])*$`)

// regex for valid table names
var tableNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// ValidateContainerName ensures that a name satisfies the Azure naming rules shared by
// blob containers and file shares: 3-63 characters, lowercase letters, digits, and
// non-consecutive hyphens, starting and ending with a letter or digit.
func ValidateContainerName(name string) error {
	if len(name) < 3 || len(name) > 63 || !containerNameRegex.MatchString(name) {
		return errors.New(ErrBadContainerName)
	}
	return nil
}

// ValidateTableName ensures that a name satisfies the Azure Table Storage naming
// rules: 3-63 alphanumeric characters starting with a letter.
func ValidateTableName(name string) error {
	if len(name) < 3 || len(name) > 63 || !tableNameRegex.MatchString(name) {
		return errors.New(ErrBadTableName)
	}
	return nil
}

// ValidateItemName ensures that an item (blob, file, entity, document) name is not
// empty or all whitespace.
func ValidateItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(ErrBadItemName)
	}
	return nil
}

// RandomName returns a unique resource name with the given prefix, suitable for
// containers, tables, and shares. The result is lowercase and hyphen-separated so it
// passes ValidateContainerName for any short prefix.
func RandomName(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return id
	}
	return strings.ToLower(prefix) + "-" + id
}

// Ptr returns a pointer to the given value.
func Ptr[T any](value T) *T {
	return &value
}
