package utils

import "fmt"

// WrapSetupError returns a wrapped setup error
func WrapSetupError(err error) error {
	return fmt.Errorf("setup error: %w", err)
}

// WrapTeardownError returns a wrapped teardown error
func WrapTeardownError(err error) error {
	return fmt.Errorf("teardown error: %w", err)
}

// WrapCreateError returns a wrapped create error
func WrapCreateError(err error) error {
	return fmt.Errorf("create error: %w", err)
}

// WrapUploadError returns a wrapped upload error
func WrapUploadError(err error) error {
	return fmt.Errorf("upload error: %w", err)
}

// WrapDownloadError returns a wrapped download error
func WrapDownloadError(err error) error {
	return fmt.Errorf("download error: %w", err)
}

// WrapDeleteError returns a wrapped delete error
func WrapDeleteError(err error) error {
	return fmt.Errorf("delete error: %w", err)
}

// WrapListError returns a wrapped list error
func WrapListError(err error) error {
	return fmt.Errorf("list error: %w", err)
}

// WrapGetError returns a wrapped get error
func WrapGetError(err error) error {
	return fmt.Errorf("get error: %w", err)
}

// WrapUpsertError returns a wrapped upsert error
func WrapUpsertError(err error) error {
	return fmt.Errorf("upsert error: %w", err)
}

// WrapRestoreError returns a wrapped restore error
func WrapRestoreError(err error) error {
	return fmt.Errorf("restore error: %w", err)
}
