package fileshare

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempFile is a single temporary file in an existing share. Construction snapshots
// any file that already has the same name before replacing it. Dispose restores the
// snapshot, or deletes the file when it did not exist before.
type TempFile struct {
	client Client
	log    *zap.Logger
	share  string
	name   string

	existed  bool
	original []byte

	disposed      bool
	disposeResult error
}

// NewTempFile uploads content to the named file, remembering the previous content
// when the file already existed. The share must exist; use TempShare when the share
// itself is temporary.
func NewTempFile(ctx context.Context, client Client, shareName, fileName string, content []byte, opts ...options.NewFixtureOption[TempFile]) (*TempFile, error) {
	if err := utils.ValidateContainerName(shareName); err != nil {
		return nil, err
	}
	if err := utils.ValidateItemName(fileName); err != nil {
		return nil, err
	}

	f := &TempFile{
		client: client,
		log:    zap.NewNop(),
		share:  shareName,
		name:   fileName,
	}
	options.ApplyOptions(f, opts...)

	if f.client == nil {
		c, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		f.client = c
	}

	original, err := f.client.DownloadFile(ctx, shareName, fileName)
	switch {
	case err == nil:
		f.existed = true
		f.original = original
	case errors.Is(err, aztemp.ErrNotFound):
		// nothing to snapshot
	default:
		return nil, utils.WrapDownloadError(err)
	}

	if err := f.client.UploadFile(ctx, shareName, fileName, content); err != nil {
		return nil, utils.WrapUploadError(err)
	}
	f.log.Debug("temporary file ready",
		zap.String("share", shareName),
		zap.String("file", fileName),
		zap.Bool("replaced", f.existed))

	return f, nil
}

// Name returns the file name.
func (f *TempFile) Name() string {
	return f.name
}

// Share returns the share name the file lives in.
func (f *TempFile) Share() string {
	return f.share
}

// Existed reports whether a file with this name existed before the fixture replaced
// it.
func (f *TempFile) Existed() bool {
	return f.existed
}

// Content returns the file's current content.
func (f *TempFile) Content(ctx context.Context) ([]byte, error) {
	if f.disposed {
		return nil, aztemp.ErrDisposed
	}
	content, err := f.client.DownloadFile(ctx, f.share, f.name)
	if err != nil {
		return nil, utils.WrapDownloadError(err)
	}
	return content, nil
}

// Dispose restores the pre-existing file content, or deletes the file when the
// fixture created it. Dispose is idempotent.
func (f *TempFile) Dispose(ctx context.Context) error {
	if f.disposed {
		return f.disposeResult
	}
	f.disposed = true

	if f.existed {
		err := f.client.UploadFile(ctx, f.share, f.name, f.original)
		// a share deleted out-of-band leaves nothing to restore
		if err != nil && !errors.Is(err, aztemp.ErrNotFound) {
			f.disposeResult = utils.WrapRestoreError(err)
		}
		return f.disposeResult
	}

	if err := f.client.DeleteFile(ctx, f.share, f.name); err != nil {
		f.disposeResult = utils.WrapDeleteError(err)
	}
	return f.disposeResult
}
