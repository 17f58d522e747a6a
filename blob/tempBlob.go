package blob

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempBlob is a single temporary blob in an existing container. Construction
// snapshots any blob that already has the same name before replacing it. Dispose
// restores the snapshot, or deletes the blob when it did not exist before.
type TempBlob struct {
	client    Client
	log       *zap.Logger
	container string
	name      string

	existed  bool
	original []byte

	disposed      bool
	disposeResult error
}

// NewTempBlob uploads content to the named blob, remembering the previous content
// when the blob already existed. The container must exist; use TempContainer when
// the container itself is temporary.
func NewTempBlob(ctx context.Context, client Client, containerName, blobName string, content []byte, opts ...options.NewFixtureOption[TempBlob]) (*TempBlob, error) {
	if err := utils.ValidateContainerName(containerName); err != nil {
		return nil, err
	}
	if err := utils.ValidateItemName(blobName); err != nil {
		return nil, err
	}

	b := &TempBlob{
		client:    client,
		log:       zap.NewNop(),
		container: containerName,
		name:      blobName,
	}
	options.ApplyOptions(b, opts...)

	if b.client == nil {
		c, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		b.client = c
	}

	original, err := b.client.DownloadBlob(ctx, containerName, blobName)
	switch {
	case err == nil:
		b.existed = true
		b.original = original
	case errors.Is(err, aztemp.ErrNotFound):
		// nothing to snapshot
	default:
		return nil, utils.WrapDownloadError(err)
	}

	if err := b.client.UploadBlob(ctx, containerName, blobName, content); err != nil {
		return nil, utils.WrapUploadError(err)
	}
	b.log.Debug("temporary blob ready",
		zap.String("container", containerName),
		zap.String("blob", blobName),
		zap.Bool("replaced", b.existed))

	return b, nil
}

// Name returns the blob name.
func (b *TempBlob) Name() string {
	return b.name
}

// Container returns the container name the blob lives in.
func (b *TempBlob) Container() string {
	return b.container
}

// Existed reports whether a blob with this name existed before the fixture
// replaced it.
func (b *TempBlob) Existed() bool {
	return b.existed
}

// Content returns the blob's current content.
func (b *TempBlob) Content(ctx context.Context) ([]byte, error) {
	if b.disposed {
		return nil, aztemp.ErrDisposed
	}
	content, err := b.client.DownloadBlob(ctx, b.container, b.name)
	if err != nil {
		return nil, utils.WrapDownloadError(err)
	}
	return content, nil
}

// Dispose restores the pre-existing blob content, or deletes the blob when the
// fixture created it. Dispose is idempotent.
func (b *TempBlob) Dispose(ctx context.Context) error {
	if b.disposed {
		return b.disposeResult
	}
	b.disposed = true

	if b.existed {
		err := b.client.UploadBlob(ctx, b.container, b.name, b.original)
		// a container deleted out-of-band leaves nothing to restore
		if err != nil && !errors.Is(err, aztemp.ErrNotFound) {
			b.disposeResult = utils.WrapRestoreError(err)
		}
		return b.disposeResult
	}

	if err := b.client.DeleteBlob(ctx, b.container, b.name); err != nil {
		b.disposeResult = utils.WrapDeleteError(err)
	}
	return b.disposeResult
}
