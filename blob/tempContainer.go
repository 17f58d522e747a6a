package blob

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempContainer is a temporary Blob Storage container. Construction creates the
// container when it does not exist yet and applies the setup policy to whatever is
// already in it. Dispose removes the container when the fixture created it;
// otherwise it deletes the blobs uploaded through the fixture and applies the
// teardown policy to the rest.
type TempContainer struct {
	client Client
	log    *zap.Logger
	name   string

	setup    aztemp.Policy[BlobInfo]
	teardown aztemp.Policy[BlobInfo]

	createdByUs  bool
	tracked      map[string]*TempBlob
	trackedOrder []string

	disposed      bool
	disposeResult error
}

// NewTempContainer creates (or attaches to) the named container and applies the
// setup policy. The returned fixture must be disposed at the end of the test.
func NewTempContainer(ctx context.Context, containerName string, opts ...options.NewFixtureOption[TempContainer]) (*TempContainer, error) {
	if err := utils.ValidateContainerName(containerName); err != nil {
		return nil, err
	}

	c := &TempContainer{
		name:    containerName,
		log:     zap.NewNop(),
		tracked: map[string]*TempBlob{},
	}
	options.ApplyOptions(c, opts...)

	if c.client == nil {
		client, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		c.client = client
	}

	created, err := c.client.CreateContainerIfNotExists(ctx, containerName)
	if err != nil {
		return nil, utils.WrapCreateError(err)
	}
	c.createdByUs = created
	c.log.Debug("blob container ready",
		zap.String("container", containerName),
		zap.Bool("created", created),
		zap.Stringer("setup", c.setup.Mode()),
		zap.Stringer("teardown", c.teardown.Mode()))

	if err := c.cleanOnSetup(ctx); err != nil {
		return nil, utils.WrapSetupError(err)
	}

	return c, nil
}

// Name returns the container name.
func (c *TempContainer) Name() string {
	return c.name
}

// CreatedByFixture reports whether the fixture created the container or attached to
// a pre-existing one.
func (c *TempContainer) CreatedByFixture() bool {
	return c.createdByUs
}

// Client returns the client the fixture operates through, so tests can arrange
// additional state or assert on the container's content.
func (c *TempContainer) Client() Client {
	return c.client
}

// UploadBlob uploads content as a block blob through a TempBlob handle, which is
// tracked for reconciliation on Dispose: a blob that did not exist before is
// deleted, a replaced blob is reverted to its prior content.
func (c *TempContainer) UploadBlob(ctx context.Context, blobName string, content []byte) (*TempBlob, error) {
	if c.disposed {
		return nil, aztemp.ErrDisposed
	}
	if err := utils.ValidateItemName(blobName); err != nil {
		return nil, err
	}

	// A name uploaded before keeps its original handle, so the fixture still
	// reverts to the state from before the first upload.
	if existing, ok := c.tracked[blobName]; ok {
		if err := c.client.UploadBlob(ctx, c.name, blobName, content); err != nil {
			return nil, utils.WrapUploadError(err)
		}
		return existing, nil
	}

	b, err := NewTempBlob(ctx, c.client, c.name, blobName, content, WithBlobLogger(c.log))
	if err != nil {
		return nil, err
	}
	c.tracked[blobName] = b
	c.trackedOrder = append(c.trackedOrder, blobName)
	c.log.Debug("uploaded blob", zap.String("container", c.name), zap.String("blob", blobName))
	return b, nil
}

// Dispose reconciles the container. Tracked blobs are deleted or reverted first,
// then the teardown policy runs over the remaining blobs, and a container created
// by the fixture is deleted wholesale (which subsumes both). Failed steps are
// retried and leftover errors aggregated. Dispose is idempotent.
func (c *TempContainer) Dispose(ctx context.Context) error {
	if c.disposed {
		return c.disposeResult
	}
	c.disposed = true

	d := aztemp.NewDisposables(aztemp.WithLogger(c.log))

	if c.createdByUs {
		d.Add(aztemp.DisposeFunc(func(ctx context.Context) error {
			c.log.Debug("deleting container created by fixture", zap.String("container", c.name))
			return c.client.DeleteContainer(ctx, c.name)
		}))
	} else {
		// Disposal runs in reverse order: tracked blobs go first, the
		// teardown policy pass last.
		if c.teardown.Mode() != aztemp.LeaveAll {
			d.Add(aztemp.DisposeFunc(c.cleanOnTeardown))
		}
		for _, blobName := range c.trackedOrder {
			d.Add(c.tracked[blobName])
		}
	}

	if err := d.Dispose(ctx); err != nil {
		c.disposeResult = utils.WrapTeardownError(err)
	}
	return c.disposeResult
}

func (c *TempContainer) cleanOnSetup(ctx context.Context) error {
	if c.setup.Mode() == aztemp.LeaveAll {
		return nil
	}

	blobs, err := c.client.ListBlobs(ctx, c.name)
	if err != nil {
		return err
	}
	for _, b := range blobs {
		if !c.setup.ShouldClean(b) {
			continue
		}
		if err := c.client.DeleteBlob(ctx, c.name, b.Name); err != nil {
			return err
		}
		c.log.Debug("cleaned pre-existing blob", zap.String("container", c.name), zap.String("blob", b.Name))
	}
	return nil
}

func (c *TempContainer) cleanOnTeardown(ctx context.Context) error {
	blobs, err := c.client.ListBlobs(ctx, c.name)
	if errors.Is(err, aztemp.ErrNotFound) {
		// container deleted out-of-band, nothing left to reconcile
		c.log.Debug("container gone before teardown", zap.String("container", c.name))
		return nil
	}
	if err != nil {
		return err
	}
	for _, b := range blobs {
		// tracked blobs were already reconciled in their own disposal step,
		// possibly by reverting to earlier content that must survive
		if _, ok := c.tracked[b.Name]; ok {
			continue
		}
		if !c.teardown.ShouldClean(b) {
			continue
		}
		if err := c.client.DeleteBlob(ctx, c.name, b.Name); err != nil {
			return err
		}
		c.log.Debug("cleaned blob on teardown", zap.String("container", c.name), zap.String("blob", b.Name))
	}
	return nil
}
