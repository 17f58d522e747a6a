package nosql

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempContainer is a temporary Cosmos DB NoSQL container. Construction creates the
// container when it does not exist yet and applies the setup policy to whatever is
// already in it. Dispose removes the container when the fixture created it;
// otherwise it reconciles the items upserted through the fixture and applies the
// teardown policy to the rest.
type TempContainer struct {
	client Client
	log    *zap.Logger
	name   string

	setup    aztemp.Policy[Item]
	teardown aztemp.Policy[Item]

	createdByUs  bool
	tracked      map[string]*TempItem
	trackedOrder []string

	disposed      bool
	disposeResult error
}

// NewTempContainer creates (or attaches to) the named container and applies the
// setup policy. A container created by the fixture gets the partition key path the
// client is configured with. The returned fixture must be disposed at the end of
// the test.
func NewTempContainer(ctx context.Context, containerName string, opts ...options.NewFixtureOption[TempContainer]) (*TempContainer, error) {
	if err := utils.ValidateItemName(containerName); err != nil {
		return nil, err
	}

	c := &TempContainer{
		name:    containerName,
		log:     zap.NewNop(),
		tracked: map[string]*TempItem{},
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
	c.log.Debug("cosmos container ready",
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

// UpsertItem inserts or replaces an item through a TempItem handle, which is tracked
// for reconciliation on Dispose: an item that did not exist before is deleted, a
// replaced item is reverted to its prior value.
func (c *TempContainer) UpsertItem(ctx context.Context, item Item) (*TempItem, error) {
	if c.disposed {
		return nil, aztemp.ErrDisposed
	}

	// An identity upserted before keeps its original handle, so the fixture
	// still reverts to the state from before the first upsert.
	key := itemKey(item.PartitionKey, item.ID)
	if existing, ok := c.tracked[key]; ok {
		if err := c.client.UpsertItem(ctx, c.name, item); err != nil {
			return nil, utils.WrapUpsertError(err)
		}
		return existing, nil
	}

	i, err := NewTempItem(ctx, c.client, c.name, item, WithItemLogger(c.log))
	if err != nil {
		return nil, err
	}
	c.tracked[key] = i
	c.trackedOrder = append(c.trackedOrder, key)
	c.log.Debug("upserted item",
		zap.String("container", c.name),
		zap.String("id", item.ID),
		zap.String("partitionKey", item.PartitionKey))
	return i, nil
}

// Dispose reconciles the container. Tracked items are deleted or reverted first,
// then the teardown policy runs over the remaining items, and a container created by
// the fixture is deleted wholesale (which subsumes both). Failed steps are retried
// and leftover errors aggregated. Dispose is idempotent.
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
		// Disposal runs in reverse order: tracked items go first, the
		// teardown policy pass last.
		if c.teardown.Mode() != aztemp.LeaveAll {
			d.Add(aztemp.DisposeFunc(c.cleanOnTeardown))
		}
		for _, key := range c.trackedOrder {
			d.Add(c.tracked[key])
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

	items, err := c.client.ListItems(ctx, c.name)
	if err != nil {
		return err
	}
	for _, item := range items {
		if !c.setup.ShouldClean(item) {
			continue
		}
		if err := c.client.DeleteItem(ctx, c.name, item.PartitionKey, item.ID); err != nil {
			return err
		}
		c.log.Debug("cleaned pre-existing item",
			zap.String("container", c.name),
			zap.String("id", item.ID),
			zap.String("partitionKey", item.PartitionKey))
	}
	return nil
}

func (c *TempContainer) cleanOnTeardown(ctx context.Context) error {
	items, err := c.client.ListItems(ctx, c.name)
	if errors.Is(err, aztemp.ErrNotFound) {
		// container deleted out-of-band, nothing left to reconcile
		c.log.Debug("container gone before teardown", zap.String("container", c.name))
		return nil
	}
	if err != nil {
		return err
	}
	for _, item := range items {
		// tracked items were already reconciled in their own disposal step,
		// possibly by reverting to earlier values that must survive
		if _, ok := c.tracked[itemKey(item.PartitionKey, item.ID)]; ok {
			continue
		}
		if !c.teardown.ShouldClean(item) {
			continue
		}
		if err := c.client.DeleteItem(ctx, c.name, item.PartitionKey, item.ID); err != nil {
			return err
		}
		c.log.Debug("cleaned item on teardown",
			zap.String("container", c.name),
			zap.String("id", item.ID),
			zap.String("partitionKey", item.PartitionKey))
	}
	return nil
}
