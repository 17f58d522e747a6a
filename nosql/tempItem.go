package nosql

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempItem is a single temporary item in an existing container. Construction
// snapshots any item that already has the same identity before replacing it. Dispose
// re-upserts the snapshot, or deletes the item when it did not exist before.
type TempItem struct {
	client    Client
	log       *zap.Logger
	container string

	id           string
	partitionKey string

	existed  bool
	original Item

	disposed      bool
	disposeResult error
}

// NewTempItem upserts the item, remembering the previous value when an item with the
// same (id, partition key) already existed. The container must exist; use
// TempContainer when the container itself is temporary.
func NewTempItem(ctx context.Context, client Client, containerName string, item Item, opts ...options.NewFixtureOption[TempItem]) (*TempItem, error) {
	if err := utils.ValidateItemName(containerName); err != nil {
		return nil, err
	}
	if err := utils.ValidateItemName(item.ID); err != nil {
		return nil, err
	}
	if err := utils.ValidateItemName(item.PartitionKey); err != nil {
		return nil, err
	}

	i := &TempItem{
		client:       client,
		log:          zap.NewNop(),
		container:    containerName,
		id:           item.ID,
		partitionKey: item.PartitionKey,
	}
	options.ApplyOptions(i, opts...)

	if i.client == nil {
		c, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		i.client = c
	}

	original, err := i.client.GetItem(ctx, containerName, item.PartitionKey, item.ID)
	switch {
	case err == nil:
		i.existed = true
		i.original = original
	case errors.Is(err, aztemp.ErrNotFound):
		// nothing to snapshot
	default:
		return nil, utils.WrapGetError(err)
	}

	if err := i.client.UpsertItem(ctx, containerName, item); err != nil {
		return nil, utils.WrapUpsertError(err)
	}
	i.log.Debug("temporary item ready",
		zap.String("container", containerName),
		zap.String("id", item.ID),
		zap.String("partitionKey", item.PartitionKey),
		zap.Bool("replaced", i.existed))

	return i, nil
}

// ID returns the item's id.
func (i *TempItem) ID() string {
	return i.id
}

// PartitionKey returns the item's partition key value.
func (i *TempItem) PartitionKey() string {
	return i.partitionKey
}

// Existed reports whether an item with this identity existed before the fixture
// replaced it.
func (i *TempItem) Existed() bool {
	return i.existed
}

// Dispose re-upserts the pre-existing item, or deletes the item when the fixture
// created it. Dispose is idempotent.
func (i *TempItem) Dispose(ctx context.Context) error {
	if i.disposed {
		return i.disposeResult
	}
	i.disposed = true

	if i.existed {
		err := i.client.UpsertItem(ctx, i.container, i.original)
		// a container deleted out-of-band leaves nothing to restore
		if err != nil && !errors.Is(err, aztemp.ErrNotFound) {
			i.disposeResult = utils.WrapRestoreError(err)
		}
		return i.disposeResult
	}

	if err := i.client.DeleteItem(ctx, i.container, i.partitionKey, i.id); err != nil {
		i.disposeResult = utils.WrapDeleteError(err)
	}
	return i.disposeResult
}
