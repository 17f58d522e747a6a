package table

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempEntity is a single temporary entity in an existing table. Construction
// snapshots any entity that already has the same keys before replacing it. Dispose
// re-upserts the snapshot, or deletes the entity when it did not exist before.
type TempEntity struct {
	client Client
	log    *zap.Logger
	table  string

	partitionKey string
	rowKey       string

	existed  bool
	original Entity

	disposed      bool
	disposeResult error
}

// NewTempEntity upserts the entity, remembering the previous value when an entity
// with the same (PartitionKey, RowKey) already existed. The table must exist; use
// TempTable when the table itself is temporary.
func NewTempEntity(ctx context.Context, client Client, tableName string, entity Entity, opts ...options.NewFixtureOption[TempEntity]) (*TempEntity, error) {
	if err := utils.ValidateTableName(tableName); err != nil {
		return nil, err
	}
	if err := utils.ValidateItemName(entity.PartitionKey); err != nil {
		return nil, err
	}
	if err := utils.ValidateItemName(entity.RowKey); err != nil {
		return nil, err
	}

	e := &TempEntity{
		client:       client,
		log:          zap.NewNop(),
		table:        tableName,
		partitionKey: entity.PartitionKey,
		rowKey:       entity.RowKey,
	}
	options.ApplyOptions(e, opts...)

	if e.client == nil {
		c, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		e.client = c
	}

	original, err := e.client.GetEntity(ctx, tableName, entity.PartitionKey, entity.RowKey)
	switch {
	case err == nil:
		e.existed = true
		e.original = original
	case errors.Is(err, aztemp.ErrNotFound):
		// nothing to snapshot
	default:
		return nil, utils.WrapGetError(err)
	}

	if err := e.client.UpsertEntity(ctx, tableName, entity); err != nil {
		return nil, utils.WrapUpsertError(err)
	}
	e.log.Debug("temporary entity ready",
		zap.String("table", tableName),
		zap.String("partitionKey", entity.PartitionKey),
		zap.String("rowKey", entity.RowKey),
		zap.Bool("replaced", e.existed))

	return e, nil
}

// PartitionKey returns the entity's partition key.
func (e *TempEntity) PartitionKey() string {
	return e.partitionKey
}

// RowKey returns the entity's row key.
func (e *TempEntity) RowKey() string {
	return e.rowKey
}

// Existed reports whether an entity with these keys existed before the fixture
// replaced it.
func (e *TempEntity) Existed() bool {
	return e.existed
}

// Dispose re-upserts the pre-existing entity, or deletes the entity when the
// fixture created it. Dispose is idempotent.
func (e *TempEntity) Dispose(ctx context.Context) error {
	if e.disposed {
		return e.disposeResult
	}
	e.disposed = true

	if e.existed {
		err := e.client.UpsertEntity(ctx, e.table, e.original)
		// a table deleted out-of-band leaves nothing to restore
		if err != nil && !errors.Is(err, aztemp.ErrNotFound) {
			e.disposeResult = utils.WrapRestoreError(err)
		}
		return e.disposeResult
	}

	if err := e.client.DeleteEntity(ctx, e.table, e.partitionKey, e.rowKey); err != nil {
		e.disposeResult = utils.WrapDeleteError(err)
	}
	return e.disposeResult
}
