package table

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempTable is a temporary Table Storage table. Construction creates the table when
// it does not exist yet and applies the setup policy to whatever is already in it.
// Dispose removes the table when the fixture created it; otherwise it reconciles the
// entities upserted through the fixture and applies the teardown policy to the rest.
type TempTable struct {
	client Client
	log    *zap.Logger
	name   string

	setup    aztemp.Policy[Entity]
	teardown aztemp.Policy[Entity]

	createdByUs  bool
	tracked      map[string]*TempEntity
	trackedOrder []string

	disposed      bool
	disposeResult error
}

// NewTempTable creates (or attaches to) the named table and applies the setup
// policy. The returned fixture must be disposed at the end of the test.
func NewTempTable(ctx context.Context, tableName string, opts ...options.NewFixtureOption[TempTable]) (*TempTable, error) {
	if err := utils.ValidateTableName(tableName); err != nil {
		return nil, err
	}

	t := &TempTable{
		name:    tableName,
		log:     zap.NewNop(),
		tracked: map[string]*TempEntity{},
	}
	options.ApplyOptions(t, opts...)

	if t.client == nil {
		client, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		t.client = client
	}

	created, err := t.client.CreateTableIfNotExists(ctx, tableName)
	if err != nil {
		return nil, utils.WrapCreateError(err)
	}
	t.createdByUs = created
	t.log.Debug("table ready",
		zap.String("table", tableName),
		zap.Bool("created", created),
		zap.Stringer("setup", t.setup.Mode()),
		zap.Stringer("teardown", t.teardown.Mode()))

	if err := t.cleanOnSetup(ctx); err != nil {
		return nil, utils.WrapSetupError(err)
	}

	return t, nil
}

// Name returns the table name.
func (t *TempTable) Name() string {
	return t.name
}

// CreatedByFixture reports whether the fixture created the table or attached to a
// pre-existing one.
func (t *TempTable) CreatedByFixture() bool {
	return t.createdByUs
}

// Client returns the client the fixture operates through, so tests can arrange
// additional state or assert on the table's content.
func (t *TempTable) Client() Client {
	return t.client
}

// UpsertEntity inserts or replaces an entity through a TempEntity handle, which is
// tracked for reconciliation on Dispose: an entity that did not exist before is
// deleted, a replaced entity is reverted to its prior value.
func (t *TempTable) UpsertEntity(ctx context.Context, entity Entity) (*TempEntity, error) {
	if t.disposed {
		return nil, aztemp.ErrDisposed
	}

	// Keys upserted before keep their original handle, so the fixture still
	// reverts to the state from before the first upsert.
	key := entityKey(entity.PartitionKey, entity.RowKey)
	if existing, ok := t.tracked[key]; ok {
		if err := t.client.UpsertEntity(ctx, t.name, entity); err != nil {
			return nil, utils.WrapUpsertError(err)
		}
		return existing, nil
	}

	e, err := NewTempEntity(ctx, t.client, t.name, entity, WithEntityLogger(t.log))
	if err != nil {
		return nil, err
	}
	t.tracked[key] = e
	t.trackedOrder = append(t.trackedOrder, key)
	t.log.Debug("upserted entity",
		zap.String("table", t.name),
		zap.String("partitionKey", entity.PartitionKey),
		zap.String("rowKey", entity.RowKey))
	return e, nil
}

// Dispose reconciles the table. Tracked entities are deleted or reverted first, then
// the teardown policy runs over the remaining entities, and a table created by the
// fixture is deleted wholesale (which subsumes both). Failed steps are retried and
// leftover errors aggregated. Dispose is idempotent.
func (t *TempTable) Dispose(ctx context.Context) error {
	if t.disposed {
		return t.disposeResult
	}
	t.disposed = true

	d := aztemp.NewDisposables(aztemp.WithLogger(t.log))

	if t.createdByUs {
		d.Add(aztemp.DisposeFunc(func(ctx context.Context) error {
			t.log.Debug("deleting table created by fixture", zap.String("table", t.name))
			return t.client.DeleteTable(ctx, t.name)
		}))
	} else {
		// Disposal runs in reverse order: tracked entities go first, the
		// teardown policy pass last.
		if t.teardown.Mode() != aztemp.LeaveAll {
			d.Add(aztemp.DisposeFunc(t.cleanOnTeardown))
		}
		for _, key := range t.trackedOrder {
			d.Add(t.tracked[key])
		}
	}

	if err := d.Dispose(ctx); err != nil {
		t.disposeResult = utils.WrapTeardownError(err)
	}
	return t.disposeResult
}

func (t *TempTable) cleanOnSetup(ctx context.Context) error {
	if t.setup.Mode() == aztemp.LeaveAll {
		return nil
	}

	entities, err := t.client.ListEntities(ctx, t.name)
	if err != nil {
		return err
	}
	for _, e := range entities {
		if !t.setup.ShouldClean(e) {
			continue
		}
		if err := t.client.DeleteEntity(ctx, t.name, e.PartitionKey, e.RowKey); err != nil {
			return err
		}
		t.log.Debug("cleaned pre-existing entity",
			zap.String("table", t.name),
			zap.String("partitionKey", e.PartitionKey),
			zap.String("rowKey", e.RowKey))
	}
	return nil
}

func (t *TempTable) cleanOnTeardown(ctx context.Context) error {
	entities, err := t.client.ListEntities(ctx, t.name)
	if errors.Is(err, aztemp.ErrNotFound) {
		// table deleted out-of-band, nothing left to reconcile
		t.log.Debug("table gone before teardown", zap.String("table", t.name))
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entities {
		// tracked entities were already reconciled in their own disposal step,
		// possibly by reverting to earlier values that must survive
		if _, ok := t.tracked[entityKey(e.PartitionKey, e.RowKey)]; ok {
			continue
		}
		if !t.teardown.ShouldClean(e) {
			continue
		}
		if err := t.client.DeleteEntity(ctx, t.name, e.PartitionKey, e.RowKey); err != nil {
			return err
		}
		t.log.Debug("cleaned entity on teardown",
			zap.String("table", t.name),
			zap.String("partitionKey", e.PartitionKey),
			zap.String("rowKey", e.RowKey))
	}
	return nil
}
