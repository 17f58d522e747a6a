package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempCollection is a temporary MongoDB collection. Construction creates the
// collection when it does not exist yet and applies the setup policy to whatever is
// already in it. Dispose drops the collection when the fixture created it; otherwise
// it reconciles the documents inserted through the fixture and applies the teardown
// policy to the rest.
type TempCollection struct {
	client Client
	log    *zap.Logger
	name   string

	setup    aztemp.Policy[bson.M]
	teardown aztemp.Policy[bson.M]

	createdByUs  bool
	tracked      map[string]*TempDocument
	trackedOrder []string

	disposed      bool
	disposeResult error
}

// NewTempCollection creates (or attaches to) the named collection and applies the
// setup policy. The returned fixture must be disposed at the end of the test.
func NewTempCollection(ctx context.Context, collectionName string, opts ...options.NewFixtureOption[TempCollection]) (*TempCollection, error) {
	if err := utils.ValidateItemName(collectionName); err != nil {
		return nil, err
	}

	c := &TempCollection{
		name:    collectionName,
		log:     zap.NewNop(),
		tracked: map[string]*TempDocument{},
	}
	options.ApplyOptions(c, opts...)

	if c.client == nil {
		client, err := NewClient(ctx, nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		c.client = client
	}

	created, err := c.client.CreateCollectionIfNotExists(ctx, collectionName)
	if err != nil {
		return nil, utils.WrapCreateError(err)
	}
	c.createdByUs = created
	c.log.Debug("collection ready",
		zap.String("collection", collectionName),
		zap.Bool("created", created),
		zap.Stringer("setup", c.setup.Mode()),
		zap.Stringer("teardown", c.teardown.Mode()))

	if err := c.cleanOnSetup(ctx); err != nil {
		return nil, utils.WrapSetupError(err)
	}

	return c, nil
}

// Name returns the collection name.
func (c *TempCollection) Name() string {
	return c.name
}

// CreatedByFixture reports whether the fixture created the collection or attached to
// a pre-existing one.
func (c *TempCollection) CreatedByFixture() bool {
	return c.createdByUs
}

// Client returns the client the fixture operates through, so tests can arrange
// additional state or assert on the collection's content.
func (c *TempCollection) Client() Client {
	return c.client
}

// InsertDocument inserts or replaces a document through a TempDocument handle, which
// is tracked for reconciliation on Dispose: a document that did not exist before is
// deleted, a replaced document is reverted to its prior value. A document without an
// "_id" gets a generated one.
func (c *TempCollection) InsertDocument(ctx context.Context, document bson.M) (*TempDocument, error) {
	if c.disposed {
		return nil, aztemp.ErrDisposed
	}

	// An id inserted before keeps its original handle, so the fixture still
	// reverts to the state from before the first insert.
	if document != nil && document["_id"] != nil {
		if existing, ok := c.tracked[documentKey(document["_id"])]; ok {
			if err := c.client.UpsertDocument(ctx, c.name, document); err != nil {
				return nil, utils.WrapUpsertError(err)
			}
			return existing, nil
		}
	}

	d, err := NewTempDocument(ctx, c.client, c.name, document, WithDocumentLogger(c.log))
	if err != nil {
		return nil, err
	}
	key := documentKey(d.ID())
	c.tracked[key] = d
	c.trackedOrder = append(c.trackedOrder, key)
	c.log.Debug("inserted document", zap.String("collection", c.name), zap.Any("id", d.ID()))
	return d, nil
}

// Dispose reconciles the collection. Tracked documents are deleted or reverted
// first, then the teardown policy runs over the remaining documents, and a
// collection created by the fixture is dropped wholesale (which subsumes both).
// Failed steps are retried and leftover errors aggregated. Dispose is idempotent.
func (c *TempCollection) Dispose(ctx context.Context) error {
	if c.disposed {
		return c.disposeResult
	}
	c.disposed = true

	d := aztemp.NewDisposables(aztemp.WithLogger(c.log))

	if c.createdByUs {
		d.Add(aztemp.DisposeFunc(func(ctx context.Context) error {
			c.log.Debug("dropping collection created by fixture", zap.String("collection", c.name))
			return c.client.DropCollection(ctx, c.name)
		}))
	} else {
		// Disposal runs in reverse order: tracked documents go first, the
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

func (c *TempCollection) cleanOnSetup(ctx context.Context) error {
	if c.setup.Mode() == aztemp.LeaveAll {
		return nil
	}

	docs, err := c.client.ListDocuments(ctx, c.name)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if !c.setup.ShouldClean(doc) {
			continue
		}
		if err := c.client.DeleteDocument(ctx, c.name, doc["_id"]); err != nil {
			return err
		}
		c.log.Debug("cleaned pre-existing document", zap.String("collection", c.name), zap.Any("id", doc["_id"]))
	}
	return nil
}

func (c *TempCollection) cleanOnTeardown(ctx context.Context) error {
	docs, err := c.client.ListDocuments(ctx, c.name)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		// tracked documents were already reconciled in their own disposal
		// step, possibly by reverting to earlier values that must survive
		if _, ok := c.tracked[documentKey(doc["_id"])]; ok {
			continue
		}
		if !c.teardown.ShouldClean(doc) {
			continue
		}
		if err := c.client.DeleteDocument(ctx, c.name, doc["_id"]); err != nil {
			return err
		}
		c.log.Debug("cleaned document on teardown", zap.String("collection", c.name), zap.Any("id", doc["_id"]))
	}
	return nil
}
