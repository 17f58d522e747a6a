package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempDocument is a single temporary document in an existing collection.
// Construction snapshots any document that already has the same "_id" before
// replacing it. Dispose re-upserts the snapshot, or deletes the document when it did
// not exist before.
type TempDocument struct {
	client     Client
	log        *zap.Logger
	collection string
	id         any

	existed  bool
	original bson.M

	disposed      bool
	disposeResult error
}

// NewTempDocument upserts the document, remembering the previous value when a
// document with the same "_id" already existed. A document without an "_id" gets a
// generated one. The collection must exist; use TempCollection when the collection
// itself is temporary.
func NewTempDocument(ctx context.Context, client Client, collectionName string, document bson.M, opts ...options.NewFixtureOption[TempDocument]) (*TempDocument, error) {
	if err := utils.ValidateItemName(collectionName); err != nil {
		return nil, err
	}
	// copy so a generated id does not leak into the caller's map
	doc := make(bson.M, len(document)+1)
	for k, v := range document {
		doc[k] = v
	}
	if doc["_id"] == nil {
		doc["_id"] = utils.RandomName("")
	}

	d := &TempDocument{
		client:     client,
		log:        zap.NewNop(),
		collection: collectionName,
		id:         doc["_id"],
	}
	options.ApplyOptions(d, opts...)

	if d.client == nil {
		c, err := NewClient(ctx, nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		d.client = c
	}

	original, err := d.client.GetDocument(ctx, collectionName, d.id)
	switch {
	case err == nil:
		d.existed = true
		d.original = original
	case errors.Is(err, aztemp.ErrNotFound):
		// nothing to snapshot
	default:
		return nil, utils.WrapGetError(err)
	}

	if err := d.client.UpsertDocument(ctx, collectionName, doc); err != nil {
		return nil, utils.WrapUpsertError(err)
	}
	d.log.Debug("temporary document ready",
		zap.String("collection", collectionName),
		zap.Any("id", d.id),
		zap.Bool("replaced", d.existed))

	return d, nil
}

// ID returns the document's "_id" value.
func (d *TempDocument) ID() any {
	return d.id
}

// Existed reports whether a document with this id existed before the fixture
// replaced it.
func (d *TempDocument) Existed() bool {
	return d.existed
}

// Dispose re-upserts the pre-existing document, or deletes the document when the
// fixture created it. Dispose is idempotent.
func (d *TempDocument) Dispose(ctx context.Context) error {
	if d.disposed {
		return d.disposeResult
	}
	d.disposed = true

	if d.existed {
		if err := d.client.UpsertDocument(ctx, d.collection, d.original); err != nil {
			d.disposeResult = utils.WrapRestoreError(err)
		}
		return d.disposeResult
	}

	if err := d.client.DeleteDocument(ctx, d.collection, d.id); err != nil {
		d.disposeResult = utils.WrapDeleteError(err)
	}
	return d.disposeResult
}
