package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/c2fo/aztemp"
)

// The Client interface contains the MongoDB operations the fixtures need. This
// interface is here so we can write mocks over the actual functionality.
//
// Documents are identified by their "_id" field. All operations run against the
// database named in Options.
type Client interface {
	CreateCollectionIfNotExists(ctx context.Context, collectionName string) (bool, error)
	DropCollection(ctx context.Context, collectionName string) error
	ListDocuments(ctx context.Context, collectionName string) ([]bson.M, error)
	GetDocument(ctx context.Context, collectionName string, id any) (bson.M, error)
	UpsertDocument(ctx context.Context, collectionName string, document bson.M) error
	DeleteDocument(ctx context.Context, collectionName string, id any) error
}

// ClientImpl is the main implementation that actually makes the calls to MongoDB,
// including Cosmos DB's MongoDB API.
type ClientImpl struct {
	database *mongo.Database
}

// NewClient initializes a new ClientImpl using the given options, falling back to
// NewOptions() when opts is nil.
func NewClient(ctx context.Context, opts *Options) (*ClientImpl, error) {
	if opts == nil {
		opts = NewOptions()
	}

	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(opts.ConnectionString))
	if err != nil {
		return nil, err
	}
	return &ClientImpl{database: client.Database(opts.Database)}, nil
}

// CreateCollectionIfNotExists creates the collection and reports whether this call
// created it.
func (c *ClientImpl) CreateCollectionIfNotExists(ctx context.Context, collectionName string) (bool, error) {
	names, err := c.database.ListCollectionNames(ctx, bson.M{"name": collectionName})
	if err != nil {
		return false, err
	}
	if len(names) > 0 {
		return false, nil
	}
	if err := c.database.CreateCollection(ctx, collectionName); err != nil {
		return false, err
	}
	return true, nil
}

// DropCollection drops the collection and every document in it. Dropping a
// collection that does not exist is not an error.
func (c *ClientImpl) DropCollection(ctx context.Context, collectionName string) error {
	return c.database.Collection(collectionName).Drop(ctx)
}

// ListDocuments returns every document in the collection.
func (c *ClientImpl) ListDocuments(ctx context.Context, collectionName string) ([]bson.M, error) {
	cursor, err := c.database.Collection(collectionName).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var list []bson.M
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetDocument returns the document with the given id, or aztemp.ErrNotFound.
func (c *ClientImpl) GetDocument(ctx context.Context, collectionName string, id any) (bson.M, error) {
	var doc bson.M
	err := c.database.Collection(collectionName).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, aztemp.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// UpsertDocument inserts or fully replaces the document identified by its "_id".
func (c *ClientImpl) UpsertDocument(ctx context.Context, collectionName string, document bson.M) error {
	_, err := c.database.Collection(collectionName).ReplaceOne(ctx,
		bson.M{"_id": document["_id"]},
		document,
		mongooptions.Replace().SetUpsert(true))
	return err
}

// DeleteDocument deletes the document. Deleting a document that is already gone is
// not an error.
func (c *ClientImpl) DeleteDocument(ctx context.Context, collectionName string, id any) error {
	_, err := c.database.Collection(collectionName).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
