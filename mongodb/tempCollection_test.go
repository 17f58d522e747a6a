package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/c2fo/aztemp"
)

type TempCollectionTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *TempCollectionTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *TempCollectionTestSuite) TestImplementsDisposable() {
	s.Implements((*aztemp.Disposable)(nil), &TempCollection{})
}

func (s *TempCollectionTestSuite) TestRejectsEmptyName() {
	_, err := NewTempCollection(s.ctx, "  ", WithClient(NewMockClient()))
	s.Error(err)
}

func (s *TempCollectionTestSuite) TestCreatesMissingCollection() {
	client := NewMockClient()

	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)

	s.True(c.CreatedByFixture())
	s.Contains(client.Collections, "orders")
}

func (s *TempCollectionTestSuite) TestAttachesToExistingCollection() {
	client := NewMockClient().WithCollection("orders", bson.M{"_id": "one"})

	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)

	s.False(c.CreatedByFixture())
	s.Contains(client.Collections["orders"], "one", "default setup policy leaves documents alone")
}

func (s *TempCollectionTestSuite) TestSetupCleanAll() {
	client := NewMockClient().WithCollection("orders",
		bson.M{"_id": "one"},
		bson.M{"_id": "two"})

	_, err := NewTempCollection(s.ctx, "orders",
		WithClient(client),
		WithSetup(aztemp.CleanAllPolicy[bson.M]()))
	s.Require().NoError(err)

	s.Empty(client.Collections["orders"])
}

func (s *TempCollectionTestSuite) TestSetupCleanMatching() {
	client := NewMockClient().WithCollection("orders",
		bson.M{"_id": "one", "env": "test"},
		bson.M{"_id": "keep", "env": "prod"})

	_, err := NewTempCollection(s.ctx, "orders",
		WithClient(client),
		WithSetup(aztemp.CleanMatchingPolicy(func(doc bson.M) bool {
			return doc["env"] == "test"
		})))
	s.Require().NoError(err)

	s.NotContains(client.Collections["orders"], "one")
	s.Contains(client.Collections["orders"], "keep")
}

func (s *TempCollectionTestSuite) TestInsertDocumentTracks() {
	client := NewMockClient()
	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)

	d, err := c.InsertDocument(s.ctx, bson.M{"_id": "one", "total": 1})
	s.Require().NoError(err)
	s.False(d.Existed())
	s.Equal(1, client.Collections["orders"]["one"]["total"])
}

func (s *TempCollectionTestSuite) TestInsertDocumentGeneratesID() {
	client := NewMockClient()
	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)

	d, err := c.InsertDocument(s.ctx, bson.M{"total": 1})
	s.Require().NoError(err)
	s.NotNil(d.ID())
	s.Contains(client.Collections["orders"], documentKey(d.ID()))
}

func (s *TempCollectionTestSuite) TestInsertDocumentTwiceKeepsFirstHandle() {
	client := NewMockClient()
	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)

	first, err := c.InsertDocument(s.ctx, bson.M{"_id": "one", "total": 1})
	s.Require().NoError(err)
	second, err := c.InsertDocument(s.ctx, bson.M{"_id": "one", "total": 2})
	s.Require().NoError(err)

	s.Same(first, second, "repeated inserts reuse the original handle")
	s.Equal(2, client.Collections["orders"]["one"]["total"])
}

func (s *TempCollectionTestSuite) TestDisposeDropsCreatedCollection() {
	client := NewMockClient()
	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)
	_, err = c.InsertDocument(s.ctx, bson.M{"_id": "one"})
	s.Require().NoError(err)

	s.NoError(c.Dispose(s.ctx))

	s.Equal([]string{"orders"}, client.DroppedCollections)
	s.NotContains(client.Collections, "orders")
	s.Empty(client.DeletedDocuments, "collection drop subsumes per-document deletes")
}

func (s *TempCollectionTestSuite) TestDisposeLeavesPreExistingCollection() {
	client := NewMockClient().WithCollection("orders", bson.M{"_id": "keep"})
	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)
	_, err = c.InsertDocument(s.ctx, bson.M{"_id": "mine"})
	s.Require().NoError(err)

	s.NoError(c.Dispose(s.ctx))

	s.Empty(client.DroppedCollections)
	s.Contains(client.Collections["orders"], "keep")
	s.NotContains(client.Collections["orders"], "mine", "tracked documents are always removed")
}

func (s *TempCollectionTestSuite) TestDisposeRevertsReplacedDocument() {
	client := NewMockClient().WithCollection("orders", bson.M{"_id": "cfg", "v": "old"})
	c, err := NewTempCollection(s.ctx, "orders",
		WithClient(client),
		WithTeardown(aztemp.CleanAllPolicy[bson.M]()))
	s.Require().NoError(err)

	d, err := c.InsertDocument(s.ctx, bson.M{"_id": "cfg", "v": "new"})
	s.Require().NoError(err)
	s.True(d.Existed())

	s.NoError(c.Dispose(s.ctx))

	s.Equal("old", client.Collections["orders"]["cfg"]["v"],
		"replaced document must be reverted, and the teardown pass must not delete it afterwards")
}

func (s *TempCollectionTestSuite) TestDisposeTeardownCleanAll() {
	client := NewMockClient().WithCollection("orders", bson.M{"_id": "other"})
	c, err := NewTempCollection(s.ctx, "orders",
		WithClient(client),
		WithTeardown(aztemp.CleanAllPolicy[bson.M]()))
	s.Require().NoError(err)
	_, err = c.InsertDocument(s.ctx, bson.M{"_id": "mine"})
	s.Require().NoError(err)

	s.NoError(c.Dispose(s.ctx))

	s.Empty(client.Collections["orders"])
	s.Empty(client.DroppedCollections, "pre-existing collection itself survives")
}

func (s *TempCollectionTestSuite) TestDisposeTeardownCleanMatching() {
	client := NewMockClient().WithCollection("orders",
		bson.M{"_id": "x", "env": "test"},
		bson.M{"_id": "keep", "env": "prod"})
	c, err := NewTempCollection(s.ctx, "orders",
		WithClient(client),
		WithTeardown(aztemp.CleanMatchingPolicy(func(doc bson.M) bool {
			return doc["env"] == "test"
		})))
	s.Require().NoError(err)

	s.NoError(c.Dispose(s.ctx))

	s.NotContains(client.Collections["orders"], "x")
	s.Contains(client.Collections["orders"], "keep")
}

func (s *TempCollectionTestSuite) TestDisposeIsIdempotent() {
	client := NewMockClient()
	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)

	s.NoError(c.Dispose(s.ctx))
	s.NoError(c.Dispose(s.ctx))
	s.Equal([]string{"orders"}, client.DroppedCollections, "second Dispose must not drop again")
}

func (s *TempCollectionTestSuite) TestInsertAfterDispose() {
	c, err := NewTempCollection(s.ctx, "orders", WithClient(NewMockClient()))
	s.Require().NoError(err)
	s.NoError(c.Dispose(s.ctx))

	_, err = c.InsertDocument(s.ctx, bson.M{"_id": "late"})
	s.ErrorIs(err, aztemp.ErrDisposed)
}

func (s *TempCollectionTestSuite) TestDisposeCollectionAlreadyGone() {
	client := NewMockClient()
	c, err := NewTempCollection(s.ctx, "orders", WithClient(client))
	s.Require().NoError(err)

	// drop out-of-band
	s.NoError(client.DropCollection(s.ctx, "orders"))
	client.DroppedCollections = nil

	s.NoError(c.Dispose(s.ctx), "disposing a collection dropped out-of-band is not an error")
}

func TestTempCollection(t *testing.T) {
	suite.Run(t, new(TempCollectionTestSuite))
}
