package nosql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/aztemp"
)

type TempItemTestSuite struct {
	suite.Suite
	ctx    context.Context
	client *MockClient
}

func (s *TempItemTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client = NewMockClient().WithContainer("orders")
}

func (s *TempItemTestSuite) TestImplementsDisposable() {
	s.Implements((*aztemp.Disposable)(nil), &TempItem{})
}

func (s *TempItemTestSuite) TestRejectsEmptyIdentity() {
	_, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "", nil))
	s.Error(err)
	_, err = NewTempItem(s.ctx, s.client, "orders", itemOf("", "one", nil))
	s.Error(err)
	_, err = NewTempItem(s.ctx, s.client, " ", itemOf("us", "one", nil))
	s.Error(err)
}

func (s *TempItemTestSuite) TestUpsertsNewItem() {
	i, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "one", map[string]any{"total": 1}))
	s.Require().NoError(err)

	s.False(i.Existed())
	s.Equal("one", i.ID())
	s.Equal("us", i.PartitionKey())
	s.Equal(1, s.client.Containers["orders"]["us/one"].Properties["total"])
}

func (s *TempItemTestSuite) TestSnapshotsExistingItem() {
	s.client.WithContainer("orders", itemOf("us", "one", map[string]any{"total": "old"}))

	i, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "one", map[string]any{"total": "new"}))
	s.Require().NoError(err)

	s.True(i.Existed())
	s.Equal("new", s.client.Containers["orders"]["us/one"].Properties["total"])
}

func (s *TempItemTestSuite) TestDisposeDeletesCreatedItem() {
	i, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "one", nil))
	s.Require().NoError(err)

	s.NoError(i.Dispose(s.ctx))

	s.NotContains(s.client.Containers["orders"], "us/one")
	s.Equal([]string{"orders/us/one"}, s.client.DeletedItems)
}

func (s *TempItemTestSuite) TestDisposeRestoresReplacedItem() {
	s.client.WithContainer("orders", itemOf("us", "one", map[string]any{"total": "old"}))

	i, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "one", map[string]any{"total": "new"}))
	s.Require().NoError(err)

	s.NoError(i.Dispose(s.ctx))

	s.Equal("old", s.client.Containers["orders"]["us/one"].Properties["total"])
	s.Empty(s.client.DeletedItems, "restored items are not deleted")
}

func (s *TempItemTestSuite) TestDisposeIsIdempotent() {
	i, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "one", nil))
	s.Require().NoError(err)

	s.NoError(i.Dispose(s.ctx))
	s.NoError(i.Dispose(s.ctx))
	s.Equal([]string{"orders/us/one"}, s.client.DeletedItems, "second Dispose must not delete again")
}

func (s *TempItemTestSuite) TestDisposeItemAlreadyGone() {
	i, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "one", nil))
	s.Require().NoError(err)

	// delete out-of-band
	s.NoError(s.client.DeleteItem(s.ctx, "orders", "us", "one"))
	s.client.DeletedItems = nil

	s.NoError(i.Dispose(s.ctx), "disposing an item deleted out-of-band is not an error")
}

func (s *TempItemTestSuite) TestSnapshotErrorSurfaces() {
	s.client.GetError = aztemp.Error("boom")
	_, err := NewTempItem(s.ctx, s.client, "orders", itemOf("us", "one", nil))
	s.Error(err)
}

func TestTempItem(t *testing.T) {
	suite.Run(t, new(TempItemTestSuite))
}
