//go:build aztempintegration

package nosql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/testlog"
	"github.com/c2fo/aztemp/utils"
)

// ClientIntegrationTestSuite runs against a real Cosmos DB account or the emulator.
// Configure AZTEMP_AZURE_COSMOS_ENDPOINT / AZTEMP_AZURE_COSMOS_KEY /
// AZTEMP_AZURE_COSMOS_DATABASE. The database must already exist.
type ClientIntegrationTestSuite struct {
	suite.Suite
	client *ClientImpl
}

func (s *ClientIntegrationTestSuite) SetupSuite() {
	client, err := NewClient(NewOptions())
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientIntegrationTestSuite) TestTempContainerLifecycle() {
	ctx := context.Background()
	name := utils.RandomName("aztemp")

	c, err := NewTempContainer(ctx, name,
		WithClient(s.client),
		WithLogger(testlog.New(s.T())))
	s.Require().NoError(err)
	s.True(c.CreatedByFixture())

	_, err = c.UpsertItem(ctx, Item{
		ID:           "one",
		PartitionKey: "us",
		Properties:   map[string]any{"total": float64(42)},
	})
	s.Require().NoError(err)

	got, err := s.client.GetItem(ctx, name, "us", "one")
	s.Require().NoError(err)
	s.Equal(float64(42), got.Properties["total"])

	s.Require().NoError(c.Dispose(ctx))

	_, err = s.client.GetItem(ctx, name, "us", "one")
	s.ErrorIs(err, aztemp.ErrNotFound, "container must be gone after dispose")
}

func (s *ClientIntegrationTestSuite) TestTempItemRevert() {
	ctx := context.Background()
	name := utils.RandomName("aztemp")

	c, err := NewTempContainer(ctx, name, WithClient(s.client))
	s.Require().NoError(err)
	defer func() { s.NoError(c.Dispose(ctx)) }()

	s.Require().NoError(s.client.UpsertItem(ctx, name, Item{
		ID:           "cfg",
		PartitionKey: "us",
		Properties:   map[string]any{"v": "original"},
	}))

	i, err := NewTempItem(ctx, s.client, name, Item{
		ID:           "cfg",
		PartitionKey: "us",
		Properties:   map[string]any{"v": "changed"},
	})
	s.Require().NoError(err)
	s.True(i.Existed())

	s.Require().NoError(i.Dispose(ctx))

	got, err := s.client.GetItem(ctx, name, "us", "cfg")
	s.Require().NoError(err)
	s.Equal("original", got.Properties["v"])
}

func TestClientIntegration(t *testing.T) {
	suite.Run(t, new(ClientIntegrationTestSuite))
}
