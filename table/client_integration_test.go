//go:build aztempintegration

package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/testlog"
	"github.com/c2fo/aztemp/utils"
)

// ClientIntegrationTestSuite runs against a real storage account or Azurite.
// Configure AZTEMP_AZURE_STORAGE_ACCOUNT / AZTEMP_AZURE_STORAGE_ACCESS_KEY, and
// AZTEMP_AZURE_TABLES_SERVICE_URL when targeting the emulator.
type ClientIntegrationTestSuite struct {
	suite.Suite
	client *ClientImpl
}

func (s *ClientIntegrationTestSuite) SetupSuite() {
	client, err := NewClient(NewOptions())
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientIntegrationTestSuite) TestTempTableLifecycle() {
	ctx := context.Background()
	name := "aztemp" + utils.RandomName("")

	t, err := NewTempTable(ctx, name,
		WithClient(s.client),
		WithLogger(testlog.New(s.T())))
	s.Require().NoError(err)
	s.True(t.CreatedByFixture())

	_, err = t.UpsertEntity(ctx, Entity{
		PartitionKey: "us",
		RowKey:       "one",
		Properties:   map[string]any{"total": float64(42)},
	})
	s.Require().NoError(err)

	got, err := s.client.GetEntity(ctx, name, "us", "one")
	s.Require().NoError(err)
	s.Equal(float64(42), got.Properties["total"])

	s.Require().NoError(t.Dispose(ctx))

	_, err = s.client.GetEntity(ctx, name, "us", "one")
	s.ErrorIs(err, aztemp.ErrNotFound, "table must be gone after dispose")
}

func (s *ClientIntegrationTestSuite) TestTempEntityRevert() {
	ctx := context.Background()
	name := "aztemp" + utils.RandomName("")

	t, err := NewTempTable(ctx, name, WithClient(s.client))
	s.Require().NoError(err)
	defer func() { s.NoError(t.Dispose(ctx)) }()

	s.Require().NoError(s.client.UpsertEntity(ctx, name, Entity{
		PartitionKey: "us",
		RowKey:       "cfg",
		Properties:   map[string]any{"v": "original"},
	}))

	e, err := NewTempEntity(ctx, s.client, name, Entity{
		PartitionKey: "us",
		RowKey:       "cfg",
		Properties:   map[string]any{"v": "changed"},
	})
	s.Require().NoError(err)
	s.True(e.Existed())

	s.Require().NoError(e.Dispose(ctx))

	got, err := s.client.GetEntity(ctx, name, "us", "cfg")
	s.Require().NoError(err)
	s.Equal("original", got.Properties["v"])
}

func TestClientIntegration(t *testing.T) {
	suite.Run(t, new(ClientIntegrationTestSuite))
}
