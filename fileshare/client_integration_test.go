//go:build aztempintegration

package fileshare

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
// AZTEMP_AZURE_FILES_SERVICE_URL when targeting the emulator.
type ClientIntegrationTestSuite struct {
	suite.Suite
	client *ClientImpl
}

func (s *ClientIntegrationTestSuite) SetupSuite() {
	client, err := NewClient(NewOptions())
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientIntegrationTestSuite) TestTempShareLifecycle() {
	ctx := context.Background()
	name := utils.RandomName("aztemp")

	sh, err := NewTempShare(ctx, name,
		WithClient(s.client),
		WithLogger(testlog.New(s.T())))
	s.Require().NoError(err)
	s.True(sh.CreatedByFixture())

	_, err = sh.UploadFile(ctx, "hello.txt", []byte("hello world"))
	s.Require().NoError(err)

	content, err := s.client.DownloadFile(ctx, name, "hello.txt")
	s.Require().NoError(err)
	s.Equal([]byte("hello world"), content)

	s.Require().NoError(sh.Dispose(ctx))

	_, err = s.client.DownloadFile(ctx, name, "hello.txt")
	s.ErrorIs(err, aztemp.ErrNotFound, "share must be gone after dispose")
}

func (s *ClientIntegrationTestSuite) TestTempFileRestore() {
	ctx := context.Background()
	name := utils.RandomName("aztemp")

	sh, err := NewTempShare(ctx, name, WithClient(s.client))
	s.Require().NoError(err)
	defer func() { s.NoError(sh.Dispose(ctx)) }()

	s.Require().NoError(s.client.UploadFile(ctx, name, "cfg.json", []byte("original")))

	f, err := NewTempFile(ctx, s.client, name, "cfg.json", []byte("changed"))
	s.Require().NoError(err)
	s.True(f.Existed())

	s.Require().NoError(f.Dispose(ctx))

	content, err := s.client.DownloadFile(ctx, name, "cfg.json")
	s.Require().NoError(err)
	s.Equal([]byte("original"), content)
}

func TestClientIntegration(t *testing.T) {
	suite.Run(t, new(ClientIntegrationTestSuite))
}
