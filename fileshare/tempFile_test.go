package fileshare

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/c2fo/aztemp"
)

type TempFileTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *TempFileTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *TempFileTestSuite) TestImplementsDisposable() {
	s.Implements((*aztemp.Disposable)(nil), &TempFile{})
}

func (s *TempFileTestSuite) TestCreatesNewFile() {
	client := NewMockClient().WithShare("data", nil)

	f, err := NewTempFile(s.ctx, client, "data", "new.csv", []byte("hello"))
	s.Require().NoError(err)

	s.False(f.Existed())
	s.Equal([]byte("hello"), client.Shares["data"]["new.csv"])
}

func (s *TempFileTestSuite) TestReplacesExistingFile() {
	client := NewMockClient().WithShare("data", map[string][]byte{"cfg.json": []byte("old")})

	f, err := NewTempFile(s.ctx, client, "data", "cfg.json", []byte("new"))
	s.Require().NoError(err)

	s.True(f.Existed())
	s.Equal([]byte("new"), client.Shares["data"]["cfg.json"])
}

func (s *TempFileTestSuite) TestContent() {
	client := NewMockClient().WithShare("data", nil)
	f, err := NewTempFile(s.ctx, client, "data", "new.csv", []byte("hello"))
	s.Require().NoError(err)

	content, err := f.Content(s.ctx)
	s.NoError(err)
	s.Equal([]byte("hello"), content)
}

func (s *TempFileTestSuite) TestDisposeDeletesCreatedFile() {
	client := NewMockClient().WithShare("data", nil)
	f, err := NewTempFile(s.ctx, client, "data", "new.csv", []byte("hello"))
	s.Require().NoError(err)

	s.NoError(f.Dispose(s.ctx))
	s.NotContains(client.Shares["data"], "new.csv")
}

func (s *TempFileTestSuite) TestDisposeRestoresReplacedFile() {
	client := NewMockClient().WithShare("data", map[string][]byte{"cfg.json": []byte("old")})
	f, err := NewTempFile(s.ctx, client, "data", "cfg.json", []byte("new"))
	s.Require().NoError(err)

	s.NoError(f.Dispose(s.ctx))
	s.Equal([]byte("old"), client.Shares["data"]["cfg.json"], "pre-existing content must be restored")
}

func (s *TempFileTestSuite) TestDisposeIsIdempotent() {
	client := NewMockClient().WithShare("data", nil)
	f, err := NewTempFile(s.ctx, client, "data", "new.csv", []byte("hello"))
	s.Require().NoError(err)

	s.NoError(f.Dispose(s.ctx))
	s.NoError(f.Dispose(s.ctx))
	s.Len(client.DeletedFiles, 1)
}

func (s *TempFileTestSuite) TestContentAfterDispose() {
	client := NewMockClient().WithShare("data", nil)
	f, err := NewTempFile(s.ctx, client, "data", "new.csv", []byte("hello"))
	s.Require().NoError(err)
	s.NoError(f.Dispose(s.ctx))

	_, err = f.Content(s.ctx)
	s.ErrorIs(err, aztemp.ErrDisposed)
}

func (s *TempFileTestSuite) TestRejectsInvalidNames() {
	client := NewMockClient()
	_, err := NewTempFile(s.ctx, client, "Bad_Share", "x.csv", nil)
	s.Error(err)
	_, err = NewTempFile(s.ctx, client, "data", " ", nil)
	s.Error(err)
}

func TestTempFile(t *testing.T) {
	suite.Run(t, new(TempFileTestSuite))
}
