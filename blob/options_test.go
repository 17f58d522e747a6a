package blob

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type OptionsTestSuite struct {
	suite.Suite
}

func (s *OptionsTestSuite) TestNewOptionsReadsEnvironment() {
	s.T().Setenv("AZTEMP_AZURE_STORAGE_ACCOUNT", "testaccount")
	s.T().Setenv("AZTEMP_AZURE_STORAGE_ACCESS_KEY", "testkey")
	s.T().Setenv("AZTEMP_AZURE_STORAGE_SERVICE_URL", "http://127.0.0.1:10000/testaccount")

	opts := NewOptions()
	s.Equal("testaccount", opts.AccountName)
	s.Equal("testkey", opts.AccountKey)
	s.Equal("http://127.0.0.1:10000/testaccount", opts.ServiceURL)
}

func (s *OptionsTestSuite) TestServiceURLDerivedFromAccount() {
	opts := &Options{AccountName: "prodaccount"}
	s.Equal("https://prodaccount.blob.core.windows.net/", opts.serviceURL())
}

func (s *OptionsTestSuite) TestExplicitServiceURLWins() {
	opts := &Options{
		AccountName: "prodaccount",
		ServiceURL:  "http://127.0.0.1:10000/devstoreaccount1",
	}
	s.Equal("http://127.0.0.1:10000/devstoreaccount1", opts.serviceURL())
}

func TestOptions(t *testing.T) {
	suite.Run(t, new(OptionsTestSuite))
}
