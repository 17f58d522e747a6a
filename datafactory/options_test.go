package datafactory

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type OptionsTestSuite struct {
	suite.Suite
}

func (s *OptionsTestSuite) TestNewOptionsReadsEnvironment() {
	s.T().Setenv("AZTEMP_AZURE_SUBSCRIPTION_ID", "00000000-0000-0000-0000-000000000000")
	s.T().Setenv("AZTEMP_AZURE_RESOURCE_GROUP", "test-rg")
	s.T().Setenv("AZTEMP_AZURE_DATA_FACTORY", "test-factory")

	opts := NewOptions()
	s.Equal("00000000-0000-0000-0000-000000000000", opts.SubscriptionID)
	s.Equal("test-rg", opts.ResourceGroup)
	s.Equal("test-factory", opts.FactoryName)
}

func TestOptions(t *testing.T) {
	suite.Run(t, new(OptionsTestSuite))
}
