package testlog_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"

	"github.com/c2fo/aztemp/testlog"
)

type testlogSuite struct {
	suite.Suite
}

func (s *testlogSuite) TestNew() {
	log := testlog.New(s.T())
	s.NotNil(log)
	log.Info("visible in -v output only")
}

func (s *testlogSuite) TestNewAt() {
	log := testlog.NewAt(s.T(), zapcore.WarnLevel)
	s.NotNil(log)
	s.False(log.Core().Enabled(zapcore.DebugLevel))
	s.True(log.Core().Enabled(zapcore.ErrorLevel))
}

func (s *testlogSuite) TestDiscard() {
	log := testlog.Discard()
	s.NotNil(log)
	s.False(log.Core().Enabled(zapcore.ErrorLevel))
}

func TestTestlog(t *testing.T) {
	suite.Run(t, new(testlogSuite))
}
