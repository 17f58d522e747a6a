package datafactory

import (
	"go.uber.org/zap"

	"github.com/c2fo/aztemp/options"
)

const (
	optionNameClient    = "client"
	optionNameLogger    = "logger"
	optionNameSessionID = "sessionID"
	optionNameRowLimits = "rowLimits"
)

// WithClient is used to explicitly specify a Client for the fixture. Without it the
// fixture builds one from NewOptions().
func WithClient(c Client) options.NewFixtureOption[TempDebugSession] {
	return &clientOpt{client: c}
}

type clientOpt struct {
	client Client
}

// Apply applies the client to the fixture
func (o *clientOpt) Apply(s *TempDebugSession) {
	s.client = o.client
}

// NewFixtureOptionName returns the name of the option
func (o *clientOpt) NewFixtureOptionName() string {
	return optionNameClient
}

// WithLogger sets the logger the fixture reports its activity to.
func WithLogger(log *zap.Logger) options.NewFixtureOption[TempDebugSession] {
	return &loggerOpt{log: log}
}

type loggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *loggerOpt) Apply(s *TempDebugSession) {
	s.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *loggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}

// WithSessionID attaches the fixture to an already running debug session instead of
// starting a new one. An attached session is not deleted on Dispose.
func WithSessionID(sessionID string) options.NewFixtureOption[TempDebugSession] {
	return &sessionIDOpt{sessionID: sessionID}
}

type sessionIDOpt struct {
	sessionID string
}

// Apply applies the session id to the fixture
func (o *sessionIDOpt) Apply(s *TempDebugSession) {
	s.sessionID = o.sessionID
}

// NewFixtureOptionName returns the name of the option
func (o *sessionIDOpt) NewFixtureOptionName() string {
	return optionNameSessionID
}

// WithRowLimits sets how many rows preview queries fetch. The default is 100.
func WithRowLimits(rowLimits int32) options.NewFixtureOption[TempDebugSession] {
	return &rowLimitsOpt{rowLimits: rowLimits}
}

type rowLimitsOpt struct {
	rowLimits int32
}

// Apply applies the row limit to the fixture
func (o *rowLimitsOpt) Apply(s *TempDebugSession) {
	s.rowLimits = o.rowLimits
}

// NewFixtureOptionName returns the name of the option
func (o *rowLimitsOpt) NewFixtureOptionName() string {
	return optionNameRowLimits
}
