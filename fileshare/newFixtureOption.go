package fileshare

import (
	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
)

const (
	optionNameClient   = "client"
	optionNameLogger   = "logger"
	optionNameSetup    = "setup"
	optionNameTeardown = "teardown"
)

// WithClient is used to explicitly specify a Client for the fixture. Without it the
// fixture builds one from NewOptions().
func WithClient(c Client) options.NewFixtureOption[TempShare] {
	return &clientOpt{client: c}
}

type clientOpt struct {
	client Client
}

// Apply applies the client to the fixture
func (o *clientOpt) Apply(s *TempShare) {
	s.client = o.client
}

// NewFixtureOptionName returns the name of the option
func (o *clientOpt) NewFixtureOptionName() string {
	return optionNameClient
}

// WithLogger sets the logger the fixture reports its setup and teardown activity to.
func WithLogger(log *zap.Logger) options.NewFixtureOption[TempShare] {
	return &loggerOpt{log: log}
}

type loggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *loggerOpt) Apply(s *TempShare) {
	s.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *loggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}

// WithSetup sets the cleanup policy applied to files already in the share when the
// fixture is created. The default leaves them in place.
func WithSetup(policy aztemp.Policy[FileInfo]) options.NewFixtureOption[TempShare] {
	return &setupOpt{policy: policy}
}

type setupOpt struct {
	policy aztemp.Policy[FileInfo]
}

// Apply applies the setup policy to the fixture
func (o *setupOpt) Apply(s *TempShare) {
	s.setup = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *setupOpt) NewFixtureOptionName() string {
	return optionNameSetup
}

// WithTeardown sets the cleanup policy applied on Dispose to files the fixture did
// not upload itself. The default leaves them in place. Files uploaded through the
// fixture are always deleted, and a share created by the fixture is deleted
// wholesale, regardless of this policy.
func WithTeardown(policy aztemp.Policy[FileInfo]) options.NewFixtureOption[TempShare] {
	return &teardownOpt{policy: policy}
}

type teardownOpt struct {
	policy aztemp.Policy[FileInfo]
}

// Apply applies the teardown policy to the fixture
func (o *teardownOpt) Apply(s *TempShare) {
	s.teardown = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *teardownOpt) NewFixtureOptionName() string {
	return optionNameTeardown
}

// WithFileLogger sets the logger for a TempFile fixture.
func WithFileLogger(log *zap.Logger) options.NewFixtureOption[TempFile] {
	return &fileLoggerOpt{log: log}
}

type fileLoggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *fileLoggerOpt) Apply(f *TempFile) {
	f.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *fileLoggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}
