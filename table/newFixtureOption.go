package table

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
func WithClient(c Client) options.NewFixtureOption[TempTable] {
	return &clientOpt{client: c}
}

type clientOpt struct {
	client Client
}

// Apply applies the client to the fixture
func (o *clientOpt) Apply(t *TempTable) {
	t.client = o.client
}

// NewFixtureOptionName returns the name of the option
func (o *clientOpt) NewFixtureOptionName() string {
	return optionNameClient
}

// WithLogger sets the logger the fixture reports its setup and teardown activity to.
func WithLogger(log *zap.Logger) options.NewFixtureOption[TempTable] {
	return &loggerOpt{log: log}
}

type loggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *loggerOpt) Apply(t *TempTable) {
	t.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *loggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}

// WithSetup sets the cleanup policy applied to entities already in the table when
// the fixture is created. The default leaves them in place.
func WithSetup(policy aztemp.Policy[Entity]) options.NewFixtureOption[TempTable] {
	return &setupOpt{policy: policy}
}

type setupOpt struct {
	policy aztemp.Policy[Entity]
}

// Apply applies the setup policy to the fixture
func (o *setupOpt) Apply(t *TempTable) {
	t.setup = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *setupOpt) NewFixtureOptionName() string {
	return optionNameSetup
}

// WithTeardown sets the cleanup policy applied on Dispose to entities the fixture
// did not upsert itself. The default leaves them in place.
func WithTeardown(policy aztemp.Policy[Entity]) options.NewFixtureOption[TempTable] {
	return &teardownOpt{policy: policy}
}

type teardownOpt struct {
	policy aztemp.Policy[Entity]
}

// Apply applies the teardown policy to the fixture
func (o *teardownOpt) Apply(t *TempTable) {
	t.teardown = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *teardownOpt) NewFixtureOptionName() string {
	return optionNameTeardown
}

// WithEntityLogger sets the logger for a TempEntity fixture.
func WithEntityLogger(log *zap.Logger) options.NewFixtureOption[TempEntity] {
	return &entityLoggerOpt{log: log}
}

type entityLoggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *entityLoggerOpt) Apply(e *TempEntity) {
	e.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *entityLoggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}
