package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
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
func WithClient(c Client) options.NewFixtureOption[TempCollection] {
	return &clientOpt{client: c}
}

type clientOpt struct {
	client Client
}

// Apply applies the client to the fixture
func (o *clientOpt) Apply(c *TempCollection) {
	c.client = o.client
}

// NewFixtureOptionName returns the name of the option
func (o *clientOpt) NewFixtureOptionName() string {
	return optionNameClient
}

// WithLogger sets the logger the fixture reports its setup and teardown activity to.
func WithLogger(log *zap.Logger) options.NewFixtureOption[TempCollection] {
	return &loggerOpt{log: log}
}

type loggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *loggerOpt) Apply(c *TempCollection) {
	c.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *loggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}

// WithSetup sets the cleanup policy applied to documents already in the collection
// when the fixture is created. The default leaves them in place.
func WithSetup(policy aztemp.Policy[bson.M]) options.NewFixtureOption[TempCollection] {
	return &setupOpt{policy: policy}
}

type setupOpt struct {
	policy aztemp.Policy[bson.M]
}

// Apply applies the setup policy to the fixture
func (o *setupOpt) Apply(c *TempCollection) {
	c.setup = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *setupOpt) NewFixtureOptionName() string {
	return optionNameSetup
}

// WithTeardown sets the cleanup policy applied on Dispose to documents the fixture
// did not insert itself. The default leaves them in place.
func WithTeardown(policy aztemp.Policy[bson.M]) options.NewFixtureOption[TempCollection] {
	return &teardownOpt{policy: policy}
}

type teardownOpt struct {
	policy aztemp.Policy[bson.M]
}

// Apply applies the teardown policy to the fixture
func (o *teardownOpt) Apply(c *TempCollection) {
	c.teardown = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *teardownOpt) NewFixtureOptionName() string {
	return optionNameTeardown
}

// WithDocumentLogger sets the logger for a TempDocument fixture.
func WithDocumentLogger(log *zap.Logger) options.NewFixtureOption[TempDocument] {
	return &documentLoggerOpt{log: log}
}

type documentLoggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *documentLoggerOpt) Apply(d *TempDocument) {
	d.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *documentLoggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}
