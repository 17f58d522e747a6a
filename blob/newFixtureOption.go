package blob

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
func WithClient(c Client) options.NewFixtureOption[TempContainer] {
	return &clientOpt{client: c}
}

type clientOpt struct {
	client Client
}

// Apply applies the client to the fixture
func (o *clientOpt) Apply(c *TempContainer) {
	c.client = o.client
}

// NewFixtureOptionName returns the name of the option
func (o *clientOpt) NewFixtureOptionName() string {
	return optionNameClient
}

// WithLogger sets the logger the fixture reports its setup and teardown activity to.
func WithLogger(log *zap.Logger) options.NewFixtureOption[TempContainer] {
	return &loggerOpt{log: log}
}

type loggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *loggerOpt) Apply(c *TempContainer) {
	c.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *loggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}

// WithSetup sets the cleanup policy applied to blobs already in the container when
// the fixture is created. The default leaves them in place.
func WithSetup(policy aztemp.Policy[BlobInfo]) options.NewFixtureOption[TempContainer] {
	return &setupOpt{policy: policy}
}

type setupOpt struct {
	policy aztemp.Policy[BlobInfo]
}

// Apply applies the setup policy to the fixture
func (o *setupOpt) Apply(c *TempContainer) {
	c.setup = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *setupOpt) NewFixtureOptionName() string {
	return optionNameSetup
}

// WithTeardown sets the cleanup policy applied on Dispose to blobs the fixture did
// not upload itself. The default leaves them in place. Blobs uploaded through the
// fixture are always deleted, and a container created by the fixture is deleted
// wholesale, regardless of this policy.
func WithTeardown(policy aztemp.Policy[BlobInfo]) options.NewFixtureOption[TempContainer] {
	return &teardownOpt{policy: policy}
}

type teardownOpt struct {
	policy aztemp.Policy[BlobInfo]
}

// Apply applies the teardown policy to the fixture
func (o *teardownOpt) Apply(c *TempContainer) {
	c.teardown = o.policy
}

// NewFixtureOptionName returns the name of the option
func (o *teardownOpt) NewFixtureOptionName() string {
	return optionNameTeardown
}

// WithBlobLogger sets the logger for a TempBlob fixture.
func WithBlobLogger(log *zap.Logger) options.NewFixtureOption[TempBlob] {
	return &blobLoggerOpt{log: log}
}

type blobLoggerOpt struct {
	log *zap.Logger
}

// Apply applies the logger to the fixture
func (o *blobLoggerOpt) Apply(b *TempBlob) {
	b.log = o.log
}

// NewFixtureOptionName returns the name of the option
func (o *blobLoggerOpt) NewFixtureOptionName() string {
	return optionNameLogger
}
