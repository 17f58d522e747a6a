package datafactory

import (
	"context"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// defaultRowLimits caps how many rows a preview query fetches.
const defaultRowLimits = int32(100)

// TempDebugSession is a temporary data-flow debug session. Construction starts a
// session (or attaches to a running one via WithSessionID). Dispose deletes the
// session only when the fixture started it.
type TempDebugSession struct {
	client    Client
	log       *zap.Logger
	sessionID string
	rowLimits int32

	startedByUs bool
	staged      map[string]bool

	disposed      bool
	disposeResult error
}

// NewTempDebugSession starts a data-flow debug session, waiting for the debug
// cluster to come up. The returned fixture must be disposed at the end of the test.
func NewTempDebugSession(ctx context.Context, opts ...options.NewFixtureOption[TempDebugSession]) (*TempDebugSession, error) {
	s := &TempDebugSession{
		log:       zap.NewNop(),
		rowLimits: defaultRowLimits,
		staged:    map[string]bool{},
	}
	options.ApplyOptions(s, opts...)

	if s.client == nil {
		client, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		s.client = client
	}

	if s.sessionID == "" {
		sessionID, err := s.client.CreateDebugSession(ctx)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		s.sessionID = sessionID
		s.startedByUs = true
	}
	s.log.Debug("debug session ready",
		zap.String("sessionID", s.sessionID),
		zap.Bool("started", s.startedByUs))

	return s, nil
}

// SessionID returns the debug session id.
func (s *TempDebugSession) SessionID() string {
	return s.sessionID
}

// StartedByFixture reports whether the fixture started the session or attached to a
// running one.
func (s *TempDebugSession) StartedByFixture() bool {
	return s.startedByUs
}

// RunDataFlow stages the named data flow into the session, executes a preview query
// against the target sink, and parses the result. The flow is staged once per
// session; repeat runs against other sinks reuse it.
func (s *TempDebugSession) RunDataFlow(ctx context.Context, dataFlowName, targetSinkName string) (*Preview, error) {
	if s.disposed {
		return nil, aztemp.ErrDisposed
	}
	if err := utils.ValidateItemName(dataFlowName); err != nil {
		return nil, err
	}
	if err := utils.ValidateItemName(targetSinkName); err != nil {
		return nil, err
	}

	if !s.staged[dataFlowName] {
		if err := s.client.AddDataFlow(ctx, s.sessionID, dataFlowName); err != nil {
			return nil, utils.WrapSetupError(err)
		}
		s.staged[dataFlowName] = true
		s.log.Debug("staged data flow",
			zap.String("sessionID", s.sessionID),
			zap.String("dataFlow", dataFlowName))
	}

	raw, err := s.client.ExecutePreview(ctx, s.sessionID, targetSinkName, s.rowLimits)
	if err != nil {
		return nil, err
	}
	preview, err := ParsePreview(raw)
	if err != nil {
		return nil, err
	}
	s.log.Debug("preview complete",
		zap.String("sessionID", s.sessionID),
		zap.String("dataFlow", dataFlowName),
		zap.String("sink", targetSinkName),
		zap.Int("rows", len(preview.Rows)))
	return preview, nil
}

// Dispose deletes the debug session when the fixture started it. A session the
// fixture only attached to is left running. Dispose is idempotent.
func (s *TempDebugSession) Dispose(ctx context.Context) error {
	if s.disposed {
		return s.disposeResult
	}
	s.disposed = true

	if !s.startedByUs {
		s.log.Debug("leaving attached debug session running", zap.String("sessionID", s.sessionID))
		return nil
	}

	d := aztemp.NewDisposables(aztemp.WithLogger(s.log))
	d.Add(aztemp.DisposeFunc(func(ctx context.Context) error {
		s.log.Debug("deleting debug session started by fixture", zap.String("sessionID", s.sessionID))
		return s.client.DeleteDebugSession(ctx, s.sessionID)
	}))
	if err := d.Dispose(ctx); err != nil {
		s.disposeResult = utils.WrapTeardownError(err)
	}
	return s.disposeResult
}
