package fileshare

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/options"
	"github.com/c2fo/aztemp/utils"
)

// TempShare is a temporary Azure file share. Construction creates the share when it
// does not exist yet and applies the setup policy to whatever is already in it.
// Dispose removes the share when the fixture created it; otherwise it reconciles the
// files uploaded through the fixture and applies the teardown policy to the rest.
type TempShare struct {
	client Client
	log    *zap.Logger
	name   string

	setup    aztemp.Policy[FileInfo]
	teardown aztemp.Policy[FileInfo]

	createdByUs  bool
	tracked      map[string]*TempFile
	trackedOrder []string

	disposed      bool
	disposeResult error
}

// NewTempShare creates (or attaches to) the named share and applies the setup
// policy. The returned fixture must be disposed at the end of the test.
func NewTempShare(ctx context.Context, shareName string, opts ...options.NewFixtureOption[TempShare]) (*TempShare, error) {
	if err := utils.ValidateContainerName(shareName); err != nil {
		return nil, err
	}

	s := &TempShare{
		name:    shareName,
		log:     zap.NewNop(),
		tracked: map[string]*TempFile{},
	}
	options.ApplyOptions(s, opts...)

	if s.client == nil {
		client, err := NewClient(nil)
		if err != nil {
			return nil, utils.WrapCreateError(err)
		}
		s.client = client
	}

	created, err := s.client.CreateShareIfNotExists(ctx, shareName)
	if err != nil {
		return nil, utils.WrapCreateError(err)
	}
	s.createdByUs = created
	s.log.Debug("file share ready",
		zap.String("share", shareName),
		zap.Bool("created", created),
		zap.Stringer("setup", s.setup.Mode()),
		zap.Stringer("teardown", s.teardown.Mode()))

	if err := s.cleanOnSetup(ctx); err != nil {
		return nil, utils.WrapSetupError(err)
	}

	return s, nil
}

// Name returns the share name.
func (s *TempShare) Name() string {
	return s.name
}

// CreatedByFixture reports whether the fixture created the share or attached to a
// pre-existing one.
func (s *TempShare) CreatedByFixture() bool {
	return s.createdByUs
}

// Client returns the client the fixture operates through, so tests can arrange
// additional state or assert on the share's content.
func (s *TempShare) Client() Client {
	return s.client
}

// UploadFile uploads content through a TempFile handle, which is tracked for
// reconciliation on Dispose: a file that did not exist before is deleted, a replaced
// file is restored to its prior content.
func (s *TempShare) UploadFile(ctx context.Context, fileName string, content []byte) (*TempFile, error) {
	if s.disposed {
		return nil, aztemp.ErrDisposed
	}
	if err := utils.ValidateItemName(fileName); err != nil {
		return nil, err
	}

	// A name uploaded before keeps its original handle, so the fixture still
	// restores the state from before the first upload.
	if existing, ok := s.tracked[fileName]; ok {
		if err := s.client.UploadFile(ctx, s.name, fileName, content); err != nil {
			return nil, utils.WrapUploadError(err)
		}
		return existing, nil
	}

	f, err := NewTempFile(ctx, s.client, s.name, fileName, content, WithFileLogger(s.log))
	if err != nil {
		return nil, err
	}
	s.tracked[fileName] = f
	s.trackedOrder = append(s.trackedOrder, fileName)
	s.log.Debug("uploaded file", zap.String("share", s.name), zap.String("file", fileName))
	return f, nil
}

// Dispose reconciles the share. Tracked files are deleted or restored first, then
// the teardown policy runs over the remaining files, and a share created by the
// fixture is deleted wholesale (which subsumes both). Failed steps are retried and
// leftover errors aggregated. Dispose is idempotent.
func (s *TempShare) Dispose(ctx context.Context) error {
	if s.disposed {
		return s.disposeResult
	}
	s.disposed = true

	d := aztemp.NewDisposables(aztemp.WithLogger(s.log))

	if s.createdByUs {
		d.Add(aztemp.DisposeFunc(func(ctx context.Context) error {
			s.log.Debug("deleting share created by fixture", zap.String("share", s.name))
			return s.client.DeleteShare(ctx, s.name)
		}))
	} else {
		// Disposal runs in reverse order: tracked files go first, the
		// teardown policy pass last.
		if s.teardown.Mode() != aztemp.LeaveAll {
			d.Add(aztemp.DisposeFunc(s.cleanOnTeardown))
		}
		for _, fileName := range s.trackedOrder {
			d.Add(s.tracked[fileName])
		}
	}

	if err := d.Dispose(ctx); err != nil {
		s.disposeResult = utils.WrapTeardownError(err)
	}
	return s.disposeResult
}

func (s *TempShare) cleanOnSetup(ctx context.Context) error {
	if s.setup.Mode() == aztemp.LeaveAll {
		return nil
	}

	files, err := s.client.ListFiles(ctx, s.name)
	if err != nil {
		return err
	}
	for _, f := range files {
		if !s.setup.ShouldClean(f) {
			continue
		}
		if err := s.client.DeleteFile(ctx, s.name, f.Name); err != nil {
			return err
		}
		s.log.Debug("cleaned pre-existing file", zap.String("share", s.name), zap.String("file", f.Name))
	}
	return nil
}

func (s *TempShare) cleanOnTeardown(ctx context.Context) error {
	files, err := s.client.ListFiles(ctx, s.name)
	if errors.Is(err, aztemp.ErrNotFound) {
		// share deleted out-of-band, nothing left to reconcile
		s.log.Debug("share gone before teardown", zap.String("share", s.name))
		return nil
	}
	if err != nil {
		return err
	}
	for _, f := range files {
		// tracked files were already reconciled in their own disposal step,
		// possibly by restoring earlier content that must survive
		if _, ok := s.tracked[f.Name]; ok {
			continue
		}
		if !s.teardown.ShouldClean(f) {
			continue
		}
		if err := s.client.DeleteFile(ctx, s.name, f.Name); err != nil {
			return err
		}
		s.log.Debug("cleaned file on teardown", zap.String("share", s.name), zap.String("file", f.Name))
	}
	return nil
}
