package fileshare

import (
	"context"
	"sort"

	"github.com/c2fo/aztemp"
)

// MockClient is an in-memory implementation of fileshare.Client for unit tests.
type MockClient struct {
	// Shares maps share name to file name to content.
	Shares map[string]map[string][]byte

	// CreateError, ListError, UploadError, DownloadError, DeleteError and
	// DeleteShareError force the corresponding operation to fail.
	CreateError      error
	ListError        error
	UploadError      error
	DownloadError    error
	DeleteError      error
	DeleteShareError error

	// DeletedShares records DeleteShare calls.
	DeletedShares []string

	// DeletedFiles records DeleteFile calls as "share/file".
	DeletedFiles []string
}

// NewMockClient returns an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{Shares: map[string]map[string][]byte{}}
}

// WithShare pre-populates a share with the given files and returns the mock for
// chaining.
func (m *MockClient) WithShare(shareName string, files map[string][]byte) *MockClient {
	if m.Shares == nil {
		m.Shares = map[string]map[string][]byte{}
	}
	content := map[string][]byte{}
	for name, data := range files {
		content[name] = data
	}
	m.Shares[shareName] = content
	return m
}

// CreateShareIfNotExists creates the share in memory.
func (m *MockClient) CreateShareIfNotExists(_ context.Context, shareName string) (bool, error) {
	if m.CreateError != nil {
		return false, m.CreateError
	}
	if _, ok := m.Shares[shareName]; ok {
		return false, nil
	}
	if m.Shares == nil {
		m.Shares = map[string]map[string][]byte{}
	}
	m.Shares[shareName] = map[string][]byte{}
	return true, nil
}

// DeleteShare removes the share and records the call.
func (m *MockClient) DeleteShare(_ context.Context, shareName string) error {
	if m.DeleteShareError != nil {
		return m.DeleteShareError
	}
	delete(m.Shares, shareName)
	m.DeletedShares = append(m.DeletedShares, shareName)
	return nil
}

// ListFiles returns the files of the share sorted by name, or aztemp.ErrNotFound when
// the share is gone, matching the real client.
func (m *MockClient) ListFiles(_ context.Context, shareName string) ([]FileInfo, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	files, ok := m.Shares[shareName]
	if !ok {
		return nil, aztemp.ErrNotFound
	}
	var list []FileInfo
	for name := range files {
		list = append(list, FileInfo{Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// UploadFile stores the content in memory.
func (m *MockClient) UploadFile(_ context.Context, shareName, fileName string, content []byte) error {
	if m.UploadError != nil {
		return m.UploadError
	}
	files, ok := m.Shares[shareName]
	if !ok {
		return aztemp.ErrNotFound
	}
	files[fileName] = append([]byte(nil), content...)
	return nil
}

// DownloadFile returns the stored content or aztemp.ErrNotFound.
func (m *MockClient) DownloadFile(_ context.Context, shareName, fileName string) ([]byte, error) {
	if m.DownloadError != nil {
		return nil, m.DownloadError
	}
	content, ok := m.Shares[shareName][fileName]
	if !ok {
		return nil, aztemp.ErrNotFound
	}
	return append([]byte(nil), content...), nil
}

// DeleteFile removes the file and records the call. Missing files are not an error,
// matching the real client.
func (m *MockClient) DeleteFile(_ context.Context, shareName, fileName string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Shares[shareName], fileName)
	m.DeletedFiles = append(m.DeletedFiles, shareName+"/"+fileName)
	return nil
}
