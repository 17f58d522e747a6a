package blob

import (
	"context"
	"sort"

	"github.com/c2fo/aztemp"
)

// MockClient is an in-memory implementation of blob.Client for unit tests. It keeps
// blobs per container and records which operations ran so tests can assert on the
// fixture's bookkeeping rather than on Azure itself.
type MockClient struct {
	// Containers maps container name to blob name to content.
	Containers map[string]map[string][]byte

	// CreateError, ListError, UploadError, DownloadError, DeleteError and
	// DeleteContainerError force the corresponding operation to fail.
	CreateError          error
	ListError            error
	UploadError          error
	DownloadError        error
	DeleteError          error
	DeleteContainerError error

	// DeletedContainers records DeleteContainer calls.
	DeletedContainers []string

	// DeletedBlobs records DeleteBlob calls as "container/blob".
	DeletedBlobs []string
}

// NewMockClient returns an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{Containers: map[string]map[string][]byte{}}
}

// WithContainer pre-populates a container with the given blobs and returns the mock
// for chaining.
func (m *MockClient) WithContainer(containerName string, blobs map[string][]byte) *MockClient {
	if m.Containers == nil {
		m.Containers = map[string]map[string][]byte{}
	}
	content := map[string][]byte{}
	for name, data := range blobs {
		content[name] = data
	}
	m.Containers[containerName] = content
	return m
}

// CreateContainerIfNotExists creates the container in memory.
func (m *MockClient) CreateContainerIfNotExists(_ context.Context, containerName string) (bool, error) {
	if m.CreateError != nil {
		return false, m.CreateError
	}
	if _, ok := m.Containers[containerName]; ok {
		return false, nil
	}
	if m.Containers == nil {
		m.Containers = map[string]map[string][]byte{}
	}
	m.Containers[containerName] = map[string][]byte{}
	return true, nil
}

// DeleteContainer removes the container and records the call.
func (m *MockClient) DeleteContainer(_ context.Context, containerName string) error {
	if m.DeleteContainerError != nil {
		return m.DeleteContainerError
	}
	delete(m.Containers, containerName)
	m.DeletedContainers = append(m.DeletedContainers, containerName)
	return nil
}

// ListBlobs returns the blobs of the container sorted by name, or aztemp.ErrNotFound
// when the container is gone, matching the real client.
func (m *MockClient) ListBlobs(_ context.Context, containerName string) ([]BlobInfo, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	blobs, ok := m.Containers[containerName]
	if !ok {
		return nil, aztemp.ErrNotFound
	}
	var list []BlobInfo
	for name := range blobs {
		list = append(list, BlobInfo{Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// UploadBlob stores the content in memory.
func (m *MockClient) UploadBlob(_ context.Context, containerName, blobName string, content []byte) error {
	if m.UploadError != nil {
		return m.UploadError
	}
	blobs, ok := m.Containers[containerName]
	if !ok {
		return aztemp.ErrNotFound
	}
	blobs[blobName] = append([]byte(nil), content...)
	return nil
}

// DownloadBlob returns the stored content or aztemp.ErrNotFound.
func (m *MockClient) DownloadBlob(_ context.Context, containerName, blobName string) ([]byte, error) {
	if m.DownloadError != nil {
		return nil, m.DownloadError
	}
	content, ok := m.Containers[containerName][blobName]
	if !ok {
		return nil, aztemp.ErrNotFound
	}
	return append([]byte(nil), content...), nil
}

// DeleteBlob removes the blob and records the call. Missing blobs are not an error,
// matching the real client.
func (m *MockClient) DeleteBlob(_ context.Context, containerName, blobName string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Containers[containerName], blobName)
	m.DeletedBlobs = append(m.DeletedBlobs, containerName+"/"+blobName)
	return nil
}
