package nosql

import (
	"context"
	"sort"

	"github.com/c2fo/aztemp"
)

// MockClient is an in-memory implementation of nosql.Client for unit tests.
type MockClient struct {
	// Containers maps container name to item key ("partition/id") to item.
	Containers map[string]map[string]Item

	CreateError          error
	ListError            error
	GetError             error
	UpsertError          error
	DeleteError          error
	DeleteContainerError error

	// DeletedContainers records DeleteContainer calls.
	DeletedContainers []string

	// DeletedItems records DeleteItem calls as "container/partition/id".
	DeletedItems []string
}

// NewMockClient returns an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{Containers: map[string]map[string]Item{}}
}

// WithContainer pre-populates a container with the given items and returns the mock
// for chaining.
func (m *MockClient) WithContainer(containerName string, items ...Item) *MockClient {
	if m.Containers == nil {
		m.Containers = map[string]map[string]Item{}
	}
	content := map[string]Item{}
	for _, item := range items {
		content[itemKey(item.PartitionKey, item.ID)] = item
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
		m.Containers = map[string]map[string]Item{}
	}
	m.Containers[containerName] = map[string]Item{}
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

// ListItems returns the items of the container sorted by key, or aztemp.ErrNotFound
// when the container is gone, matching the real client.
func (m *MockClient) ListItems(_ context.Context, containerName string) ([]Item, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	items, ok := m.Containers[containerName]
	if !ok {
		return nil, aztemp.ErrNotFound
	}
	var list []Item
	for _, item := range items {
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool {
		return itemKey(list[i].PartitionKey, list[i].ID) < itemKey(list[j].PartitionKey, list[j].ID)
	})
	return list, nil
}

// GetItem returns the stored item or aztemp.ErrNotFound.
func (m *MockClient) GetItem(_ context.Context, containerName, partitionKey, id string) (Item, error) {
	if m.GetError != nil {
		return Item{}, m.GetError
	}
	item, ok := m.Containers[containerName][itemKey(partitionKey, id)]
	if !ok {
		return Item{}, aztemp.ErrNotFound
	}
	return item, nil
}

// UpsertItem stores the item in memory.
func (m *MockClient) UpsertItem(_ context.Context, containerName string, item Item) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	items, ok := m.Containers[containerName]
	if !ok {
		return aztemp.ErrNotFound
	}
	items[itemKey(item.PartitionKey, item.ID)] = item
	return nil
}

// DeleteItem removes the item and records the call. Missing items are not an error,
// matching the real client.
func (m *MockClient) DeleteItem(_ context.Context, containerName, partitionKey, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Containers[containerName], itemKey(partitionKey, id))
	m.DeletedItems = append(m.DeletedItems, containerName+"/"+itemKey(partitionKey, id))
	return nil
}

func itemKey(partitionKey, id string) string {
	return partitionKey + "/" + id
}
