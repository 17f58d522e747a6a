package table

import (
	"context"
	"sort"

	"github.com/c2fo/aztemp"
)

// MockClient is an in-memory implementation of table.Client for unit tests.
type MockClient struct {
	// Tables maps table name to entity key ("partition/row") to entity.
	Tables map[string]map[string]Entity

	CreateError      error
	ListError        error
	GetError         error
	UpsertError      error
	DeleteError      error
	DeleteTableError error

	// DeletedTables records DeleteTable calls.
	DeletedTables []string

	// DeletedEntities records DeleteEntity calls as "table/partition/row".
	DeletedEntities []string
}

// NewMockClient returns an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{Tables: map[string]map[string]Entity{}}
}

// WithTable pre-populates a table with the given entities and returns the mock for
// chaining.
func (m *MockClient) WithTable(tableName string, entities ...Entity) *MockClient {
	if m.Tables == nil {
		m.Tables = map[string]map[string]Entity{}
	}
	content := map[string]Entity{}
	for _, e := range entities {
		content[entityKey(e.PartitionKey, e.RowKey)] = e
	}
	m.Tables[tableName] = content
	return m
}

// CreateTableIfNotExists creates the table in memory.
func (m *MockClient) CreateTableIfNotExists(_ context.Context, tableName string) (bool, error) {
	if m.CreateError != nil {
		return false, m.CreateError
	}
	if _, ok := m.Tables[tableName]; ok {
		return false, nil
	}
	if m.Tables == nil {
		m.Tables = map[string]map[string]Entity{}
	}
	m.Tables[tableName] = map[string]Entity{}
	return true, nil
}

// DeleteTable removes the table and records the call.
func (m *MockClient) DeleteTable(_ context.Context, tableName string) error {
	if m.DeleteTableError != nil {
		return m.DeleteTableError
	}
	delete(m.Tables, tableName)
	m.DeletedTables = append(m.DeletedTables, tableName)
	return nil
}

// ListEntities returns the entities of the table sorted by key, or aztemp.ErrNotFound
// when the table is gone, matching the real client.
func (m *MockClient) ListEntities(_ context.Context, tableName string) ([]Entity, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	entities, ok := m.Tables[tableName]
	if !ok {
		return nil, aztemp.ErrNotFound
	}
	var list []Entity
	for _, e := range entities {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		return entityKey(list[i].PartitionKey, list[i].RowKey) < entityKey(list[j].PartitionKey, list[j].RowKey)
	})
	return list, nil
}

// GetEntity returns the stored entity or aztemp.ErrNotFound.
func (m *MockClient) GetEntity(_ context.Context, tableName, partitionKey, rowKey string) (Entity, error) {
	if m.GetError != nil {
		return Entity{}, m.GetError
	}
	e, ok := m.Tables[tableName][entityKey(partitionKey, rowKey)]
	if !ok {
		return Entity{}, aztemp.ErrNotFound
	}
	return e, nil
}

// UpsertEntity stores the entity in memory.
func (m *MockClient) UpsertEntity(_ context.Context, tableName string, entity Entity) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	entities, ok := m.Tables[tableName]
	if !ok {
		return aztemp.ErrNotFound
	}
	entities[entityKey(entity.PartitionKey, entity.RowKey)] = entity
	return nil
}

// DeleteEntity removes the entity and records the call. Missing entities are not an
// error, matching the real client.
func (m *MockClient) DeleteEntity(_ context.Context, tableName, partitionKey, rowKey string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Tables[tableName], entityKey(partitionKey, rowKey))
	m.DeletedEntities = append(m.DeletedEntities, tableName+"/"+entityKey(partitionKey, rowKey))
	return nil
}

func entityKey(partitionKey, rowKey string) string {
	return partitionKey + "/" + rowKey
}
