package mongodb

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/c2fo/aztemp"
)

// MockClient is an in-memory implementation of mongodb.Client for unit tests.
type MockClient struct {
	// Collections maps collection name to stringified "_id" to document.
	Collections map[string]map[string]bson.M

	CreateError         error
	ListError           error
	GetError            error
	UpsertError         error
	DeleteError         error
	DropCollectionError error

	// DroppedCollections records DropCollection calls.
	DroppedCollections []string

	// DeletedDocuments records DeleteDocument calls as "collection/id".
	DeletedDocuments []string
}

// NewMockClient returns an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{Collections: map[string]map[string]bson.M{}}
}

// WithCollection pre-populates a collection with the given documents and returns the
// mock for chaining.
func (m *MockClient) WithCollection(collectionName string, documents ...bson.M) *MockClient {
	if m.Collections == nil {
		m.Collections = map[string]map[string]bson.M{}
	}
	content := map[string]bson.M{}
	for _, doc := range documents {
		content[documentKey(doc["_id"])] = doc
	}
	m.Collections[collectionName] = content
	return m
}

// CreateCollectionIfNotExists creates the collection in memory.
func (m *MockClient) CreateCollectionIfNotExists(_ context.Context, collectionName string) (bool, error) {
	if m.CreateError != nil {
		return false, m.CreateError
	}
	if _, ok := m.Collections[collectionName]; ok {
		return false, nil
	}
	if m.Collections == nil {
		m.Collections = map[string]map[string]bson.M{}
	}
	m.Collections[collectionName] = map[string]bson.M{}
	return true, nil
}

// DropCollection removes the collection and records the call.
func (m *MockClient) DropCollection(_ context.Context, collectionName string) error {
	if m.DropCollectionError != nil {
		return m.DropCollectionError
	}
	delete(m.Collections, collectionName)
	m.DroppedCollections = append(m.DroppedCollections, collectionName)
	return nil
}

// ListDocuments returns the documents of the collection sorted by id.
func (m *MockClient) ListDocuments(_ context.Context, collectionName string) ([]bson.M, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var list []bson.M
	for _, doc := range m.Collections[collectionName] {
		list = append(list, doc)
	}
	sort.Slice(list, func(i, j int) bool {
		return documentKey(list[i]["_id"]) < documentKey(list[j]["_id"])
	})
	return list, nil
}

// GetDocument returns the stored document or aztemp.ErrNotFound.
func (m *MockClient) GetDocument(_ context.Context, collectionName string, id any) (bson.M, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	doc, ok := m.Collections[collectionName][documentKey(id)]
	if !ok {
		return nil, aztemp.ErrNotFound
	}
	return doc, nil
}

// UpsertDocument stores the document in memory.
func (m *MockClient) UpsertDocument(_ context.Context, collectionName string, document bson.M) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	docs, ok := m.Collections[collectionName]
	if !ok {
		return aztemp.ErrNotFound
	}
	docs[documentKey(document["_id"])] = document
	return nil
}

// DeleteDocument removes the document and records the call. Missing documents are
// not an error, matching the real client.
func (m *MockClient) DeleteDocument(_ context.Context, collectionName string, id any) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Collections[collectionName], documentKey(id))
	m.DeletedDocuments = append(m.DeletedDocuments, collectionName+"/"+documentKey(id))
	return nil
}

// documentKey prefixes non-string ids with their dynamic type so ids that stringify
// identically, like "1" and int32(1), do not alias in the tracked maps.
func documentKey(id any) string {
	if s, ok := id.(string); ok {
		return s
	}
	return fmt.Sprintf("%T:%v", id, id)
}
