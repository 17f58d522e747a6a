package nosql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/c2fo/aztemp"
)

// Item is a Cosmos DB NoSQL item as the fixtures see it: its identity plus the
// remaining properties. Cosmos system properties (_rid, _etag, ...) are stripped.
type Item struct {
	ID           string
	PartitionKey string
	Properties   map[string]any
}

// The Client interface contains the Cosmos DB NoSQL operations the fixtures need.
// This interface is here so we can write mocks over the actual functionality.
//
// All operations run against the database named in Options. The partition key
// value of an Item is stored under the field named by Options.PartitionKeyPath.
type Client interface {
	CreateContainerIfNotExists(ctx context.Context, containerName string) (bool, error)
	DeleteContainer(ctx context.Context, containerName string) error
	ListItems(ctx context.Context, containerName string) ([]Item, error)
	GetItem(ctx context.Context, containerName, partitionKey, id string) (Item, error)
	UpsertItem(ctx context.Context, containerName string, item Item) error
	DeleteItem(ctx context.Context, containerName, partitionKey, id string) error
}

// ClientImpl is the main implementation that actually makes the calls to Cosmos DB.
type ClientImpl struct {
	database *azcosmos.DatabaseClient
	pkPath   string
}

// NewClient initializes a new ClientImpl using the given options, falling back to
// NewOptions() when opts is nil. The database must already exist.
func NewClient(opts *Options) (*ClientImpl, error) {
	if opts == nil {
		opts = NewOptions()
	}

	client, err := newCosmosClient(opts)
	if err != nil {
		return nil, err
	}
	database, err := client.NewDatabase(opts.Database)
	if err != nil {
		return nil, err
	}
	return &ClientImpl{database: database, pkPath: opts.partitionKeyPath()}, nil
}

func newCosmosClient(opts *Options) (*azcosmos.Client, error) {
	if opts.Key != "" {
		cred, err := azcosmos.NewKeyCredential(opts.Key)
		if err != nil {
			return nil, err
		}
		return azcosmos.NewClientWithKey(opts.Endpoint, cred, nil)
	}

	if opts.TenantID != "" && opts.ClientID != "" && opts.ClientSecret != "" {
		cred, err := azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
		if err != nil {
			return nil, err
		}
		return azcosmos.NewClient(opts.Endpoint, cred, nil)
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	return azcosmos.NewClient(opts.Endpoint, cred, nil)
}

// CreateContainerIfNotExists creates the container with the configured partition key
// path and reports whether this call created it.
func (c *ClientImpl) CreateContainerIfNotExists(ctx context.Context, containerName string) (bool, error) {
	properties := azcosmos.ContainerProperties{
		ID: containerName,
		PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
			Paths: []string{c.pkPath},
		},
	}
	_, err := c.database.CreateContainer(ctx, properties, nil)
	if err != nil {
		if hasStatusCode(err, http.StatusConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteContainer deletes the container and every item in it. Deleting a container
// that is already gone is not an error.
func (c *ClientImpl) DeleteContainer(ctx context.Context, containerName string) error {
	container, err := c.database.NewContainer(containerName)
	if err != nil {
		return err
	}
	_, err = container.Delete(ctx, nil)
	if err != nil && !hasStatusCode(err, http.StatusNotFound) {
		return err
	}
	return nil
}

// ListItems returns every item in the container via a cross-partition query. A
// container that is gone returns aztemp.ErrNotFound.
func (c *ClientImpl) ListItems(ctx context.Context, containerName string) ([]Item, error) {
	container, err := c.database.NewContainer(containerName)
	if err != nil {
		return nil, err
	}

	var list []Item
	pager := container.NewQueryItemsPager("SELECT * FROM c", azcosmos.PartitionKey{}, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if hasStatusCode(err, http.StatusNotFound) {
				return nil, aztemp.ErrNotFound
			}
			return nil, err
		}
		for _, raw := range page.Items {
			item, err := c.unmarshalItem(raw)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
	}
	return list, nil
}

// GetItem returns the item with the given identity, or aztemp.ErrNotFound.
func (c *ClientImpl) GetItem(ctx context.Context, containerName, partitionKey, id string) (Item, error) {
	container, err := c.database.NewContainer(containerName)
	if err != nil {
		return Item{}, err
	}
	resp, err := container.ReadItem(ctx, azcosmos.NewPartitionKeyString(partitionKey), id, nil)
	if err != nil {
		if hasStatusCode(err, http.StatusNotFound) {
			return Item{}, aztemp.ErrNotFound
		}
		return Item{}, err
	}
	return c.unmarshalItem(resp.Value)
}

// UpsertItem inserts or fully replaces the item identified by its id and partition
// key. Upserting into a container that is gone returns aztemp.ErrNotFound.
func (c *ClientImpl) UpsertItem(ctx context.Context, containerName string, item Item) error {
	container, err := c.database.NewContainer(containerName)
	if err != nil {
		return err
	}
	raw, err := c.marshalItem(item)
	if err != nil {
		return err
	}
	_, err = container.UpsertItem(ctx, azcosmos.NewPartitionKeyString(item.PartitionKey), raw, nil)
	if hasStatusCode(err, http.StatusNotFound) {
		return aztemp.ErrNotFound
	}
	return err
}

// DeleteItem deletes the item. Deleting an item that is already gone is not an error.
func (c *ClientImpl) DeleteItem(ctx context.Context, containerName, partitionKey, id string) error {
	container, err := c.database.NewContainer(containerName)
	if err != nil {
		return err
	}
	_, err = container.DeleteItem(ctx, azcosmos.NewPartitionKeyString(partitionKey), id, nil)
	if err != nil && !hasStatusCode(err, http.StatusNotFound) {
		return err
	}
	return nil
}

func hasStatusCode(err error, statusCode int) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == statusCode
}

// pkField is the top-level JSON field the partition key value lives under.
func (c *ClientImpl) pkField() string {
	return strings.TrimPrefix(c.pkPath, "/")
}

func (c *ClientImpl) marshalItem(item Item) ([]byte, error) {
	m := make(map[string]any, len(item.Properties)+2)
	for k, v := range item.Properties {
		m[k] = v
	}
	m["id"] = item.ID
	m[c.pkField()] = item.PartitionKey
	return json.Marshal(m)
}

func (c *ClientImpl) unmarshalItem(raw []byte) (Item, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Item{}, err
	}

	item := Item{Properties: map[string]any{}}
	for k, v := range m {
		switch {
		case k == "id":
			item.ID, _ = v.(string)
		case k == c.pkField():
			item.PartitionKey, _ = v.(string)
		case strings.HasPrefix(k, "_"):
			// Cosmos system properties, not user data
		default:
			item.Properties[k] = v
		}
	}
	return item, nil
}
