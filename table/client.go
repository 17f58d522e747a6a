package table

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/c2fo/aztemp"
)

// Table Storage error codes the fixtures care about.
const (
	errCodeTableAlreadyExists = "TableAlreadyExists"
	errCodeTableNotFound      = "TableNotFound"
	errCodeResourceNotFound   = "ResourceNotFound"
	errCodeEntityNotFound     = "EntityNotFound"
)

// Entity is a Table Storage entity as the fixtures see it: its identity keys plus
// the remaining properties.
type Entity struct {
	PartitionKey string
	RowKey       string
	Properties   map[string]any
}

// The Client interface contains the Table Storage operations the fixtures need. This
// interface is here so we can write mocks over the actual functionality.
type Client interface {
	CreateTableIfNotExists(ctx context.Context, tableName string) (bool, error)
	DeleteTable(ctx context.Context, tableName string) error
	ListEntities(ctx context.Context, tableName string) ([]Entity, error)
	GetEntity(ctx context.Context, tableName, partitionKey, rowKey string) (Entity, error)
	UpsertEntity(ctx context.Context, tableName string, entity Entity) error
	DeleteEntity(ctx context.Context, tableName, partitionKey, rowKey string) error
}

// ClientImpl is the main implementation that actually makes the calls to Azure Table Storage.
type ClientImpl struct {
	service *aztables.ServiceClient
}

// NewClient initializes a new ClientImpl using the given options, falling back to
// NewOptions() when opts is nil.
func NewClient(opts *Options) (*ClientImpl, error) {
	if opts == nil {
		opts = NewOptions()
	}

	serviceURL := opts.serviceURL()

	if opts.TenantID != "" && opts.ClientID != "" && opts.ClientSecret != "" {
		cred, err := azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
		if err != nil {
			return nil, err
		}
		service, err := aztables.NewServiceClient(serviceURL, cred, nil)
		if err != nil {
			return nil, err
		}
		return &ClientImpl{service: service}, nil
	}

	if opts.AccountName != "" && opts.AccountKey != "" {
		cred, err := aztables.NewSharedKeyCredential(opts.AccountName, opts.AccountKey)
		if err != nil {
			return nil, err
		}
		service, err := aztables.NewServiceClientWithSharedKey(serviceURL, cred, nil)
		if err != nil {
			return nil, err
		}
		return &ClientImpl{service: service}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	service, err := aztables.NewServiceClient(serviceURL, cred, nil)
	if err != nil {
		return nil, err
	}
	return &ClientImpl{service: service}, nil
}

// CreateTableIfNotExists creates the table and reports whether this call created it.
func (c *ClientImpl) CreateTableIfNotExists(ctx context.Context, tableName string) (bool, error) {
	_, err := c.service.CreateTable(ctx, tableName, nil)
	if err != nil {
		if hasErrorCode(err, errCodeTableAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteTable deletes the table and every entity in it. Deleting a table that is
// already gone is not an error.
func (c *ClientImpl) DeleteTable(ctx context.Context, tableName string) error {
	_, err := c.service.DeleteTable(ctx, tableName, nil)
	if err != nil && !hasErrorCode(err, errCodeTableNotFound, errCodeResourceNotFound) {
		return err
	}
	return nil
}

// ListEntities returns every entity in the table. A table that is gone returns
// aztemp.ErrNotFound.
func (c *ClientImpl) ListEntities(ctx context.Context, tableName string) ([]Entity, error) {
	var list []Entity
	pager := c.service.NewClient(tableName).NewListEntitiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if hasErrorCode(err, errCodeTableNotFound, errCodeResourceNotFound) {
				return nil, aztemp.ErrNotFound
			}
			return nil, err
		}
		for _, raw := range page.Entities {
			entity, err := unmarshalEntity(raw)
			if err != nil {
				return nil, err
			}
			list = append(list, entity)
		}
	}
	return list, nil
}

// GetEntity returns the entity with the given keys, or aztemp.ErrNotFound.
func (c *ClientImpl) GetEntity(ctx context.Context, tableName, partitionKey, rowKey string) (Entity, error) {
	resp, err := c.service.NewClient(tableName).GetEntity(ctx, partitionKey, rowKey, nil)
	if err != nil {
		if hasErrorCode(err, errCodeResourceNotFound, errCodeEntityNotFound, errCodeTableNotFound) {
			return Entity{}, aztemp.ErrNotFound
		}
		return Entity{}, err
	}
	return unmarshalEntity(resp.Value)
}

// UpsertEntity inserts or fully replaces the entity identified by its keys. Upserting
// into a table that is gone returns aztemp.ErrNotFound.
func (c *ClientImpl) UpsertEntity(ctx context.Context, tableName string, entity Entity) error {
	marshaled, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	_, err = c.service.NewClient(tableName).UpsertEntity(ctx, marshaled, &aztables.UpsertEntityOptions{
		UpdateMode: aztables.UpdateModeReplace,
	})
	if hasErrorCode(err, errCodeTableNotFound) {
		return aztemp.ErrNotFound
	}
	return err
}

// DeleteEntity deletes the entity. Deleting an entity that is already gone is not
// an error.
func (c *ClientImpl) DeleteEntity(ctx context.Context, tableName, partitionKey, rowKey string) error {
	_, err := c.service.NewClient(tableName).DeleteEntity(ctx, partitionKey, rowKey, nil)
	if err != nil && !hasErrorCode(err, errCodeResourceNotFound, errCodeEntityNotFound, errCodeTableNotFound) {
		return err
	}
	return nil
}

func hasErrorCode(err error, codes ...string) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	for _, code := range codes {
		if respErr.ErrorCode == code {
			return true
		}
	}
	return false
}

func marshalEntity(e Entity) ([]byte, error) {
	m := make(map[string]any, len(e.Properties)+2)
	for k, v := range e.Properties {
		m[k] = v
	}
	m["PartitionKey"] = e.PartitionKey
	m["RowKey"] = e.RowKey
	return json.Marshal(m)
}

func unmarshalEntity(raw []byte) (Entity, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Entity{}, err
	}

	e := Entity{Properties: map[string]any{}}
	for k, v := range m {
		switch {
		case k == "PartitionKey":
			e.PartitionKey, _ = v.(string)
		case k == "RowKey":
			e.RowKey, _ = v.(string)
		case strings.Contains(k, "odata"):
			// service metadata and type annotations, not user properties
		default:
			e.Properties[k] = v
		}
	}
	return e, nil
}
