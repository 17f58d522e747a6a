package blob

import (
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/c2fo/aztemp"
)

// The Client interface contains the Blob Storage operations the fixtures need. This
// interface is here so we can write mocks over the actual functionality.
type Client interface {
	CreateContainerIfNotExists(ctx context.Context, containerName string) (bool, error)
	DeleteContainer(ctx context.Context, containerName string) error
	ListBlobs(ctx context.Context, containerName string) ([]BlobInfo, error)
	UploadBlob(ctx context.Context, containerName, blobName string, content []byte) error
	DownloadBlob(ctx context.Context, containerName, blobName string) ([]byte, error)
	DeleteBlob(ctx context.Context, containerName, blobName string) error
}

// BlobInfo describes a blob in a container. Cleanup filters match against it.
type BlobInfo struct {
	// Name holds the full blob name, including any virtual path.
	Name string
}

// ClientImpl is the main implementation that actually makes the calls to Azure Blob Storage.
type ClientImpl struct {
	client *azblob.Client
}

// NewClient initializes a new ClientImpl using the given options, falling back to
// NewOptions() when opts is nil.
func NewClient(opts *Options) (*ClientImpl, error) {
	if opts == nil {
		opts = NewOptions()
	}

	serviceURL := opts.serviceURL()

	// Service principal credentials take precedence, then shared key, then the
	// ambient credential chain (managed identity, CLI, etc.).
	if opts.TenantID != "" && opts.ClientID != "" && opts.ClientSecret != "" {
		cred, err := azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
		if err != nil {
			return nil, err
		}
		client, err := azblob.NewClient(serviceURL, cred, nil)
		if err != nil {
			return nil, err
		}
		return &ClientImpl{client: client}, nil
	}

	if opts.AccountName != "" && opts.AccountKey != "" {
		cred, err := azblob.NewSharedKeyCredential(opts.AccountName, opts.AccountKey)
		if err != nil {
			return nil, err
		}
		client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, err
		}
		return &ClientImpl{client: client}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, err
	}
	return &ClientImpl{client: client}, nil
}

// CreateContainerIfNotExists creates the container and reports whether this call
// created it. A container that already exists is not an error.
func (c *ClientImpl) CreateContainerIfNotExists(ctx context.Context, containerName string) (bool, error) {
	_, err := c.client.CreateContainer(ctx, containerName, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteContainer deletes the container and everything in it. Deleting a container
// that is already gone is not an error.
func (c *ClientImpl) DeleteContainer(ctx context.Context, containerName string) error {
	_, err := c.client.DeleteContainer(ctx, containerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return err
	}
	return nil
}

// ListBlobs returns every blob in the container. Each item contains the full key as
// specified by the azure blob (including the virtual 'path'). A container that is
// gone returns aztemp.ErrNotFound.
func (c *ClientImpl) ListBlobs(ctx context.Context, containerName string) ([]BlobInfo, error) {
	var list []BlobInfo
	pager := c.client.NewListBlobsFlatPager(containerName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if bloberror.HasCode(err, bloberror.ContainerNotFound) {
				return nil, aztemp.ErrNotFound
			}
			return nil, err
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				list = append(list, BlobInfo{Name: *item.Name})
			}
		}
	}
	return list, nil
}

// UploadBlob uploads content as a block blob, replacing any existing blob with the
// same name. Uploading into a container that is gone returns aztemp.ErrNotFound.
func (c *ClientImpl) UploadBlob(ctx context.Context, containerName, blobName string, content []byte) error {
	_, err := c.client.UploadBuffer(ctx, containerName, blobName, content, nil)
	if bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return aztemp.ErrNotFound
	}
	return err
}

// DownloadBlob returns the full content of the blob. A missing blob (or container)
// returns aztemp.ErrNotFound.
func (c *ClientImpl) DownloadBlob(ctx context.Context, containerName, blobName string) ([]byte, error) {
	resp, err := c.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, aztemp.ErrNotFound
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

// DeleteBlob deletes the blob. Deleting a blob that is already gone is not an error.
func (c *ClientImpl) DeleteBlob(ctx context.Context, containerName, blobName string) error {
	_, err := c.client.DeleteBlob(ctx, containerName, blobName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return err
	}
	return nil
}
