package fileshare

import (
	"bytes"
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/fileerror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/service"

	"github.com/c2fo/aztemp"
	"github.com/c2fo/aztemp/utils"
)

// The Client interface contains the File Share operations the fixtures need. This
// interface is here so we can write mocks over the actual functionality.
//
// The fixtures operate on files in the share's root directory.
type Client interface {
	CreateShareIfNotExists(ctx context.Context, shareName string) (bool, error)
	DeleteShare(ctx context.Context, shareName string) error
	ListFiles(ctx context.Context, shareName string) ([]FileInfo, error)
	UploadFile(ctx context.Context, shareName, fileName string, content []byte) error
	DownloadFile(ctx context.Context, shareName, fileName string) ([]byte, error)
	DeleteFile(ctx context.Context, shareName, fileName string) error
}

// FileInfo describes a file in a share's root directory. Cleanup filters match
// against it.
type FileInfo struct {
	// Name holds the file name.
	Name string
}

// ClientImpl is the main implementation that actually makes the calls to Azure File Shares.
type ClientImpl struct {
	service *service.Client
}

// NewClient initializes a new ClientImpl using the given options, falling back to
// NewOptions() when opts is nil.
func NewClient(opts *Options) (*ClientImpl, error) {
	if opts == nil {
		opts = NewOptions()
	}

	serviceURL := opts.serviceURL()

	// Token credentials require the request intent header on file shares.
	tokenOpts := &service.ClientOptions{
		FileRequestIntent: utils.Ptr(service.ShareTokenIntentBackup),
	}

	if opts.TenantID != "" && opts.ClientID != "" && opts.ClientSecret != "" {
		cred, err := azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
		if err != nil {
			return nil, err
		}
		svc, err := service.NewClient(serviceURL, cred, tokenOpts)
		if err != nil {
			return nil, err
		}
		return &ClientImpl{service: svc}, nil
	}

	if opts.AccountName != "" && opts.AccountKey != "" {
		cred, err := service.NewSharedKeyCredential(opts.AccountName, opts.AccountKey)
		if err != nil {
			return nil, err
		}
		svc, err := service.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, err
		}
		return &ClientImpl{service: svc}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	svc, err := service.NewClient(serviceURL, cred, tokenOpts)
	if err != nil {
		return nil, err
	}
	return &ClientImpl{service: svc}, nil
}

// CreateShareIfNotExists creates the share and reports whether this call created it.
// A share that already exists is not an error.
func (c *ClientImpl) CreateShareIfNotExists(ctx context.Context, shareName string) (bool, error) {
	_, err := c.service.NewShareClient(shareName).Create(ctx, nil)
	if err != nil {
		if fileerror.HasCode(err, fileerror.ShareAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteShare deletes the share and everything in it. Deleting a share that is
// already gone is not an error.
func (c *ClientImpl) DeleteShare(ctx context.Context, shareName string) error {
	_, err := c.service.NewShareClient(shareName).Delete(ctx, nil)
	if err != nil && !fileerror.HasCode(err, fileerror.ShareNotFound) {
		return err
	}
	return nil
}

// ListFiles returns every file in the share's root directory. A share that is gone
// returns aztemp.ErrNotFound.
func (c *ClientImpl) ListFiles(ctx context.Context, shareName string) ([]FileInfo, error) {
	var list []FileInfo
	pager := c.service.NewShareClient(shareName).NewRootDirectoryClient().NewListFilesAndDirectoriesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if fileerror.HasCode(err, fileerror.ShareNotFound) {
				return nil, aztemp.ErrNotFound
			}
			return nil, err
		}
		for _, item := range page.Segment.Files {
			if item.Name != nil {
				list = append(list, FileInfo{Name: *item.Name})
			}
		}
	}
	return list, nil
}

// UploadFile creates (or replaces) a file in the share's root directory with the
// given content. Uploading into a share that is gone returns aztemp.ErrNotFound.
func (c *ClientImpl) UploadFile(ctx context.Context, shareName, fileName string, content []byte) error {
	fc := c.service.NewShareClient(shareName).NewRootDirectoryClient().NewFileClient(fileName)
	if _, err := fc.Create(ctx, int64(len(content)), nil); err != nil {
		if fileerror.HasCode(err, fileerror.ShareNotFound) {
			return aztemp.ErrNotFound
		}
		return err
	}
	if len(content) == 0 {
		return nil
	}
	_, err := fc.UploadRange(ctx, 0, streaming.NopCloser(bytes.NewReader(content)), nil)
	if fileerror.HasCode(err, fileerror.ShareNotFound) {
		return aztemp.ErrNotFound
	}
	return err
}

// DownloadFile returns the full content of the file. A missing file (or share)
// returns aztemp.ErrNotFound.
func (c *ClientImpl) DownloadFile(ctx context.Context, shareName, fileName string) ([]byte, error) {
	fc := c.service.NewShareClient(shareName).NewRootDirectoryClient().NewFileClient(fileName)
	resp, err := fc.DownloadStream(ctx, nil)
	if err != nil {
		if fileerror.HasCode(err, fileerror.ResourceNotFound, fileerror.ShareNotFound) {
			return nil, aztemp.ErrNotFound
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

// DeleteFile deletes the file. Deleting a file that is already gone is not an error.
func (c *ClientImpl) DeleteFile(ctx context.Context, shareName, fileName string) error {
	fc := c.service.NewShareClient(shareName).NewRootDirectoryClient().NewFileClient(fileName)
	_, err := fc.Delete(ctx, nil)
	if err != nil && !fileerror.HasCode(err, fileerror.ResourceNotFound, fileerror.ShareNotFound) {
		return err
	}
	return nil
}
