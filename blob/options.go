package blob

import (
	"fmt"
	"os"
)

// Options contains options necessary to authenticate against Azure Blob Storage.
type Options struct {
	// ServiceURL holds the blob service endpoint. When empty it is derived from
	// AccountName. Set it explicitly to target an emulator such as Azurite.
	ServiceURL string

	// AccountName holds the Azure storage account name for authentication
	AccountName string

	// AccountKey holds the Azure storage account key for authentication
	AccountKey string

	// TenantID holds the Azure Service Account tenant id for authentication
	TenantID string

	// ClientID holds the Azure Service Account client id for authentication
	ClientID string

	// ClientSecret holds the Azure Service Account client secret for authentication
	ClientSecret string
}

// NewOptions creates a new Options struct seeded from the environment.
func NewOptions() *Options {
	return &Options{
		ServiceURL:   os.Getenv("AZTEMP_AZURE_STORAGE_SERVICE_URL"),
		AccountName:  os.Getenv("AZTEMP_AZURE_STORAGE_ACCOUNT"),
		AccountKey:   os.Getenv("AZTEMP_AZURE_STORAGE_ACCESS_KEY"),
		TenantID:     os.Getenv("AZTEMP_AZURE_TENANT_ID"),
		ClientID:     os.Getenv("AZTEMP_AZURE_CLIENT_ID"),
		ClientSecret: os.Getenv("AZTEMP_AZURE_CLIENT_SECRET"),
	}
}

func (o *Options) serviceURL() string {
	if o.ServiceURL != "" {
		return o.ServiceURL
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net/", o.AccountName)
}
