package nosql

import "os"

// Options contains options necessary to authenticate against Cosmos DB and pick the
// database the fixtures operate in.
type Options struct {
	// Endpoint holds the Cosmos DB account endpoint, e.g.
	// https://myaccount.documents.azure.com:443/. Point it at the Cosmos DB
	// emulator to run locally.
	Endpoint string

	// Key holds the Cosmos DB account key for authentication
	Key string

	// Database holds the name of the database the fixtures operate in. The
	// database must already exist.
	Database string

	// PartitionKeyPath holds the partition key path containers are created with
	// and item partition key values are stored under. Defaults to "/pk".
	PartitionKeyPath string

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
		Endpoint:         os.Getenv("AZTEMP_AZURE_COSMOS_ENDPOINT"),
		Key:              os.Getenv("AZTEMP_AZURE_COSMOS_KEY"),
		Database:         os.Getenv("AZTEMP_AZURE_COSMOS_DATABASE"),
		PartitionKeyPath: os.Getenv("AZTEMP_AZURE_COSMOS_PARTITION_KEY_PATH"),
		TenantID:         os.Getenv("AZTEMP_AZURE_TENANT_ID"),
		ClientID:         os.Getenv("AZTEMP_AZURE_CLIENT_ID"),
		ClientSecret:     os.Getenv("AZTEMP_AZURE_CLIENT_SECRET"),
	}
}

func (o *Options) partitionKeyPath() string {
	if o.PartitionKeyPath != "" {
		return o.PartitionKeyPath
	}
	return "/pk"
}
