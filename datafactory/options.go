package datafactory

import "os"

// Options contains options necessary to reach a Data Factory instance through the
// Azure management plane.
type Options struct {
	// SubscriptionID holds the Azure subscription the factory lives in
	SubscriptionID string

	// ResourceGroup holds the resource group the factory lives in
	ResourceGroup string

	// FactoryName holds the Data Factory name
	FactoryName string

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
		SubscriptionID: os.Getenv("AZTEMP_AZURE_SUBSCRIPTION_ID"),
		ResourceGroup:  os.Getenv("AZTEMP_AZURE_RESOURCE_GROUP"),
		FactoryName:    os.Getenv("AZTEMP_AZURE_DATA_FACTORY"),
		TenantID:       os.Getenv("AZTEMP_AZURE_TENANT_ID"),
		ClientID:       os.Getenv("AZTEMP_AZURE_CLIENT_ID"),
		ClientSecret:   os.Getenv("AZTEMP_AZURE_CLIENT_SECRET"),
	}
}
