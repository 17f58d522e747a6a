package mongodb

import "os"

// Options contains options necessary to connect to MongoDB, including Cosmos DB's
// MongoDB API.
type Options struct {
	// ConnectionString holds the MongoDB connection string, e.g.
	// mongodb://localhost:27017 or a Cosmos DB MongoDB API connection string.
	ConnectionString string

	// Database holds the name of the database the fixtures operate in.
	Database string
}

// NewOptions creates a new Options struct seeded from the environment.
func NewOptions() *Options {
	return &Options{
		ConnectionString: os.Getenv("AZTEMP_MONGODB_CONNECTION_STRING"),
		Database:         os.Getenv("AZTEMP_MONGODB_DATABASE"),
	}
}
