/*
Package nosql provides temporary Cosmos DB NoSQL fixtures.

TempContainer creates (or attaches to) a container in the configured database
before a test runs and reconciles it on Dispose:

	container, err := nosql.NewTempContainer(ctx, "orders",
	    nosql.WithClient(client),
	    nosql.WithSetup(aztemp.CleanAllPolicy[nosql.Item]()))
	if err != nil {
	    t.Fatal(err)
	}
	defer container.Dispose(ctx)

	_, err = container.UpsertItem(ctx, nosql.Item{
	    ID:           "order-1",
	    PartitionKey: "us",
	    Properties:   map[string]any{"total": 42},
	})

A container created by the fixture is deleted wholesale on Dispose. In a
pre-existing container, items upserted through the fixture are deleted (or
reverted, when they replaced an earlier item), plus whatever the teardown
policy selects:

	nosql.WithTeardown(aztemp.CleanMatchingPolicy(func(i nosql.Item) bool {
	    return i.PartitionKey == "test"
	}))

TempItem manages a single item in an existing container, re-upserting the
previous value on Dispose when the item pre-existed.

The database named in Options must already exist. Containers created by the
fixture use the partition key path from Options (default "/pk"); item partition
key values are stored under that path's field. Credentials resolve from
explicit Options or from AZTEMP_AZURE_COSMOS_* environment variables: account
key first, then service principal, then the ambient azidentity credential
chain. Point Options.Endpoint at the Cosmos DB emulator to run locally.
*/
package nosql
