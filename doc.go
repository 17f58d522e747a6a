/*
Package aztemp provides temporary Azure resource fixtures for integration tests.

Each fixture creates a cloud resource before a test runs (or attaches to a
pre-existing one), tracks every item it adds or replaces through the fixture,
and removes or reverts that state when the fixture is disposed. Tests can
therefore run against real or emulated Azure services (Azurite, the Cosmos
emulator) without leaving residue behind.

The per-service fixtures live in their own packages:

  - blob        - Blob Storage containers and blobs
  - table       - Table Storage tables and entities
  - fileshare   - File Share shares and files
  - nosql       - Cosmos DB NoSQL containers and items
  - mongodb     - Cosmos DB MongoDB API collections and documents
  - datafactory - Data Factory data-flow debug sessions and previews

This root package holds what the fixtures share: the Disposable interface,
the tri-state cleanup Policy applied at setup and teardown, and the
Disposables aggregate disposer that retries failed disposals and collects
leftover errors. Package testlog adapts a testing.TB into the *zap.Logger
the fixtures log with.

A typical test:

	func TestOrders(t *testing.T) {
	    ctx := context.Background()

	    container, err := blob.NewTempContainer(ctx, "orders",
	        blob.WithSetup(aztemp.CleanAllPolicy[blob.BlobInfo]()))
	    require.NoError(t, err)
	    defer func() { require.NoError(t, container.Dispose(ctx)) }()

	    _, err = container.UploadBlob(ctx, "order-1.json", payload)
	    require.NoError(t, err)

	    // run the code under test against the container
	}

Every fixture implements aztemp.Disposable, so several fixtures can be
collected into an aztemp.Disposables and disposed together at the end of a
test or suite.
*/
package aztemp
