/*
Package blob provides temporary Azure Blob Storage fixtures.

TempContainer creates (or attaches to) a container before a test runs and
reconciles it on Dispose:

	container, err := blob.NewTempContainer(ctx, "invoices",
	    blob.WithClient(client),
	    blob.WithSetup(aztemp.CleanAllPolicy[blob.BlobInfo]()))
	if err != nil {
	    t.Fatal(err)
	}
	defer container.Dispose(ctx)

	_, err = container.UploadBlob(ctx, "invoice-1.json", payload)

A container created by the fixture is deleted wholesale on Dispose. In a
pre-existing container, blobs uploaded through the fixture are deleted (or
reverted, when they replaced an earlier blob), plus whatever the teardown
policy selects:

	blob.WithTeardown(aztemp.CleanMatchingPolicy(func(b blob.BlobInfo) bool {
	    return strings.HasPrefix(b.Name, "test-")
	}))

TempBlob manages a single blob in an existing container, restoring the previous
content on Dispose when the blob pre-existed.

Credentials resolve from explicit Options, or from AZTEMP_AZURE_* environment
variables: service principal first, then storage account shared key, then the
ambient azidentity credential chain. Point Options.ServiceURL at Azurite to run
against the emulator.
*/
package blob
