/*
Package fileshare provides temporary Azure File Share fixtures.

TempShare creates (or attaches to) a share before a test runs and reconciles it
on Dispose:

	share, err := fileshare.NewTempShare(ctx, "exports",
	    fileshare.WithClient(client),
	    fileshare.WithSetup(aztemp.CleanAllPolicy[fileshare.FileInfo]()))
	if err != nil {
	    t.Fatal(err)
	}
	defer share.Dispose(ctx)

	_, err = share.UploadFile(ctx, "report.csv", payload)

A share created by the fixture is deleted wholesale on Dispose. In a
pre-existing share, files uploaded through the fixture are deleted (or
restored, when they replaced an earlier file), plus whatever the teardown
policy selects:

	fileshare.WithTeardown(aztemp.CleanMatchingPolicy(func(f fileshare.FileInfo) bool {
	    return strings.HasPrefix(f.Name, "test-")
	}))

TempFile manages a single file in an existing share, restoring the previous
content on Dispose when the file pre-existed.

The fixtures operate on files in the share's root directory.

Credentials resolve from explicit Options, or from AZTEMP_AZURE_* environment
variables: service principal first, then storage account shared key, then the
ambient azidentity credential chain. Point Options.ServiceURL at Azurite to run
against the emulator.
*/
package fileshare
