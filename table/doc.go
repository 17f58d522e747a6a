/*
Package table provides temporary Azure Table Storage fixtures.

TempTable creates (or attaches to) a table before a test runs and reconciles it
on Dispose:

	tbl, err := table.NewTempTable(ctx, "orders",
	    table.WithClient(client),
	    table.WithSetup(aztemp.CleanAllPolicy[table.Entity]()))
	if err != nil {
	    t.Fatal(err)
	}
	defer tbl.Dispose(ctx)

	_, err = tbl.UpsertEntity(ctx, table.Entity{
	    PartitionKey: "us",
	    RowKey:       "order-1",
	    Properties:   map[string]any{"total": 42},
	})

A table created by the fixture is deleted wholesale on Dispose. In a
pre-existing table, entities upserted through the fixture are deleted (or
reverted, when they replaced an earlier entity), plus whatever the teardown
policy selects:

	table.WithTeardown(aztemp.CleanMatchingPolicy(func(e table.Entity) bool {
	    return e.PartitionKey == "test"
	}))

TempEntity manages a single entity in an existing table, re-upserting the
previous value on Dispose when the entity pre-existed.

Credentials resolve from explicit Options, or from AZTEMP_AZURE_* environment
variables: service principal first, then storage account shared key, then the
ambient azidentity credential chain. Point Options.ServiceURL at Azurite to run
against the emulator.
*/
package table
