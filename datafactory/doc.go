/*
Package datafactory provides temporary Azure Data Factory data-flow debug
session fixtures.

TempDebugSession starts a debug session (spinning up the debug cluster) or
attaches to one that is already running:

	session, err := datafactory.NewTempDebugSession(ctx,
	    datafactory.WithClient(client))
	if err != nil {
	    t.Fatal(err)
	}
	defer session.Dispose(ctx)

	preview, err := session.RunDataFlow(ctx, "TransformOrders", "sinkOrders")

A session started by the fixture is deleted on Dispose; a session attached via
WithSessionID is left running, since starting the cluster is slow and sessions
are commonly shared across a test run.

RunDataFlow returns a Preview: the parsed output of the preview query. The raw
response carries the output schema in Data Factory's own notation
("output(id as string, customer as (name as string), tags as string[])") and
the rows as positional arrays; ParsePreview decodes both. Preview.JSON renders
rows as nested objects with numeric and boolean values intact, Preview.CSV
flattens nested columns into dotted names.

Management-plane access resolves from explicit Options or from
AZTEMP_AZURE_SUBSCRIPTION_ID, AZTEMP_AZURE_RESOURCE_GROUP and
AZTEMP_AZURE_DATA_FACTORY, authenticating with a service principal when
AZTEMP_AZURE_TENANT_ID / _CLIENT_ID / _CLIENT_SECRET are set and the ambient
azidentity credential chain otherwise.
*/
package datafactory
