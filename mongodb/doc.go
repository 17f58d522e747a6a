/*
Package mongodb provides temporary MongoDB collection fixtures, usable against
plain MongoDB and Cosmos DB's MongoDB API alike.

TempCollection creates (or attaches to) a collection before a test runs and
reconciles it on Dispose:

	coll, err := mongodb.NewTempCollection(ctx, "orders",
	    mongodb.WithClient(client),
	    mongodb.WithSetup(aztemp.CleanAllPolicy[bson.M]()))
	if err != nil {
	    t.Fatal(err)
	}
	defer coll.Dispose(ctx)

	_, err = coll.InsertDocument(ctx, bson.M{"_id": "order-1", "total": 42})

A collection created by the fixture is dropped wholesale on Dispose. In a
pre-existing collection, documents inserted through the fixture are deleted (or
reverted, when they replaced an earlier document), plus whatever the teardown
policy selects:

	mongodb.WithTeardown(aztemp.CleanMatchingPolicy(func(doc bson.M) bool {
	    return doc["env"] == "test"
	}))

TempDocument manages a single document in an existing collection, re-upserting
the previous value on Dispose when the document pre-existed. Documents are
identified by "_id"; a document inserted without one gets a generated id.

Connection settings come from explicit Options or from
AZTEMP_MONGODB_CONNECTION_STRING and AZTEMP_MONGODB_DATABASE.
*/
package mongodb
