package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/buildbytes/lms/core"
)

// Open connects to MongoDB and returns the application database handle and
// a close function. The connection is pinged once so startup fails fast on
// a bad URL.
func Open(ctx context.Context, conf *core.Config) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, conf.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Mongo.URL))
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, errors.Wrap(err, "pinging mongo")
	}
	return client.Database(conf.Mongo.Database), client.Disconnect, nil
}
