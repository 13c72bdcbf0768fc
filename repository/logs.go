package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LogsRepo struct {
	MongoCollection *mongo.Collection
}

func GetLogsRepo(client *mongo.Client) *LogsRepo {
	return &LogsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("request_logs"),
	}
}

// IncrementRequestCount bumps the hit counter for a (method, path) pair,
// creating the entry on first sight.
func (r *LogsRepo) IncrementRequestCount(ctx context.Context, method, path, client string) error {
	timer := utils.TrackDBOperation("update", "request_logs")
	defer timer.ObserveDuration()

	filter := bson.M{"method": method, "path": path}
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$set": bson.M{"client": client, "last_seen": time.Now()},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, filter, update,
		options.Update().SetUpsert(true))
	return err
}

// TopRequests returns the most-hit routes, busiest first.
func (r *LogsRepo) TopRequests(ctx context.Context, limit int) ([]*model.RequestLog, error) {
	timer := utils.TrackDBOperation("find", "request_logs")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []*model.RequestLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
