package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrLabelNotFound = errors.New("label not found")

type LabelsRepo struct {
	MongoCollection *mongo.Collection
}

func GetLabelsRepo(client *mongo.Client) *LabelsRepo {
	return &LabelsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("labels"),
	}
}

func (r *LabelsRepo) CreateLabel(ctx context.Context, label *model.Label) error {
	timer := utils.TrackDBOperation("insert", "labels")
	defer timer.ObserveDuration()

	if label.UserID == "" {
		return errors.New("user ID is required")
	}

	label.CreatedAt = time.Now()
	label.UpdatedAt = label.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, label)
	return err
}

// GetLabel retrieves a label owned by the user.
func (r *LabelsRepo) GetLabel(ctx context.Context, labelID string, userID string) (*model.Label, error) {
	timer := utils.TrackDBOperation("find", "labels")
	defer timer.ObserveDuration()

	var label model.Label
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": labelID, "user_id": userID}).Decode(&label)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &label, nil
}

func (r *LabelsRepo) ListLabels(ctx context.Context, userID string) ([]*model.Label, error) {
	timer := utils.TrackDBOperation("find", "labels")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	labels := []*model.Label{}
	if err = cursor.All(ctx, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// FindLabels looks up labels by id regardless of owner. Used to verify
// label ids before attaching them to a note.
func (r *LabelsRepo) FindLabels(ctx context.Context, labelIDs []string) ([]*model.Label, error) {
	timer := utils.TrackDBOperation("find", "labels")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"_id": bson.M{"$in": labelIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	labels := []*model.Label{}
	if err = cursor.All(ctx, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *LabelsRepo) UpdateLabel(ctx context.Context, labelID string, name *string, color *string) (*model.Label, error) {
	timer := utils.TrackDBOperation("update", "labels")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	if name != nil {
		set["name"] = *name
	}
	if color != nil {
		set["color"] = *color
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var label model.Label
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": labelID}, bson.M{"$set": set}, opts).Decode(&label)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLabelNotFound
		}
		return nil, err
	}
	return &label, nil
}

func (r *LabelsRepo) DeleteLabel(ctx context.Context, labelID string) error {
	timer := utils.TrackDBOperation("delete", "labels")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": labelID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrLabelNotFound
	}
	return nil
}

func (r *LabelsRepo) CountUserLabels(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "labels")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
