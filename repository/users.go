package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetUsersRepo(client *mongo.Client) *UsersRepo {
	return &UsersRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection(
			utils.GetEnvAsString("USERS_COLLECTION", "users")),
	}
}

func (r *UsersRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Email == "" || user.Password == "" {
		utils.TrackError("database")
		return errors.New("email and password required")
	}

	user.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		utils.TrackError("database")
		return errors.New("failed to add user to database")
	}
	return nil
}

func (r *UsersRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		log.Println("Error finding user:", err)
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepo) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		log.Println("Error finding user:", err)
		return nil, err
	}
	return &user, nil
}

// MarkVerified flips is_verified after the email verification link is used.
func (r *UsersRepo) MarkVerified(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"is_verified": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

func (r *UsersRepo) CountUsers(ctx context.Context) (int, error) {
	timer := utils.TrackDBOperation("count", "users")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
