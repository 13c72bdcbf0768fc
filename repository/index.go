package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes backing the filtered note queries and
// the reminder sweep.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notesCollection := db.Collection("notes")
	labelsCollection := db.Collection("labels")
	usersCollection := db.Collection("users")
	logsCollection := db.Collection("request_logs")

	noteIndexes := []mongo.IndexModel{
		// Owner listing, newest first
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("user_notes_date"),
		},
		// Collaborator membership lookups
		{
			Keys:    bson.D{{Key: "collaborators.user_id", Value: 1}},
			Options: options.Index().SetName("collaborator_user"),
		},
		// Archive/trash filtered listings
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_archive", Value: 1},
				{Key: "is_trash", Value: 1},
			},
			Options: options.Index().SetName("user_note_flags"),
		},
		// Reminder sweep
		{
			Keys: bson.D{
				{Key: "is_reminded", Value: 1},
				{Key: "reminder", Value: 1},
			},
			Options: options.Index().SetName("due_reminders"),
		},
	}

	if _, err := notesCollection.Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create note indexes: %v", err)
	}

	labelIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_labels"),
		},
	}
	if _, err := labelsCollection.Indexes().CreateMany(ctx, labelIndexes); err != nil {
		return fmt.Errorf("failed to create label indexes: %v", err)
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("user_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id_index").SetUnique(true),
		},
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	logIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "method", Value: 1},
				{Key: "path", Value: 1},
			},
			Options: options.Index().SetName("request_log_route").SetUnique(true),
		},
	}
	if _, err := logsCollection.Indexes().CreateMany(ctx, logIndexes); err != nil {
		return fmt.Errorf("failed to create request log indexes: %v", err)
	}

	return nil
}
