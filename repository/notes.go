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

var ErrNoteNotFound = errors.New("note not found")

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

// visibleTo matches notes the user owns or collaborates on.
func visibleTo(userID string) bson.M {
	return bson.M{"$or": []bson.M{
		{"user_id": userID},
		{"collaborators.user_id": userID},
	}}
}

// CreateNote inserts a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, note)
	return err
}

// GetNote retrieves a note visible to the user. Returns nil when the note
// does not exist or the user is neither owner nor collaborator.
func (r *NotesRepo) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": noteID}
	for k, v := range visibleTo(userID) {
		filter[k] = v
	}

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// ListNotes retrieves all notes visible to the user matching the filter,
// newest first.
func (r *NotesRepo) ListNotes(ctx context.Context, userID string, f model.NoteFilter) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := visibleTo(userID)
	if f.Archive != nil {
		filter["is_archive"] = *f.Archive
	}
	if f.Trash != nil {
		filter["is_trash"] = *f.Trash
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote applies a partial update and returns the updated note.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID string, patch model.NotePatch) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Reminder != nil {
		set["reminder"] = *patch.Reminder
		set["is_reminded"] = false
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": noteID}, bson.M{"$set": set}, opts).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a note permanently
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": noteID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// ToggleArchive flips the archive flag and returns the updated note.
func (r *NotesRepo) ToggleArchive(ctx context.Context, noteID string) (*model.Note, error) {
	return r.toggleFlag(ctx, noteID, "is_archive")
}

// ToggleTrash flips the trash flag and returns the updated note.
func (r *NotesRepo) ToggleTrash(ctx context.Context, noteID string) (*model.Note, error) {
	return r.toggleFlag(ctx, noteID, "is_trash")
}

func (r *NotesRepo) toggleFlag(ctx context.Context, noteID string, field string) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	var current model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": noteID}).Decode(&current)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	value := current.IsArchive
	if field == "is_trash" {
		value = current.IsTrash
	}

	update := bson.M{"$set": bson.M{
		field:        !value,
		"updated_at": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var note model.Note
	err = r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": noteID}, update, opts).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// AddCollaborators appends collaborators in a single document update, so
// the mutation is all-or-none. Callers filter out existing pairs first.
func (r *NotesRepo) AddCollaborators(ctx context.Context, noteID string, collaborators []model.Collaborator) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	update := bson.M{
		"$push": bson.M{"collaborators": bson.M{"$each": collaborators}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": noteID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// RemoveCollaborators pulls the given users off the note in one update.
func (r *NotesRepo) RemoveCollaborators(ctx context.Context, noteID string, userIDs []string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	update := bson.M{
		"$pull": bson.M{"collaborators": bson.M{"user_id": bson.M{"$in": userIDs}}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": noteID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// AddLabels attaches labels to the note, ignoring ones already attached.
func (r *NotesRepo) AddLabels(ctx context.Context, noteID string, labelIDs []string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	update := bson.M{
		"$addToSet": bson.M{"labels": bson.M{"$each": labelIDs}},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": noteID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// RemoveLabels detaches labels from the note.
func (r *NotesRepo) RemoveLabels(ctx context.Context, noteID string, labelIDs []string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	update := bson.M{
		"$pull": bson.M{"labels": bson.M{"$in": labelIDs}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": noteID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// DueReminders retrieves notes whose reminder has passed and has not been
// delivered yet. The filter itself makes redelivery a no-op.
func (r *NotesRepo) DueReminders(ctx context.Context, now time.Time) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{
		"reminder":    bson.M{"$lte": now},
		"is_reminded": false,
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// MarkReminded records that the reminder email went out.
func (r *NotesRepo) MarkReminded(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{"$set": bson.M{"is_reminded": true, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// CountUserNotes counts the notes a user owns.
func (r *NotesRepo) CountUserNotes(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
