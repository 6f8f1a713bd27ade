package messageRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/Pratik-911/skillswap/database"
	"github.com/Pratik-911/skillswap/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMessageRepo implements MessageRepository using MongoDB.
type MongoMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoMessageRepo creates a new instance of MessageRepository using MongoDB.
func NewMongoMessageRepo() MessageRepository {
	coll := database.DB().Collection("messages")
	repo := &MongoMessageRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMessageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "receiverId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "isRead", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new message document.
func (r *MongoMessageRepo) Create(msg *models.Message) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	msg.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindBetween pages through the conversation between two users, newest first.
func (r *MongoMessageRepo) FindBetween(userA, userB string, page, limit int64) ([]models.Message, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"$or": bson.A{
			bson.M{"senderId": userA, "receiverId": userB},
			bson.M{"senderId": userB, "receiverId": userA},
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	for cursor.Next(ctx) {
		var m models.Message
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// MarkRead marks every message from sender to receiver as read.
func (r *MongoMessageRepo) MarkRead(senderID, receiverID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"senderId": senderID, "receiverId": receiverID, "isRead": false}
	update := bson.M{"$set": bson.M{"isRead": true}}

	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// Conversations summarizes the user's conversations via an aggregation that
// groups messages by conversation partner, keeps the most recent message,
// counts unread incoming messages and joins the partner's profile.
func (r *MongoMessageRepo) Conversations(userID string) ([]models.ConversationSummary, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$or": bson.A{
				bson.M{"senderId": userID},
				bson.M{"receiverId": userID},
			},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"$cond": bson.A{
					bson.M{"$eq": bson.A{"$senderId", userID}},
					"$receiverId",
					"$senderId",
				},
			},
			"lastMessage": bson.M{"$first": "$$ROOT"},
			"unreadCount": bson.M{
				"$sum": bson.M{
					"$cond": bson.A{
						bson.M{"$and": bson.A{
							bson.M{"$eq": bson.A{"$receiverId", userID}},
							bson.M{"$eq": bson.A{"$isRead", false}},
						}},
						1,
						0,
					},
				},
			},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "id",
			"as":           "partner",
		}}},
		{{Key: "$unwind", Value: "$partner"}},
		{{Key: "$project", Value: bson.M{
			"partner": bson.M{
				"id":            1,
				"name":          1,
				"avatar":        1,
				"skillsToTeach": 1,
			},
			"lastMessage": 1,
			"unreadCount": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessage.createdAt", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var convs []models.ConversationSummary
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}
	return convs, nil
}
