package repository

import (
	"context"
	"errors"
	"time"

	"FiberTrack/bot/form"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveFormState upserts a conversation's form state by conversation_id.
func (m *MongoDB) SaveFormState(ctx context.Context, state *form.FormState) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(formStatesCollection)

	state.UpdatedAt = time.Now()

	filter := bson.D{{Key: "conversation_id", Value: state.ConversationID}}
	update := bson.D{{Key: "$set", Value: state}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// LoadFormState retrieves a conversation's form state, (nil, nil) when absent.
func (m *MongoDB) LoadFormState(ctx context.Context, conversationID string) (*form.FormState, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(formStatesCollection)

	filter := bson.D{{Key: "conversation_id", Value: conversationID}}

	var state form.FormState
	err = collection.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &state, nil
}

// ClearFormState removes a conversation's form state. Clearing a missing
// record is not an error.
func (m *MongoDB) ClearFormState(ctx context.Context, conversationID string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(formStatesCollection)

	filter := bson.D{{Key: "conversation_id", Value: conversationID}}

	_, err = collection.DeleteMany(ctx, filter)
	return err
}
