package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusjobboard/portal/internal/core/domain"
)

const collectionSessions = "portal_sessions"

// SessionStore keeps browser sessions in a collection with a TTL index on
// expires_at. Mongo reaps expired documents on its own schedule, so Load
// also filters on expiry.
type SessionStore struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{col: db.Collection(collectionSessions), now: time.Now}
}

type sessionDoc struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	Role      string    `bson:"role"`
	FullName  string    `bson:"full_name"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": s.now().UTC()},
	}

	var doc sessionDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &domain.Session{
		Token:    doc.Token,
		Role:     domain.Role(doc.Role),
		FullName: doc.FullName,
	}, nil
}

// Save replaces the whole document so token and role are written together.
func (s *SessionStore) Save(ctx context.Context, id string, sess *domain.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	doc := sessionDoc{
		ID:        id,
		Token:     sess.Token,
		Role:      string(sess.Role),
		FullName:  sess.FullName,
		ExpiresAt: s.now().Add(ttl).UTC(),
	}

	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the TTL index that expires sessions.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create session ttl index: %w", err)
	}
	return nil
}
