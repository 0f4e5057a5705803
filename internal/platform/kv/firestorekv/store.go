// Package firestorekv stores collection documents in Cloud Firestore,
// one document per key.
package firestorekv

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Apurer/go-petfoster-collections/internal/platform/kv"
)

var _ kv.Store = (*Store)(nil)

// DefaultCollection is used when no collection name is configured.
const DefaultCollection = "collection_entries"

// Store implements kv.Store on a Firestore collection. Caller owns the client.
type Store struct {
	client     *firestore.Client
	collection string
	now        func() time.Time
}

type entryDoc struct {
	Key       string    `firestore:"key"`
	Value     []byte    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func NewStore(client *firestore.Client, collection string) *Store {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{client: client, collection: collection, now: time.Now}
}

// Dial creates a Firestore client. credentialsFile is optional; when empty the
// default application credentials (or FIRESTORE_EMULATOR_HOST) are used.
func Dial(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errors.New("firestore project id is empty")
	}
	var opts []option.ClientOption
	if path := strings.TrimSpace(credentialsFile); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	return firestore.NewClient(ctx, projectID, opts...)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	snap, err := s.doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	var doc entryDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return doc.Value, nil
}

// Set overwrites the full document for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	_, err := s.doc(key).Set(ctx, entryDoc{Key: key, Value: value, UpdatedAt: s.now().UTC()})
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	_, err := s.doc(key).Delete(ctx)
	return err
}

func (s *Store) Backend() string { return "firestore" }

// doc maps key to a document id; keys may contain "/" which Firestore reads as a path.
func (s *Store) doc(key string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(DocumentID(key))
}

// DocumentID returns the Firestore document id used for key.
func DocumentID(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func (s *Store) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("firestore kv store not configured")
	}
	return nil
}
