package mongo

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boardly/access-engine/internal/core/domain"
)

const principalCollection = "principals"

// PrincipalRepository persists principal records in a single collection
// keyed by id. Username/email uniqueness is enforced here, not by the
// storage medium: every mutation runs a read-modify-write under the
// repository's writer mutex, so concurrent creates cannot both pass the
// duplicate check. Reads go straight to the collection; each document write
// is a single replace, so readers never observe a half-written record.
type PrincipalRepository struct {
	coll *mongo.Collection
	mu   sync.Mutex
}

func NewPrincipalRepository(db *mongo.Database) *PrincipalRepository {
	return &PrincipalRepository{coll: db.Collection(principalCollection)}
}

type principalDoc struct {
	ID           string `bson:"_id"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func toDoc(p *domain.Principal) principalDoc {
	return principalDoc{
		ID:           p.ID,
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Role:         string(p.Role),
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
	}
}

func fromDoc(d principalDoc) *domain.Principal {
	return &domain.Principal{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		CreatedAt:    time.Unix(d.CreatedAt, 0).UTC(),
		UpdatedAt:    time.Unix(d.UpdatedAt, 0).UTC(),
	}
}

func (r *PrincipalRepository) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken, err := r.identityTaken(ctx, p.Username, p.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateIdentity
	}

	if _, err := r.coll.InsertOne(ctx, toDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, domain.Wrap(domain.KindStorage, "insert principal", err)
	}

	clone := *p
	return &clone, nil
}

func (r *PrincipalRepository) FindByID(ctx context.Context, id string) (*domain.Principal, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *PrincipalRepository) FindByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *PrincipalRepository) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *PrincipalRepository) findOne(ctx context.Context, filter bson.M) (*domain.Principal, error) {
	var d principalDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Wrap(domain.KindStorage, "find principal", err)
	}
	return fromDoc(d), nil
}

// Update replaces the stored document wholesale. The full record arrives
// from the service layer, so the replace is the "write" half of the
// read-modify-write; the writer mutex keeps concurrent updates from
// interleaving.
func (r *PrincipalRepository) Update(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken, err := r.identityTaken(ctx, p.Username, p.Email, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateIdentity
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, toDoc(p))
	if err != nil {
		return nil, domain.Wrap(domain.KindStorage, "replace principal", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}

	clone := *p
	return &clone, nil
}

func (r *PrincipalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.Wrap(domain.KindStorage, "delete principal", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// identityTaken reports whether username or email belongs to a principal
// other than exceptID. Caller holds the writer mutex.
func (r *PrincipalRepository) identityTaken(ctx context.Context, username, email, exceptID string) (bool, error) {
	filter := bson.M{
		"$or": []bson.M{{"username": username}, {"email": email}},
	}
	if exceptID != "" {
		filter["_id"] = bson.M{"$ne": exceptID}
	}

	var d principalDoc
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, domain.Wrap(domain.KindStorage, "uniqueness check", err)
}
