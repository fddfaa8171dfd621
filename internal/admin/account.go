// Package admin implements back-office authentication: password login, JWT
// access tokens, refresh sessions, and token revocation.
package admin

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Account is an admin user. The primary admin comes from configuration;
// accounts authenticated through OIDC are upserted here on first login.
type Account struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Sub       string    `bson:"sub,omitempty" json:"sub,omitempty"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	LastLogin time.Time `bson:"lastLogin" json:"lastLogin"`
}

// AccountRepository persists admin accounts.
type AccountRepository interface {
	UpsertByEmail(ctx context.Context, a *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// MongoAccountRepository implements AccountRepository on MongoDB.
type MongoAccountRepository struct {
	col *mongo.Collection
}

func NewMongoAccountRepository(col *mongo.Collection) *MongoAccountRepository {
	return &MongoAccountRepository{col: col}
}

func (r *MongoAccountRepository) UpsertByEmail(ctx context.Context, a *Account) (*Account, error) {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	a.LastLogin = now

	filter := bson.M{"email": a.Email}
	update := bson.M{"$set": bson.M{
		"sub":       a.Sub,
		"name":      a.Name,
		"updatedAt": a.UpdatedAt,
		"lastLogin": a.LastLogin,
		"createdAt": a.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated Account
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return a, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoAccountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// MemoryAccountRepository backs tests and the in-memory store fallback.
// Accounts are copied on read and write so callers never share state with
// concurrent logins.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: map[string]*Account{}}
}

func (r *MemoryAccountRepository) UpsertByEmail(ctx context.Context, a *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.accounts[a.Email]; ok {
		existing.Sub = a.Sub
		existing.Name = a.Name
		existing.UpdatedAt = now
		existing.LastLogin = now
		cp := *existing
		return &cp, nil
	}
	cp := *a
	cp.CreatedAt = now
	cp.UpdatedAt = now
	cp.LastLogin = now
	r.accounts[cp.Email] = &cp
	out := cp
	return &out, nil
}

func (r *MemoryAccountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[email]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}
