package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-review/internal/types"
)

const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"
)

// UserKey returns the KV key for a user record.
func UserKey(id string) string { return userKeyPrefix + id }

// UserEmailKey returns the KV key of the email -> id index entry.
func UserEmailKey(email string) string { return userEmailKeyPrefix + email }

// UserRecord is the persisted account shape. It carries the credential hash,
// which API responses never expose.
type UserRecord struct {
	types.User
	PasswordHash string `json:"passwordHash"`
}

// Users is the typed user layer over the KV store. Users are stored by id
// with a secondary email index so logins can resolve the account.
type Users struct {
	kv KV
}

// NewUsers creates the user record layer on top of a KV store.
func NewUsers(kv KV) *Users {
	return &Users{kv: kv}
}

// Save persists the user and its email index entry.
func (u *Users) Save(ctx context.Context, record *UserRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal user %s: %w", record.ID, err)
	}
	if err := u.kv.Set(ctx, UserKey(record.ID.String()), string(data)); err != nil {
		return err
	}
	return u.kv.Set(ctx, UserEmailKey(record.Email), record.ID.String())
}

// Load reads the user with the given id, or ErrNotFound.
func (u *Users) Load(ctx context.Context, id string) (*UserRecord, error) {
	value, ok, err := u.kv.Get(ctx, UserKey(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	var record UserRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return &record, nil
}

// LoadByEmail resolves the email index and reads the user, or ErrNotFound.
func (u *Users) LoadByEmail(ctx context.Context, email string) (*UserRecord, error) {
	id, ok, err := u.kv.Get(ctx, UserEmailKey(email))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return u.Load(ctx, id)
}

// EmailTaken reports whether an account already exists for the email.
func (u *Users) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, ok, err := u.kv.Get(ctx, UserEmailKey(email))
	return ok, err
}
