package backend

import (
	"context"
	"strconv"
)

// User is an account record in the users service.
type User struct {
	ID           int64   `json:"id"`
	Login        string  `json:"login"`
	PasswordHash string  `json:"password_hash,omitempty"`
	Name         *string `json:"name"`
	Country      *string `json:"country"`
	Email        *string `json:"email"`
}

// CreateUserParams are the fields for registering a new user.
type CreateUserParams struct {
	Login        string  `json:"login"`
	PasswordHash string  `json:"password_hash"`
	Name         *string `json:"name"`
	Country      *string `json:"country"`
	Email        *string `json:"email"`
}

// UpdateUserParams is a partial update. Keys absent from the map are left
// unchanged by the service; an explicit nil value clears the field.
type UpdateUserParams map[string]any

// Users is the client for the users service.
type Users struct {
	client *Client
}

// NewUsers creates a users client on top of the shared plumbing.
func NewUsers(c *Client) *Users {
	return &Users{client: c}
}

// Create registers a new user.
func (u *Users) Create(ctx context.Context, p CreateUserParams) (*User, error) {
	user := &User{}
	if err := u.client.post(ctx, "/users", p, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ByID retrieves a user by id.
func (u *Users) ByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	if err := u.client.get(ctx, "/users/"+strconv.FormatInt(id, 10), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ByCredentials retrieves the single user matching login and password hash.
// ErrNotFound means the credentials match no account.
func (u *Users) ByCredentials(ctx context.Context, login, passwordHash string) (*User, error) {
	query, err := Query{
		Filters: []Filter{
			Eq("login", login),
			Eq("password_hash", passwordHash),
		},
		Single: true,
	}.Values()
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := u.client.get(ctx, "/users", query, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to a user.
func (u *Users) Update(ctx context.Context, id int64, p UpdateUserParams) (*User, error) {
	user := &User{}
	if err := u.client.patch(ctx, "/users/"+strconv.FormatInt(id, 10), p, user); err != nil {
		return nil, err
	}
	return user, nil
}
