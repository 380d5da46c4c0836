package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the document stored in the "users" collection. The hashed password
// lives only here; it is never part of any outbound representation.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"hashed_password"`
	FullName       string             `bson:"full_name,omitempty"`
	IsActive       bool               `bson:"is_active"`
	GUID           string             `bson:"guid"`
	Version        int64              `bson:"version"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
	DeletedAt      *time.Time         `bson:"deleted_at"`
	IsDeleted      bool               `bson:"is_deleted"`
}

// UserRegister is the payload for POST /users/register.
type UserRegister struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
}

// UserLogin is the payload for POST /users/login.
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is the patch payload for PUT /users/{id}. Data fields are
// pointers so that an absent field can be told apart from a zero value.
// Version carries the expected record version for optimistic locking.
type UserUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
	Version  *int64  `json:"version"`
}

// UserResponse is the outbound representation of a User. Fields are
// allow-listed; the password hash has no place to leak from.
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name,omitempty"`
	IsActive  bool       `json:"is_active"`
	GUID      string     `json:"guid"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// LoginResult is the data block returned by a successful login.
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	UserInfo    *UserResponse `json:"user_info"`
}

// UserList is the data block returned by GET /users/.
type UserList struct {
	Total int64           `json:"total"`
	Page  int64           `json:"page"`
	Limit int64           `json:"limit"`
	Data  []*UserResponse `json:"data"`
}

// ToResponse maps the stored document to its outbound representation.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		GUID:      u.GUID,
		Version:   u.Version,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}
