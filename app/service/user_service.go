package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"uas_backend/app/model"
	"uas_backend/app/repository"
	"uas_backend/app/utils"
)

// ErrInvalidCredentials is returned by Login for every authentication
// failure. Unknown email and wrong password are indistinguishable on purpose.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository is the slice of the versioned record store the user service
// needs. Satisfied by *repository.VersionedRepository[model.User].
type UserRepository interface {
	Create(ctx context.Context, doc bson.M) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	FindOne(ctx context.Context, filter bson.M) (*model.User, error)
	List(ctx context.Context, skip, limit int64, filter bson.M) ([]model.User, int64, error)
	Update(ctx context.Context, id string, patch bson.M, expectedVersion *int64) (*model.User, error)
	SoftDelete(ctx context.Context, id string) error
}

type UserService interface {
	Register(ctx context.Context, req model.UserRegister) (*model.UserResponse, error)
	Login(ctx context.Context, req model.UserLogin) (*model.LoginResult, error)
	GetByID(ctx context.Context, id string) (*model.UserResponse, error)
	List(ctx context.Context, skip, limit int64) (*model.UserList, error)
	Update(ctx context.Context, id string, req model.UserUpdate) (*model.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &UserServiceImpl{repo: repo}
}

// Register hashes the plaintext password and persists the new account. The
// plaintext never reaches the store; duplicate emails surface from the
// store's unique index.
func (s *UserServiceImpl) Register(ctx context.Context, req model.UserRegister) (*model.UserResponse, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	doc := bson.M{
		"username":        req.Username,
		"email":           req.Email,
		"hashed_password": hashed,
		"full_name":       req.FullName,
		"is_active":       true,
		"guid":            "USER-" + uuid.NewString(),
	}

	user, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Login verifies the credentials against the stored hash and issues an access
// token. Soft-deleted accounts cannot authenticate; the lookup is scoped to
// non-deleted records.
func (s *UserServiceImpl) Login(ctx context.Context, req model.UserLogin) (*model.LoginResult, error) {
	user, err := s.repo.FindOne(ctx, bson.M{"email": req.Email})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, utils.AccessTokenTTL())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		UserInfo:    user.ToResponse(),
	}, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *UserServiceImpl) List(ctx context.Context, skip, limit int64) (*model.UserList, error) {
	users, total, err := s.repo.List(ctx, skip, limit, bson.M{})
	if err != nil {
		return nil, err
	}

	data := make([]*model.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, users[i].ToResponse())
	}

	return &model.UserList{
		Total: total,
		Page:  skip/limit + 1,
		Limit: limit,
		Data:  data,
	}, nil
}

// Update builds a patch from the fields the client actually sent and runs it
// through the store's conditional write with the client's expected version.
func (s *UserServiceImpl) Update(ctx context.Context, id string, req model.UserUpdate) (*model.UserResponse, error) {
	patch := bson.M{}
	if req.Username != nil {
		patch["username"] = *req.Username
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.FullName != nil {
		patch["full_name"] = *req.FullName
	}
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}

	user, err := s.repo.Update(ctx, id, patch, req.Version)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
