package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uas_backend/app/model"
	"uas_backend/app/repository"
	"uas_backend/app/utils"
)

/* ============================================================
   MOCK REPOSITORY (SIMULATED USERS COLLECTION)
   ============================================================
*/

type mockUserRepo struct {
	docs map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{docs: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, doc bson.M) (*model.User, error) {
	email := doc["email"].(string)
	for _, u := range m.docs {
		if !u.IsDeleted && u.Email == email {
			return nil, repository.ErrDuplicateKey
		}
	}

	now := time.Now().UTC()
	u := &model.User{
		ID:             primitive.NewObjectID(),
		Username:       doc["username"].(string),
		Email:          email,
		HashedPassword: doc["hashed_password"].(string),
		FullName:       doc["full_name"].(string),
		IsActive:       doc["is_active"].(bool),
		GUID:           doc["guid"].(string),
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.docs[u.ID.Hex()] = u
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	u, ok := m.docs[id]
	if !ok || u.IsDeleted {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) FindOne(_ context.Context, filter bson.M) (*model.User, error) {
	email, _ := filter["email"].(string)
	for _, u := range m.docs {
		if !u.IsDeleted && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) List(_ context.Context, skip, limit int64, _ bson.M) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.docs {
		if !u.IsDeleted {
			matched = append(matched, *u)
		}
	}
	total := int64(len(matched))
	if skip >= total {
		return []model.User{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

func (m *mockUserRepo) Update(_ context.Context, id string, patch bson.M, expectedVersion *int64) (*model.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidID
	}
	delete(patch, "version")
	if len(patch) == 0 {
		return nil, repository.ErrNoData
	}
	if expectedVersion == nil {
		return nil, repository.ErrVersionRequired
	}

	u, ok := m.docs[id]
	if !ok || u.IsDeleted {
		return nil, repository.ErrNotFound
	}
	if u.Version != *expectedVersion {
		return nil, repository.ErrVersionConflict
	}

	for k, v := range patch {
		switch k {
		case "username":
			u.Username = v.(string)
		case "email":
			u.Email = v.(string)
		case "full_name":
			u.FullName = v.(string)
		case "is_active":
			u.IsActive = v.(bool)
		}
	}
	u.Version++
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) SoftDelete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidID
	}
	u, ok := m.docs[id]
	if !ok || u.IsDeleted {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	u.IsDeleted = true
	u.DeletedAt = &now
	u.UpdatedAt = now
	u.Version++
	return nil
}

/* ============================================================
   TEST CASES
   ============================================================
*/

func registerPayload() model.UserRegister {
	return model.UserRegister{
		Username: "evika",
		Email:    "evika@student.id",
		Password: "password123",
		FullName: "Evika Pitaloka",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "unit-test-secret")

	svc := NewUserService(newMockUserRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, registerPayload())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.Version != 1 {
		t.Errorf("new user version = %d, want 1", created.Version)
	}
	if !created.IsActive {
		t.Error("new user should be active")
	}
	if !strings.HasPrefix(created.GUID, "USER-") {
		t.Errorf("guid = %q, want USER- prefix", created.GUID)
	}

	result, err := svc.Login(ctx, model.UserLogin{Email: "evika@student.id", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.TokenType != "bearer" {
		t.Errorf("token_type = %q, want bearer", result.TokenType)
	}
	if result.UserInfo == nil || result.UserInfo.ID != created.ID {
		t.Error("login user_info does not match the registered user")
	}

	claims, err := utils.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != created.ID {
		t.Errorf("token id claim = %q, want %q", claims.UserID, created.ID)
	}
	if claims.Subject != "evika@student.id" {
		t.Errorf("token subject = %q, want the login email", claims.Subject)
	}
}

func TestLoginFailures(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "unit-test-secret")

	repo := newMockUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, registerPayload())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name  string
		login model.UserLogin
	}{
		{"wrong password", model.UserLogin{Email: "evika@student.id", Password: "wrong-password"}},
		{"unknown email", model.UserLogin{Email: "nobody@student.id", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.login); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}

	// a retired account cannot authenticate even though its document persists
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Login(ctx, model.UserLogin{Email: "evika@student.id", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() after delete error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerPayload()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, registerPayload()); !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("duplicate Register() error = %v, want ErrDuplicateKey", err)
	}
}

func TestUserUpdateVersioning(t *testing.T) {
	svc := NewUserService(newMockUserRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, registerPayload())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, model.UserUpdate{
		FullName: strPtr("Evika P."),
		Version:  int64Ptr(1),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("updated version = %d, want 2", updated.Version)
	}

	_, err = svc.Update(ctx, created.ID, model.UserUpdate{
		FullName: strPtr("Evika Pitaloka"),
		Version:  int64Ptr(1),
	})
	if !errors.Is(err, repository.ErrVersionConflict) {
		t.Errorf("stale Update() error = %v, want ErrVersionConflict", err)
	}

	_, err = svc.Update(ctx, created.ID, model.UserUpdate{FullName: strPtr("x")})
	if !errors.Is(err, repository.ErrVersionRequired) {
		t.Errorf("versionless Update() error = %v, want ErrVersionRequired", err)
	}
}

func TestUserResponseNeverCarriesPasswordHash(t *testing.T) {
	svc := NewUserService(newMockUserRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, registerPayload())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	raw, err := json.Marshal(created)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	body := string(raw)
	if strings.Contains(body, "password") || strings.Contains(body, "hash") {
		t.Errorf("outbound user representation leaks credentials: %s", body)
	}
}
