package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-at-least-32-characters-long"
	cfg.JWT.ExpireTime = time.Hour

	sessions := NewSessionService(newTestRedis(t))
	return NewAuthService(repository.NewUserRepository(db), sessions, cfg)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	user := &model.User{Name: "Alice", Email: "alice@example.com", Password: "s3cret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	var stored model.User
	if err := db.Where("email = ?", "alice@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Password == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	first := &model.User{Name: "Alice", Email: "alice@example.com", Password: "s3cret"}
	if err := svc.Register(first); err != nil {
		t.Fatalf("Register: %v", err)
	}

	dup := &model.User{Name: "Impostor", Email: "alice@example.com", Password: "other"}
	if err := svc.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

// 邮箱不存在与密码错误必须返回完全相同的错误
func TestLoginUniformInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	user := &model.User{Name: "Alice", Email: "alice@example.com", Password: "s3cret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, errWrongPassword := svc.Login(ctx, "alice@example.com", "wrong")
	_, errUnknownEmail := svc.Login(ctx, "nobody@example.com", "s3cret")

	if !errors.Is(errWrongPassword, util.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, util.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", errUnknownEmail)
	}
	if errWrongPassword != errUnknownEmail {
		t.Error("the two failure modes must be indistinguishable")
	}
}

func TestLoginLogoutSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	user := &model.User{Name: "Alice", Email: "alice@example.com", Password: "s3cret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("claims email = %q, want alice@example.com", claims.Email)
	}

	active, err := svc.Sessions.IsActive(ctx, claims.ID)
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if !active {
		t.Fatal("session should be active after login")
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	active, err = svc.Sessions.IsActive(ctx, claims.ID)
	if err != nil {
		t.Fatalf("IsActive after logout: %v", err)
	}
	if active {
		t.Error("session should be revoked after logout")
	}
}
