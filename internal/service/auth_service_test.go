package service

import (
	"errors"
	"testing"

	"recipebox/internal/models"
)

// fakeAccountRepo keeps accounts in a slice, handing out increasing ids.
type fakeAccountRepo struct {
	accounts []models.Account
	nextID   int
	err      error
}

func (f *fakeAccountRepo) Create(username, password string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	f.accounts = append(f.accounts, models.Account{ID: f.nextID, Username: username, Password: password})
	return f.nextID, nil
}

func (f *fakeAccountRepo) GetByUsername(username string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.accounts {
		if f.accounts[i].Username == username {
			return &f.accounts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetByID(id int) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			return &f.accounts[i], nil
		}
	}
	return nil, nil
}

func TestAuthService_SignUp(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAuthService(repo)

	id, err := svc.SignUp("alice", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}

	// password lands in the store exactly as submitted
	stored, _ := repo.GetByUsername("alice")
	if stored.Password != "hunter2" {
		t.Fatalf("password transformed on the way to the store: %q", stored.Password)
	}

	// duplicate username is rejected
	if _, err := svc.SignUp("alice", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// blank credentials are rejected
	if _, err := svc.SignUp("  ", "pw"); !errors.Is(err, ErrEmptyCredential) {
		t.Fatalf("expected ErrEmptyCredential for blank username, got %v", err)
	}
	if _, err := svc.SignUp("bob", ""); !errors.Is(err, ErrEmptyCredential) {
		t.Fatalf("expected ErrEmptyCredential for empty password, got %v", err)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAuthService(repo)

	id, err := svc.SignUp("alice", "hunter2")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	token, err := svc.GenerateToken("alice", "hunter2")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	gotID, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if gotID != id {
		t.Fatalf("token carries id %d, want %d", gotID, id)
	}
}

func TestAuthService_GenerateToken_Failures(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAuthService(repo)
	if _, err := svc.SignUp("alice", "hunter2"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if _, err := svc.GenerateToken("nobody", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.GenerateToken("alice", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := NewAuthService(&fakeAccountRepo{})
	if _, err := svc.ParseToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthService_AccountByID(t *testing.T) {
	repo := &fakeAccountRepo{}
	svc := NewAuthService(repo)
	id, _ := svc.SignUp("alice", "pw")

	acct, err := svc.AccountByID(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct == nil || acct.Username != "alice" {
		t.Fatalf("unexpected account: %+v", acct)
	}

	missing, err := svc.AccountByID(99)
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown id, got %+v, %v", missing, err)
	}
}
