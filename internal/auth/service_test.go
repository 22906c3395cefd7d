package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
	"github.com/ayush/inkpress/internal/store/storetest"
)

func newTestService() (*Service, *storetest.Memory) {
	mem := storetest.NewMemory()
	svc := NewService(mem)
	svc.cost = bcrypt.MinCost
	return svc, mem
}

func TestSignupHashesPassword(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	for _, pw := range []string{"pw123", "correct horse battery staple", "ü"} {
		user, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: pw})
		if err != nil {
			t.Fatalf("Signup: %v", err)
		}
		if user.Password == pw {
			t.Fatalf("stored password equals plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(pw)); err != nil {
			t.Fatalf("hash does not verify: %v", err)
		}
	}
	if n := len(mem.Users()); n != 3 {
		t.Errorf("stored %d users, want 3 (duplicates allowed)", n)
	}
}

func TestSignupAvatar(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, models.SignupRequest{Username: "a", Email: "e", Password: "p"})
	if err != nil || u.Avatar != nil {
		t.Fatalf("Signup without avatar = %+v, %v", u, err)
	}
	u, err = svc.Signup(ctx, models.SignupRequest{Username: "b", Email: "e", Password: "p", Avatar: "cat.png"})
	if err != nil || u.Avatar == nil || *u.Avatar != "cat.png" {
		t.Fatalf("Signup with avatar = %+v, %v", u, err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc, mem := newTestService()
	cases := []models.SignupRequest{
		{Email: "a@x.com", Password: "pw"},
		{Username: "alice", Password: "pw"},
		{Username: "alice", Email: "a@x.com"},
	}
	for _, req := range cases {
		if _, err := svc.Signup(context.Background(), req); !errors.Is(err, common.ErrValidation) {
			t.Errorf("Signup(%+v) err = %v, want ErrValidation", req, err)
		}
	}
	if len(mem.Users()) != 0 {
		t.Error("invalid signup stored a user")
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Signup(ctx, models.SignupRequest{Username: "alice", Email: "a@x.com", Password: "pw123"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	u, err := svc.Login(ctx, "alice", "pw123")
	if err != nil || u.Username != "alice" {
		t.Fatalf("Login = %+v, %v", u, err)
	}

	_, wrongPw := svc.Login(ctx, "alice", "wrong")
	_, unknown := svc.Login(ctx, "bob", "pw123")
	if wrongPw != common.ErrInvalidCredentials || unknown != common.ErrInvalidCredentials {
		t.Fatalf("errors differ: wrong password %v, unknown user %v", wrongPw, unknown)
	}
}

func TestLoginStorageFailure(t *testing.T) {
	svc, mem := newTestService()
	mem.Err = common.StorageError("find", errors.New("down"))

	_, err := svc.Login(context.Background(), "alice", "pw")
	if !errors.Is(err, common.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
}
