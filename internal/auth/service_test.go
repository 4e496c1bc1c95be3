package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitual.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewService(store, NewJWTManager(DefaultJWTConfig("test-secret")), NewPasswordHasher(bcrypt.MinCost))
}

func TestSignupLoginRefresh(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Signup(ctx, models.SignupInput{Email: "  Ada@Example.com ", Password: "secret1", ConfirmPassword: "secret1"})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if sess.User.Email != "ada@example.com" || sess.AccessToken == "" || sess.RefreshToken == "" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.User.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}

	login, err := svc.Login(ctx, models.LoginInput{Email: "ADA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != sess.User.ID {
		t.Errorf("login user %s, want %s", login.User.ID, sess.User.ID)
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	claims, err := svc.Tokens().ValidateAccessToken(refreshed.AccessToken)
	if err != nil || claims.UserID != sess.User.ID {
		t.Errorf("refreshed access token: claims=%+v err=%v", claims, err)
	}

	if _, err := svc.Refresh(ctx, login.AccessToken); apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Errorf("access token used for refresh: %v", err)
	}
}

func TestSignup_Errors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, models.SignupInput{Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   models.SignupInput
		kind apperrors.Kind
	}{
		{"duplicate email", models.SignupInput{Email: "ADA@example.com", Password: "secret1"}, apperrors.KindConflict},
		{"bad email", models.SignupInput{Email: "ada", Password: "secret1"}, apperrors.KindInvalid},
		{"short password", models.SignupInput{Email: "bob@example.com", Password: "123"}, apperrors.KindInvalid},
		{"mismatched confirmation", models.SignupInput{Email: "bob@example.com", Password: "secret1", ConfirmPassword: "secret2"}, apperrors.KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tt.in)
			if got := apperrors.KindOf(err); got != tt.kind {
				t.Errorf("kind = %v, want %v (%v)", got, tt.kind, err)
			}
		})
	}
}

func TestLogin_Rejects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Signup(ctx, models.SignupInput{Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	for _, in := range []models.LoginInput{
		{Email: "ada@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "secret1"},
		{Email: "", Password: ""},
	} {
		_, err := svc.Login(ctx, in)
		if apperrors.KindOf(err) != apperrors.KindUnauthorized {
			t.Errorf("Login(%q) kind = %v, want unauthorized", in.Email, apperrors.KindOf(err))
		}
		if msg := apperrors.Message(err, ""); msg != "Invalid email or password" {
			t.Errorf("Login(%q) message = %q", in.Email, msg)
		}
	}
}

func TestMe_UnknownUser(t *testing.T) {
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC) }

	for _, id := range []string{"not-a-uuid", "0b8e4f5a-8d3c-4f7e-9a1b-2c3d4e5f6a7b"} {
		if _, err := svc.Me(context.Background(), id); apperrors.KindOf(err) != apperrors.KindUnauthorized {
			t.Errorf("Me(%s) kind = %v", id, apperrors.KindOf(err))
		}
	}
}
