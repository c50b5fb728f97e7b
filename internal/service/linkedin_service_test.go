package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
)

func newLinkedinTestServer(t *testing.T, ugcStatus int, ugcBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/userinfo":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"sub":"abc123","name":"Test Member"}`))
		case "/v2/ugcPosts":
			if r.Header.Get("X-Restli-Protocol-Version") != "2.0.0" {
				t.Errorf("missing restli protocol header")
			}
			w.Header().Set("x-restli-id", "urn:li:share:7001")
			w.WriteHeader(ugcStatus)
			w.Write([]byte(ugcBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestLinkedinPublishReturnsShareURN(t *testing.T) {
	server := newLinkedinTestServer(t, http.StatusCreated, "")
	defer server.Close()

	s := &linkedinService{
		cfg:     config.Config{SecretKey: testSecretKey},
		baseURL: server.URL,
		http:    server.Client(),
	}
	account := &models.Account{
		Platform: models.PlatformLinkedin,
		Token:    encryptedToken(t, "linkedin-token"),
	}

	result := s.Publish(context.Background(), account, "Hello")
	if !result.OK {
		t.Fatalf("expected success, got %q", result.ErrorMessage)
	}
	if result.PlatformPostID != "urn:li:share:7001" {
		t.Errorf("platform post id = %q", result.PlatformPostID)
	}
}

func TestLinkedinPublishKeepsErrorPayloadVerbatim(t *testing.T) {
	payload := `{"message":"Unpermitted fields present in REQUEST_BODY","status":422}`
	server := newLinkedinTestServer(t, http.StatusUnprocessableEntity, payload)
	defer server.Close()

	s := &linkedinService{
		cfg:     config.Config{SecretKey: testSecretKey},
		baseURL: server.URL,
		http:    server.Client(),
	}
	account := &models.Account{
		Platform: models.PlatformLinkedin,
		Token:    encryptedToken(t, "linkedin-token"),
	}

	result := s.Publish(context.Background(), account, "Hello")
	if result.OK {
		t.Fatal("expected failure result")
	}
	if result.ErrorMessage != payload {
		t.Errorf("error message = %q, want the platform payload verbatim", result.ErrorMessage)
	}
	if result.ErrorCode != http.StatusUnprocessableEntity {
		t.Errorf("error code = %d", result.ErrorCode)
	}
}
