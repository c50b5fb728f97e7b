package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/models"
	"github.com/Retyreg/VYUD-AI-Scheduler/pkg/utils"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func encryptedToken(t *testing.T, token string) string {
	t.Helper()
	encrypted, err := utils.Encrypt([]byte(token), []byte(testSecretKey))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	return encrypted
}

func TestVKPublishComposesPostID(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = map[string]string{
			"owner_id":   r.PostFormValue("owner_id"),
			"from_group": r.PostFormValue("from_group"),
			"v":          r.PostFormValue("v"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":{"post_id":456}}`))
	}))
	defer server.Close()

	s := &vkService{
		cfg:     config.Config{SecretKey: testSecretKey},
		baseURL: server.URL,
		http:    server.Client(),
	}
	account := &models.Account{
		Platform:  models.PlatformVK,
		ChannelID: "-123",
		Token:     encryptedToken(t, "vk-token"),
	}

	result := s.Publish(context.Background(), account, "Hello")
	if !result.OK {
		t.Fatalf("expected success, got %q", result.ErrorMessage)
	}
	if result.PlatformPostID != "-123_456" {
		t.Errorf("platform post id = %q, want %q", result.PlatformPostID, "-123_456")
	}
	if gotForm["owner_id"] != "-123" || gotForm["from_group"] != "1" || gotForm["v"] != "5.199" {
		t.Errorf("unexpected form values: %v", gotForm)
	}
}

func TestVKPublishKeepsPlatformError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"error_code":15,"error_msg":"Access denied: no access to call this method"}}`))
	}))
	defer server.Close()

	s := &vkService{
		cfg:     config.Config{SecretKey: testSecretKey},
		baseURL: server.URL,
		http:    server.Client(),
	}
	account := &models.Account{
		Platform:  models.PlatformVK,
		ChannelID: "-123",
		Token:     encryptedToken(t, "vk-token"),
	}

	result := s.Publish(context.Background(), account, "Hello")
	if result.OK {
		t.Fatal("expected failure result")
	}
	if result.ErrorCode != 15 {
		t.Errorf("error code = %d, want 15", result.ErrorCode)
	}
	if result.ErrorMessage != "Access denied: no access to call this method" {
		t.Errorf("error message = %q", result.ErrorMessage)
	}
}

func TestVKPublishRequiresReadableCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made with an unreadable credential")
	}))
	defer server.Close()

	s := &vkService{
		cfg:     config.Config{SecretKey: testSecretKey},
		baseURL: server.URL,
		http:    server.Client(),
	}
	account := &models.Account{Platform: models.PlatformVK, ChannelID: "-123", Token: "not-base64!"}

	if result := s.Publish(context.Background(), account, "Hello"); result.OK {
		t.Fatal("expected failure result")
	}
}
