package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dishtail/backend/internal/models"
)

// TestPassword is the plain-text password of users made by CreateTestUser
const TestPassword = "testpassword123"

// CreateTestUser creates a user with TestPassword and the given role
func CreateTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        fmt.Sprintf("testuser+%s@example.com", uuid.NewString()),
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// ChatReply is one canned answer from a FakeChatServer
type ChatReply struct {
	Status  int
	Content string
	Body    string
}

// FakeChatServer imitates an OpenAI-compatible chat completions endpoint
type FakeChatServer struct {
	*httptest.Server

	mu       sync.Mutex
	replies  []ChatReply
	requests []map[string]interface{}
}

// NewFakeChatServer serves replies in order and repeats the last one once
// they run out. Content is wrapped in a choices envelope; Body, when set, is
// written verbatim instead.
func NewFakeChatServer(t *testing.T, replies ...ChatReply) *FakeChatServer {
	t.Helper()
	if len(replies) == 0 {
		replies = []ChatReply{{Status: http.StatusOK, Content: "[]"}}
	}

	f := &FakeChatServer{replies: replies}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeChatServer) handle(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	f.mu.Lock()
	f.requests = append(f.requests, payload)
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	f.mu.Unlock()

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if reply.Body != "" || status != http.StatusOK {
		_, _ = w.Write([]byte(reply.Body))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": reply.Content}},
		},
	})
}

// Requests returns the decoded request bodies received so far
func (f *FakeChatServer) Requests() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.requests...)
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
