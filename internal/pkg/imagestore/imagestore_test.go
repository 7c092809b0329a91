package imagestore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	var gotAuth, gotPublicID, gotFolder string
	var gotFile []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/image/upload", r.URL.Path)

		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPublicID = r.FormValue("public_id")
		gotFolder = r.FormValue("folder")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 32)
		n, _ := file.Read(buf)
		gotFile = buf[:n]

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://img.test/user_profiles/profile_alice.jpg",
			"public_id":  gotPublicID,
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, APIKey: "test-key", Folder: "user_profiles"})

	url, err := client.Upload([]byte("jpeg-bytes"), "profile_alice@test.com")
	require.NoError(t, err)

	assert.Equal(t, "https://img.test/user_profiles/profile_alice.jpg", url)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "profile_alice@test.com", gotPublicID)
	assert.Equal(t, "user_profiles", gotFolder)
	assert.Equal(t, []byte("jpeg-bytes"), gotFile)
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, APIKey: "test-key"})

	_, err := client.Upload([]byte("jpeg-bytes"), "profile_alice@test.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image host error")
}

func TestUploadConnectionRefused(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"})

	_, err := client.Upload([]byte("jpeg-bytes"), "key")
	assert.Error(t, err)
}
