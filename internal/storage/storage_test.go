package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	myErr "adboard/internal/types/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestIsAllowedImage(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAllowedImage("image/png"))
	assert.True(t, IsAllowedImage("image/jpeg"))
	assert.True(t, IsAllowedImage("IMAGE/GIF; charset=binary"))
	assert.False(t, IsAllowedImage("text/plain; charset=utf-8"))
	assert.False(t, IsAllowedImage("application/octet-stream"))
}

func TestImageKey(t *testing.T) {
	t.Parallel()

	key := ImageKey(42, "image/png")
	assert.Regexp(t, regexp.MustCompile(`^ads/42/[0-9a-f-]{36}\.png$`), key)
	assert.NotEqual(t, key, ImageKey(42, "image/png"))
}

// fakeS3 принимает PutObject и запоминает последний запрос
type fakeS3 struct {
	mu          sync.Mutex
	status      int
	method      string
	path        string
	contentType string
	body        string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body) // nolint:errcheck
	f.method = r.Method
	f.path = r.URL.Path
	f.contentType = r.Header.Get("Content-Type")
	f.body = string(body)

	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(f.status)
}

func newTestStorage(t *testing.T, srv *httptest.Server) *S3Storage {
	t.Helper()
	s, err := newS3Storage(&aws.Config{
		Region:           aws.String("us-east-1"),
		Endpoint:         aws.String(srv.URL),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(true),
		MaxRetries:       aws.Int(0),
		Credentials:      credentials.NewStaticCredentials("key", "secret", ""),
	}, "ad-images", "https://cdn.example.com/ad-images/", zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	return s
}

func TestS3Storage_Upload(t *testing.T) {
	fake := &fakeS3{status: http.StatusOK}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	s := newTestStorage(t, srv)

	url, err := s.Upload(context.Background(), "ads/1/pic.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ad-images/ads/1/pic.png", url)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, http.MethodPut, fake.method)
	assert.Equal(t, "/ad-images/ads/1/pic.png", fake.path)
	assert.Equal(t, "image/png", fake.contentType)
	assert.Equal(t, "png-bytes", fake.body)
}

func TestS3Storage_UploadError(t *testing.T) {
	srv := httptest.NewServer(&fakeS3{status: http.StatusForbidden})
	defer srv.Close()

	s := newTestStorage(t, srv)

	url, err := s.Upload(context.Background(), "ads/1/pic.png", "image/png", strings.NewReader("png-bytes"))
	assert.Empty(t, url)
	assert.ErrorIs(t, err, myErr.ErrStorage)
}
