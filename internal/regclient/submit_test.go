package regclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merididi/internal/submission/handler"
	"merididi/internal/submission/service"
	"merididi/internal/submission/store"
	dErrors "merididi/pkg/domain-errors"
)

func writeAttachment(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// readyForm returns a form on the documents step with valid answers and
// both attachments, sharing the given cache.
func readyForm(t *testing.T, baseURL string, cache Cache, opts ...Option) *Form {
	t.Helper()
	f := New(baseURL, cache, opts...)
	f.Answers = validAnswers()
	require.Empty(t, f.Next())
	require.Empty(t, f.Next())
	f.AttachIDDocument(writeAttachment(t, "aadhar.pdf", "id bytes"))
	f.AttachPhoto(writeAttachment(t, "photo.jpg", "photo bytes"))
	return f
}

func newCache(t *testing.T) *FileCache {
	t.Helper()
	cache, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	return cache
}

func TestSubmit_Success(t *testing.T) {
	var gotFields map[string]string
	var gotFiles map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotFields = make(map[string]string)
		for key, values := range r.MultipartForm.Value {
			gotFields[key] = values[0]
		}
		gotFiles = make(map[string]string)
		for key, headers := range r.MultipartForm.File {
			gotFiles[key] = headers[0].Filename
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message":     "Registration submitted successfully",
			"referenceId": "WRK-123456",
		})
	}))
	defer srv.Close()

	cache := newCache(t)
	f := readyForm(t, srv.URL, cache)

	receipt, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "WRK-123456", receipt.Reference)
	assert.True(t, f.Succeeded())
	assert.Equal(t, "WRK-123456", f.Reference())

	assert.Equal(t, "Asha Kumari", gotFields["name"])
	assert.Equal(t, "cleaning", gotFields["serviceType"])
	assert.Equal(t, "123456789012", gotFields["idNumber"])
	assert.Equal(t, "aadhar.pdf", gotFiles["id_document"])
	assert.Equal(t, "photo.jpg", gotFiles["photo"])

	var last struct {
		Reference string `json:"reference"`
	}
	found, err := cache.Get(KeyLastSubmission, &last)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "WRK-123456", last.Reference)
}

func TestSubmit_FallbackReferenceWhenBodyUnreadable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		// No body at all: the acceptance stands but the reference is lost.
	}))
	defer srv.Close()

	f := readyForm(t, srv.URL, newCache(t))

	receipt, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^REF-[0-9A-Z]{8}$`), receipt.Reference)
	assert.True(t, f.Succeeded())
}

func TestSubmit_ServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Invalid registration data",
			"errors":  []map[string]string{{"field": "email", "message": "email must be a valid email address"}},
		})
	}))
	defer srv.Close()

	cache := newCache(t)
	f := readyForm(t, srv.URL, cache)

	_, err := f.Submit(context.Background())
	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)

	assert.Equal(t, FailureRejected, subErr.Kind)
	assert.Equal(t, "Invalid registration data", subErr.Message)
	require.Len(t, subErr.Fields, 1)
	assert.Equal(t, dErrors.FieldError{Field: "email", Message: "email must be a valid email address"}, subErr.Fields[0])
	assert.False(t, f.Succeeded())

	// A rejection is not a network failure: nothing gets queued.
	var pending PendingSubmission
	found, err := cache.Get(KeyPendingSubmission, &pending)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSubmit_NetworkFailureCachesPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	cache := newCache(t)
	f := readyForm(t, deadURL, cache)

	_, err := f.Submit(context.Background())
	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, FailureUnreachable, subErr.Kind)
	assert.Equal(t, msgUnreachable, subErr.Message)
	assert.False(t, f.Succeeded())

	var pending PendingSubmission
	found, err := cache.Get(KeyPendingSubmission, &pending)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Asha Kumari", pending.Data.Name)
	assert.Equal(t, "aadhar.pdf", pending.IDDocument.Filename)
	assert.Equal(t, "photo.jpg", pending.Photo.Filename)
	assert.False(t, pending.FailedAt.IsZero())
}

func TestSubmit_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	f := readyForm(t, srv.URL, newCache(t), WithTimeout(50*time.Millisecond))

	_, err := f.Submit(context.Background())
	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, FailureTimeout, subErr.Kind)
	assert.Equal(t, msgTimeout, subErr.Message)
}

func TestResubmit_ReplaysPendingAndClearsIt(t *testing.T) {
	cache := newCache(t)

	// First attempt against a dead server queues the submission.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()
	first := readyForm(t, deadURL, cache)
	_, err := first.Submit(context.Background())
	require.Error(t, err)

	// Second attempt against a live server, same cache.
	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"referenceId": "WRK-654321"})
	}))
	defer live.Close()

	f := New(live.URL, cache)
	receipt, err := f.Resubmit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "WRK-654321", receipt.Reference)
	assert.True(t, f.Succeeded())

	var pending PendingSubmission
	found, err := cache.Get(KeyPendingSubmission, &pending)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResubmit_NothingPending(t *testing.T) {
	f := New("http://localhost:0", newCache(t))

	_, err := f.Resubmit(context.Background())
	assert.ErrorIs(t, err, ErrNoPendingSubmission)
}

func TestSubmit_Guards(t *testing.T) {
	t.Run("wrong step", func(t *testing.T) {
		f := New("http://localhost:0", newCache(t))
		_, err := f.Submit(context.Background())
		assert.ErrorIs(t, err, ErrWrongStep)
	})

	t.Run("missing attachment", func(t *testing.T) {
		f := New("http://localhost:0", newCache(t))
		f.Answers = validAnswers()
		require.Empty(t, f.Next())
		require.Empty(t, f.Next())
		f.AttachIDDocument(writeAttachment(t, "aadhar.pdf", "id bytes"))

		_, err := f.Submit(context.Background())
		assert.ErrorIs(t, err, ErrMissingAttachment)
	})

	t.Run("already succeeded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"referenceId": "WRK-111111"})
		}))
		defer srv.Close()

		f := readyForm(t, srv.URL, newCache(t))
		_, err := f.Submit(context.Background())
		require.NoError(t, err)

		_, err = f.Submit(context.Background())
		assert.ErrorIs(t, err, ErrAlreadySucceeded)
	})
}

// TestSubmit_AgainstRealAPI runs the whole flow against the actual
// handler, service, and store rather than a canned response.
func TestSubmit_AgainstRealAPI(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewInMemory()
	svc := service.New(st, logger)
	h := handler.New(svc, logger, 10<<20)

	router := chi.NewRouter()
	h.Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	f := readyForm(t, srv.URL, newCache(t))

	receipt, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^WRK-[1-9]\d{5}$`), receipt.Reference)
	require.NotNil(t, receipt.Registration)
	assert.Equal(t, "Asha Kumari", receipt.Registration.Name)
	assert.Equal(t, "aadhar.pdf", receipt.Registration.IDDocumentName)

	assert.Equal(t, 1, st.WorkerCount(context.Background()))
}
