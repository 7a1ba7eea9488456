package sync

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/alexdoe/folio/internal/domain"
	"github.com/alexdoe/folio/internal/service/content"
	"github.com/alexdoe/folio/internal/store"
	"github.com/alexdoe/folio/pkg/errors"
	"go.uber.org/zap"
)

type blobServer struct {
	srv     *httptest.Server
	creates int
	updates int
	blobs   map[string][]byte
}

func newBlobServer(t *testing.T) *blobServer {
	t.Helper()
	bs := &blobServer{blobs: map[string][]byte{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/jsonBlob", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		bs.creates++
		body, _ := io.ReadAll(r.Body)
		bs.blobs["blob-1"] = body
		w.Header().Set("Location", "/api/jsonBlob/blob-1")
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/api/jsonBlob/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/api/jsonBlob/"):]
		switch r.Method {
		case http.MethodPut:
			if _, ok := bs.blobs[id]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			bs.updates++
			body, _ := io.ReadAll(r.Body)
			bs.blobs[id] = body
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			data, ok := bs.blobs[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	bs.srv = httptest.NewServer(mux)
	t.Cleanup(bs.srv.Close)
	return bs
}

func newTestStack(t *testing.T, baseURL string) (*content.Service, *store.ContentRepository, *Service) {
	t.Helper()

	kv, err := store.NewFileKV(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	repo := store.NewContentRepository(kv, zap.NewNop())
	initial, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	contentSvc := content.NewService(repo, initial, zap.NewNop())
	client := NewBlobClient(baseURL, zap.NewNop())
	svc := NewService(contentSvc, repo, client, nil, "https://alexdoe.dev", zap.NewNop())
	return contentSvc, repo, svc
}

func TestSyncCreatesThenUpdates(t *testing.T) {
	bs := newBlobServer(t)
	_, repo, svc := newTestStack(t, bs.srv.URL+"/api/jsonBlob")
	ctx := context.Background()

	result, err := svc.SyncNow(ctx)
	if err != nil {
		t.Fatalf("first SyncNow failed: %v", err)
	}
	if result.ID != "blob-1" {
		t.Errorf("expected id from Location header, got %q", result.ID)
	}
	if result.ShareURL != "https://alexdoe.dev/#live=blob-1" {
		t.Errorf("share url wrong: %q", result.ShareURL)
	}

	stored, err := repo.SyncID(ctx)
	if err != nil {
		t.Fatalf("SyncID failed: %v", err)
	}
	if stored != "blob-1" {
		t.Errorf("sync id not persisted: %q", stored)
	}

	// Second sync must update the same blob, not create a second one.
	if _, err := svc.SyncNow(ctx); err != nil {
		t.Fatalf("second SyncNow failed: %v", err)
	}
	if bs.creates != 1 || bs.updates != 1 {
		t.Errorf("expected 1 create + 1 update, got %d/%d", bs.creates, bs.updates)
	}
}

func TestFailedCreateLeavesIDUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	_, repo, svc := newTestStack(t, server.URL)
	ctx := context.Background()

	if _, err := svc.SyncNow(ctx); err == nil {
		t.Fatal("expected sync failure")
	}

	id, err := repo.SyncID(ctx)
	if err != nil {
		t.Fatalf("SyncID failed: %v", err)
	}
	if id != "" {
		t.Errorf("failed create must leave id unset, got %q", id)
	}
}

func TestCreateWithoutLocationFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	_, _, svc := newTestStack(t, server.URL)

	_, err := svc.SyncNow(context.Background())
	if err == nil {
		t.Fatal("expected failure when Location header is missing")
	}
	if _, ok := err.(*errors.APIError); !ok {
		t.Fatalf("expected *errors.APIError, got %T", err)
	}
}

func TestLoadSharedReplacesContent(t *testing.T) {
	bs := newBlobServer(t)
	contentSvc, _, svc := newTestStack(t, bs.srv.URL+"/api/jsonBlob")
	ctx := context.Background()

	shared := domain.DefaultContent()
	shared.Profile.Name = "Shared Snapshot"
	payload, err := shared.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	bs.blobs["blob-9"] = payload

	if err := svc.LoadShared(ctx, "blob-9"); err != nil {
		t.Fatalf("LoadShared failed: %v", err)
	}

	if got := contentSvc.Snapshot().Profile.Name; got != "Shared Snapshot" {
		t.Errorf("content not replaced, got %q", got)
	}
}

func TestSharedFetchLeavesContentUntouched(t *testing.T) {
	bs := newBlobServer(t)
	contentSvc, _, svc := newTestStack(t, bs.srv.URL+"/api/jsonBlob")
	ctx := context.Background()

	shared := domain.DefaultContent()
	shared.Profile.Name = "Someone Else"
	payload, err := shared.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	bs.blobs["blob-7"] = payload

	before := contentSvc.Snapshot()

	fetched, err := svc.Shared(ctx, "blob-7")
	if err != nil {
		t.Fatalf("Shared failed: %v", err)
	}
	if fetched.Profile.Name != "Someone Else" {
		t.Errorf("fetched profile = %q, want Someone Else", fetched.Profile.Name)
	}

	if !reflect.DeepEqual(before, contentSvc.Snapshot()) {
		t.Error("read-only fetch mutated local content")
	}
}

func TestFailedLoadSharedKeepsContent(t *testing.T) {
	bs := newBlobServer(t)
	contentSvc, _, svc := newTestStack(t, bs.srv.URL+"/api/jsonBlob")
	ctx := context.Background()

	before := contentSvc.Snapshot()
	if err := svc.LoadShared(ctx, "no-such-blob"); err == nil {
		t.Fatal("expected load failure")
	}

	if !reflect.DeepEqual(before, contentSvc.Snapshot()) {
		t.Error("failed load mutated content")
	}
}

func TestConcurrentSyncRejected(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Header().Set("Location", "/blob-slow")
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	_, _, svc := newTestStack(t, server.URL)

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.SyncNow(context.Background())
		errCh <- err
	}()

	<-started
	_, err := svc.SyncNow(context.Background())
	if err == nil {
		t.Fatal("expected in-flight guard to reject second sync")
	}
	if _, ok := err.(*errors.SyncError); !ok {
		t.Fatalf("expected *errors.SyncError, got %T", err)
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
}
