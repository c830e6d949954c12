package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dc25/photoview/internal/carousel"
	"github.com/dc25/photoview/internal/flickr"
	"github.com/dc25/photoview/internal/http/handlers"
	"github.com/dc25/photoview/internal/hub"
	"github.com/dc25/photoview/internal/viewer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubCollections struct {
	photos []carousel.Photo
	err    error
}

func (s *stubCollections) ResolvePhotos(context.Context, string, string) ([]carousel.Photo, error) {
	return s.photos, s.err
}

type stubCaptions struct{}

func (stubCaptions) PhotoDescription(context.Context, string) (string, error) {
	return "", errors.New("unavailable")
}

func newHandler(t *testing.T, collections viewer.CollectionFetcher) (*handlers.SessionHandler, *viewer.Manager) {
	t.Helper()
	logger := newTestLogger()
	manager := viewer.NewManager(logger, collections, stubCaptions{}, viewer.NopNotifier{})
	return handlers.NewSessionHandler(logger, manager, hub.New(logger)), manager
}

func makePhotos(ids ...string) []carousel.Photo {
	photos := make([]carousel.Photo, 0, len(ids))
	for _, id := range ids {
		photos = append(photos, carousel.Photo{ID: id, Secret: "s" + id, Server: "9", Farm: 3})
	}
	return photos
}

func postJSON(ctx *gin.Context, path, body string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
}

func TestCreateSessionSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	postJSON(ctx, "/sessions", `{"username":"somebody"}`)

	handler, _ := newHandler(t, &stubCollections{photos: makePhotos("1", "2", "3")})
	handler.Create(ctx)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var view viewer.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if view.PhotoID != "1" || view.Total != 3 || view.Position != 0 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.URL != "https://farm3.staticflickr.com/9/1_s1_b.jpg" {
		t.Fatalf("unexpected photo url %s", view.URL)
	}
}

func TestCreateSessionMissingUsername(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	postJSON(ctx, "/sessions", `{"username":"  "}`)

	handler, _ := newHandler(t, &stubCollections{})
	handler.Create(ctx)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestCreateSessionAlbumNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	postJSON(ctx, "/sessions", `{"username":"somebody","album":"Vacation"}`)

	handler, _ := newHandler(t, &stubCollections{err: &flickr.AlbumNotFoundError{Album: "Vacation"}})
	handler.Create(ctx)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Vacation") {
		t.Fatalf("expected response to name the album: %s", rec.Body.String())
	}
}

func TestCreateSessionFetchFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	postJSON(ctx, "/sessions", `{"username":"somebody"}`)

	handler, _ := newHandler(t, &stubCollections{err: errors.New("boom")})
	handler.Create(ctx)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestShowUnknownSession(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/sessions/nope", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler, _ := newHandler(t, &stubCollections{})
	handler.Show(ctx)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestNextAdvancesPhoto(t *testing.T) {
	handler, manager := newHandler(t, &stubCollections{photos: makePhotos("1", "2")})
	session := manager.Open(context.Background(), "somebody", "")

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	postJSON(ctx, "/sessions/"+session.ID+"/next", "")
	ctx.Params = gin.Params{{Key: "id", Value: session.ID}}

	handler.Next(ctx)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view viewer.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.PhotoID != "2" || view.Position != 1 {
		t.Fatalf("unexpected view after next: %+v", view)
	}
}

func TestPreviousWrapsToLast(t *testing.T) {
	handler, manager := newHandler(t, &stubCollections{photos: makePhotos("1", "2", "3")})
	session := manager.Open(context.Background(), "somebody", "")

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	postJSON(ctx, "/sessions/"+session.ID+"/prev", "")
	ctx.Params = gin.Params{{Key: "id", Value: session.ID}}

	handler.Previous(ctx)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var view viewer.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view.PhotoID != "3" {
		t.Fatalf("expected wrap to photo 3, got %s", view.PhotoID)
	}
}

func TestNavigationRejectedOnFailedSession(t *testing.T) {
	handler, manager := newHandler(t, &stubCollections{err: errors.New("boom")})
	session := manager.Open(context.Background(), "somebody", "")

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	postJSON(ctx, "/sessions/"+session.ID+"/next", "")
	ctx.Params = gin.Params{{Key: "id", Value: session.ID}}

	handler.Next(ctx)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	handler, manager := newHandler(t, &stubCollections{photos: makePhotos("1")})
	session := manager.Open(context.Background(), "somebody", "")

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodDelete, "/sessions/"+session.ID, nil)
	ctx.Params = gin.Params{{Key: "id", Value: session.ID}}

	handler.Delete(ctx)
	ctx.Writer.WriteHeaderNow()

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if _, ok := manager.Get(session.ID); ok {
		t.Fatalf("expected session to be gone")
	}
}
