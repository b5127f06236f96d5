package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/fK470/fusen/internal/api"
)

func doJSON(t *testing.T, env *testEnv, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func decodeBookmark(t *testing.T, rec *httptest.ResponseRecorder) api.BookmarkResponse {
	t.Helper()
	var resp api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode bookmark: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return resp
}

func sortedCopy(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

func TestBookmarks_Create_Created(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "POST", "/api/v1/bookmarks",
		`{"url":"https://example.com","title":"T","description":"D","tags":["java","spring"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	resp := decodeBookmark(t, rec)
	if resp.ID == 0 {
		t.Error("expected assigned id")
	}
	if got := sortedCopy(resp.Tags); len(got) != 2 || got[0] != "java" || got[1] != "spring" {
		t.Errorf("tags = %v, want set {java spring}", resp.Tags)
	}
	if _, err := time.Parse("2006-01-02T15:04:05Z", resp.CreatedAt); err != nil {
		t.Errorf("createdAt %q not in expected layout: %v", resp.CreatedAt, err)
	}
}

func TestBookmarks_Create_DuplicateURL(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"https://example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d; body: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"https://example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if e := decodeError(t, rec); e.ErrorCode != "DUPLICATE_URL" {
		t.Errorf("errorCode = %q, want DUPLICATE_URL", e.ErrorCode)
	}
}

func TestBookmarks_Create_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	// Pattern mismatch is caught by declarative request validation.
	for _, body := range []string{
		`{"url":"ftp://x"}`,
		`{"url":""}`,
		`{"title":"no url"}`,
	} {
		rec := doJSON(t, env, "POST", "/api/v1/bookmarks", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status for %s = %d, want %d", body, rec.Code, http.StatusBadRequest)
		}
		if e := decodeError(t, rec); e.ErrorCode != "VALIDATION_ERROR" {
			t.Errorf("errorCode for %s = %q, want VALIDATION_ERROR", body, e.ErrorCode)
		}
	}
}

func TestBookmarks_Create_InvalidURL(t *testing.T) {
	env := newTestEnv(t)

	// Passes the pattern but fails URL parsing.
	rec := doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"http://[::1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if e := decodeError(t, rec); e.ErrorCode != "INVALID_URL" {
		t.Errorf("errorCode = %q, want INVALID_URL", e.ErrorCode)
	}

	// A bare scheme passes both the pattern and the parser.
	rec = doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"http://"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("status for http:// = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestBookmarks_Get_OK(t *testing.T) {
	env := newTestEnv(t)

	created := decodeBookmark(t, doJSON(t, env, "POST", "/api/v1/bookmarks",
		`{"url":"https://example.com","tags":["go"]}`))

	rec := doJSON(t, env, "GET", fmt.Sprintf("/api/v1/bookmarks/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBookmark(t, rec)
	if resp.URL != "https://example.com" || len(resp.Tags) != 1 || resp.Tags[0] != "go" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestBookmarks_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "GET", "/api/v1/bookmarks/9999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if e := decodeError(t, rec); e.ErrorCode != "BOOKMARK_NOT_FOUND" {
		t.Errorf("errorCode = %q, want BOOKMARK_NOT_FOUND", e.ErrorCode)
	}
}

func TestBookmarks_List(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		rec := doJSON(t, env, "POST", "/api/v1/bookmarks",
			fmt.Sprintf(`{"url":"https://example.com/%d"}`, i))
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d failed: %s", i, rec.Body.String())
		}
	}

	rec := doJSON(t, env, "GET", "/api/v1/bookmarks?limit=2&offset=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var page []api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("len = %d, want 2", len(page))
	}
	if page[0].URL != "https://example.com/1" {
		t.Errorf("first url = %q, want /1", page[0].URL)
	}
}

func TestBookmarks_List_Boundaries(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"https://example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %s", rec.Body.String())
	}

	var page []api.BookmarkResponse

	rec = doJSON(t, env, "GET", "/api/v1/bookmarks?limit=0", "")
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode limit=0: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("limit=0 len = %d, want 0", len(page))
	}

	rec = doJSON(t, env, "GET", "/api/v1/bookmarks?offset=50", "")
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode offset=50: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("offset past end len = %d, want 0", len(page))
	}
}

func TestBookmarks_EmptyTagsRenderAsEmptyArray(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"https://example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %s", rec.Body.String())
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if string(raw["tags"]) != "[]" {
		t.Errorf(`tags = %s, want []`, raw["tags"])
	}
}

func TestBookmarks_Update_ReplacesTags(t *testing.T) {
	env := newTestEnv(t)

	created := decodeBookmark(t, doJSON(t, env, "POST", "/api/v1/bookmarks",
		`{"url":"https://example.com","title":"T","tags":["java","spring"]}`))

	rec := doJSON(t, env, "PUT", fmt.Sprintf("/api/v1/bookmarks/%d", created.ID),
		`{"url":"https://example.com/new","title":"T2","tags":["java","updated"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	got := decodeBookmark(t, doJSON(t, env, "GET", fmt.Sprintf("/api/v1/bookmarks/%d", created.ID), ""))
	tags := sortedCopy(got.Tags)
	if len(tags) != 2 || tags[0] != "java" || tags[1] != "updated" {
		t.Errorf("tags = %v, want set {java updated}", got.Tags)
	}
}

func TestBookmarks_Update_URLConflicts(t *testing.T) {
	env := newTestEnv(t)

	if rec := doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"https://a.example"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create a failed: %s", rec.Body.String())
	}
	b := decodeBookmark(t, doJSON(t, env, "POST", "/api/v1/bookmarks", `{"url":"https://b.example"}`))

	// Taking another bookmark's URL conflicts.
	rec := doJSON(t, env, "PUT", fmt.Sprintf("/api/v1/bookmarks/%d", b.ID), `{"url":"https://a.example"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	// Keeping its own URL does not.
	rec = doJSON(t, env, "PUT", fmt.Sprintf("/api/v1/bookmarks/%d", b.ID), `{"url":"https://b.example"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestBookmarks_Update_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "PUT", "/api/v1/bookmarks/9999", `{"url":"https://example.com"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestBookmarks_Delete_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	created := decodeBookmark(t, doJSON(t, env, "POST", "/api/v1/bookmarks",
		`{"url":"https://example.com","tags":["java"]}`))
	path := fmt.Sprintf("/api/v1/bookmarks/%d", created.ID)

	rec := doJSON(t, env, "DELETE", path, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}

	if rec := doJSON(t, env, "GET", path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := doJSON(t, env, "DELETE", path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestBookmarks_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "GET", "/api/v1/bookmarks/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if e := decodeError(t, rec); e.ErrorCode != "VALIDATION_ERROR" {
		t.Errorf("errorCode = %q, want VALIDATION_ERROR", e.ErrorCode)
	}
}
