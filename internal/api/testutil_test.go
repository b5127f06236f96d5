package api_test

import (
	"net/http"
	"testing"

	"github.com/fK470/fusen/internal/handler"
	"github.com/fK470/fusen/internal/service"
	"github.com/fK470/fusen/internal/store"
	"github.com/fK470/fusen/internal/testutil"
)

// testEnv wires the full router against an in-memory SQLite database,
// so requests exercise the real middleware, handlers, service, and stores.
type testEnv struct {
	Router    http.Handler
	Bookmarks *service.BookmarkService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := testutil.NewTestDB(t)

	bookmarks := service.NewBookmarkService(
		conn,
		store.NewBookmarkStore(conn),
		store.NewTagStore(conn),
		store.NewBookmarkTagStore(conn),
	)

	return &testEnv{
		Router:    handler.NewRouter(handler.Deps{Bookmarks: bookmarks}),
		Bookmarks: bookmarks,
	}
}
