package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/0zturkSamet/task-manager/api"
	"github.com/0zturkSamet/task-manager/board"
	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/storage"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	logger, _ := test.NewNullLogger()
	auth := api.NewAuth([]byte("test-secret"), time.Hour)

	e := echo.New()
	e.Use(api.GzipRequestMiddleware())
	api.Register(e, store, auth, logger)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	session, err := OpenSession(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return New(baseURL, nil, session)
}

func TestEndToEndBoardScenario(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	user, err := c.Register(ctx, RegisterParams{
		Email: "ada@example.com", Password: "s3cret!", FirstName: "Ada", LastName: "Lovelace",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.Session().Token() == "" {
		t.Fatal("register did not store a token")
	}

	if _, err := c.Login(ctx, "ada@example.com", "s3cret!"); err != nil {
		t.Fatalf("login: %v", err)
	}

	p, err := c.CreateProject(ctx, "Analytical Engine", "Programs for the engine", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if p.OwnerID != user.ID {
		t.Fatalf("unexpected owner: %+v", p)
	}

	task, err := c.CreateTask(ctx, TaskParams{
		Title: "Punch the cards", ProjectID: p.ID, Status: "TODO", Priority: "HIGH",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	tasks, err := c.ProjectTasks(ctx, p.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}

	// Drop the card on the IN_PROGRESS column and perform the resolved move.
	move := board.ResolveDrop(tasks, board.DropEvent{DraggedID: task.ID, DropTargetID: "IN_PROGRESS"})
	if move == nil {
		t.Fatal("expected the drop to resolve to a move")
	}
	if _, err := c.MoveTask(ctx, move.TaskID, move.NewStatus); err != nil {
		t.Fatalf("move task: %v", err)
	}

	// Re-render from the refreshed authoritative list.
	tasks, err = c.ProjectTasks(ctx, p.ID)
	if err != nil {
		t.Fatalf("refetch tasks: %v", err)
	}
	if got := board.TasksByStatus(tasks, domain.StatusInProgress); len(got) != 1 || got[0].ID != task.ID {
		t.Fatalf("board projection after move: %+v", got)
	}
	if got := board.TasksByStatus(tasks, domain.StatusTodo); len(got) != 0 {
		t.Fatalf("task still in TODO column: %+v", got)
	}

	// Dropping on the current column is a silent no-op.
	if move := board.ResolveDrop(tasks, board.DropEvent{DraggedID: task.ID, DropTargetID: "IN_PROGRESS"}); move != nil {
		t.Fatalf("same-column drop resolved to %+v", move)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)

	if err := c.Session().SetCredentials("not.a.token", domain.User{ID: "ghost"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	_, err := c.Profile(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected a 401 APIError, got %v", err)
	}
	if c.Session().Token() != "" || c.Session().User() != nil {
		t.Fatal("session not cleared after 401")
	}
}

func TestConnectivityErrorKeepsSession(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)

	if _, err := c.Register(context.Background(), RegisterParams{
		Email: "ada@example.com", Password: "s3cret!", FirstName: "Ada", LastName: "Lovelace",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token := c.Session().Token()

	srv.Close()

	_, err := c.Restore(context.Background())
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
	if c.Session().Token() != token {
		t.Fatal("connectivity failure must not clear the session")
	}
}

func TestConflictCarriesServerMessage(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	params := RegisterParams{Email: "ada@example.com", Password: "s3cret!", FirstName: "Ada", LastName: "Lovelace"}
	if _, err := c.Register(ctx, params); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := c.Register(ctx, params)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
	if apiErr.Message == "" {
		t.Fatal("409 must carry a message")
	}
}

func TestLogoutClearsSessionEvenWhenOffline(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)

	if _, err := c.Register(context.Background(), RegisterParams{
		Email: "ada@example.com", Password: "s3cret!", FirstName: "Ada", LastName: "Lovelace",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	srv.Close()

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c.Session().Token() != "" {
		t.Fatal("logout did not clear the session")
	}
}

func TestProjectDetailFailsAsAUnit(t *testing.T) {
	srv := newBackend(t)
	owner := newTestClient(t, srv.URL)
	outsider := newTestClient(t, srv.URL)
	ctx := context.Background()

	if _, err := owner.Register(ctx, RegisterParams{
		Email: "owner@example.com", Password: "s3cret!", FirstName: "Own", LastName: "Er",
	}); err != nil {
		t.Fatalf("register owner: %v", err)
	}
	if _, err := outsider.Register(ctx, RegisterParams{
		Email: "out@example.com", Password: "s3cret!", FirstName: "Out", LastName: "Sider",
	}); err != nil {
		t.Fatalf("register outsider: %v", err)
	}

	p, err := owner.CreateProject(ctx, "Private Project", "Not for outsiders", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := owner.CreateTask(ctx, TaskParams{
		Title: "Secret task", ProjectID: p.ID, Status: "TODO", Priority: "LOW",
	}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	detail, err := owner.ProjectDetail(ctx, p.ID)
	if err != nil {
		t.Fatalf("project detail: %v", err)
	}
	if detail.Project.ID != p.ID || len(detail.Tasks) != 1 || len(detail.Members) != 1 {
		t.Fatalf("incomplete detail: %+v", detail)
	}

	if _, err := outsider.ProjectDetail(ctx, p.ID); !IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestSessionFileHoldsExactlyTwoKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	session, err := OpenSession(path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	user := domain.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
	if err := session.SetCredentials("token-123", user); err != nil {
		t.Fatalf("set credentials: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read session file: %v", err)
	}
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode session file: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("expected exactly two keys, got %v", raw)
	}
	if _, ok := raw["access_token"]; !ok {
		t.Fatal("access_token key missing")
	}
	if _, ok := raw["user_data"]; !ok {
		t.Fatal("user_data key missing")
	}

	// A fresh open restores both values.
	reopened, err := OpenSession(path)
	if err != nil {
		t.Fatalf("reopen session: %v", err)
	}
	if reopened.Token() != "token-123" {
		t.Fatalf("token not restored: %q", reopened.Token())
	}
	if got := reopened.User(); got == nil || got.Email != "ada@example.com" {
		t.Fatalf("user not restored: %+v", got)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	data, _ = os.ReadFile(path)
	raw = nil
	if err := sonic.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode cleared file: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("cleared session still holds keys: %v", raw)
	}
}

func TestSessionNormalizesLegacyUserRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	legacy := `{"access_token":"token-123","user_data":{"userId":"u1","userEmail":"ada@example.com","userName":"Ada Lovelace"}}`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	session, err := OpenSession(path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if session.Token() != "token-123" {
		t.Fatalf("token not restored: %q", session.Token())
	}
	user := session.User()
	if user == nil {
		t.Fatal("user not restored")
	}
	if user.ID != "u1" || user.Email != "ada@example.com" {
		t.Fatalf("identifiers not normalized: %+v", user)
	}
	if user.FirstName != "Ada" || user.LastName != "Lovelace" {
		t.Fatalf("composed name not split: %+v", user)
	}
}

func TestCorruptSessionFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	session, err := OpenSession(path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if session.Token() != "" || session.User() != nil {
		t.Fatal("corrupt session should load as empty")
	}
}

func TestMirroredListOperations(t *testing.T) {
	list := NewTaskList()
	list.Replace([]domain.Task{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second"},
	})

	list.Append(domain.Task{ID: "c", Title: "third"})
	if list.Len() != 3 {
		t.Fatalf("len after append: %d", list.Len())
	}

	if !list.ReplaceByID(domain.Task{ID: "b", Title: "second, edited"}) {
		t.Fatal("replace-by-id missed")
	}
	if got, _ := list.Find("b"); got.Title != "second, edited" {
		t.Fatalf("replace-by-id did not stick: %+v", got)
	}
	if list.ReplaceByID(domain.Task{ID: "zz"}) {
		t.Fatal("replace-by-id matched a missing id")
	}

	if !list.Remove("a") {
		t.Fatal("remove missed")
	}
	items := list.Items()
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "c" {
		t.Fatalf("unexpected order after remove: %+v", items)
	}

	// Refetch replaces wholesale.
	list.Replace(nil)
	if list.Len() != 0 {
		t.Fatal("replace did not swap the collection")
	}
}
