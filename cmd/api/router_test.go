package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskpro-backend/internal/apperror"
	authdomain "taskpro-backend/internal/auth/domain"
	authRepo "taskpro-backend/internal/auth/repository"
	"taskpro-backend/internal/auth/token"
	authUsecase "taskpro-backend/internal/auth/usecase"
	helpDelivery "taskpro-backend/internal/help/delivery"
	helpUsecase "taskpro-backend/internal/help/usecase"
	kanbanDelivery "taskpro-backend/internal/kanban/delivery"
	kanbandomain "taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/dto"
	kanbanRepo "taskpro-backend/internal/kanban/repository"
	kanbanUsecase "taskpro-backend/internal/kanban/usecase"
	"taskpro-backend/pkg/client"
	"taskpro-backend/pkg/config"
	"taskpro-backend/pkg/database"
	"taskpro-backend/pkg/mailer"
	"taskpro-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	url  string
	mail *recordingMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	models := append([]any{&authdomain.User{}, &authdomain.DeviceToken{}}, kanbandomain.Models()...)
	require.NoError(t, db.AutoMigrate(models...))

	cfg := &config.Config{
		Env:              config.EnvProduction,
		ClientURLs:       []string{"https://app.taskpro.test"},
		MaxUploadSize:    1 << 20,
		BrevoSenderEmail: "support@taskpro.test",
	}
	mail := &recordingMailer{}

	authUc := authUsecase.NewAuthUsecase(authRepo.NewUserRepository(db), authRepo.NewDeviceTokenRepository(db), authUsecase.Options{
		Tokens:        token.NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour),
		Mailer:        mail,
		Uploader:      storage.Disabled{},
		ClientBaseURL: cfg.ClientBaseURL(),
	})

	boards := kanbanRepo.NewBoardRepository(db)
	columns := kanbanRepo.NewColumnRepository(db)
	cards := kanbanRepo.NewCardRepository(db)
	ownership := kanbanUsecase.NewOwnership(boards, columns, cards)
	kanbanHandler := kanbanDelivery.NewKanbanHandler(
		kanbanUsecase.NewBoardUsecase(boards, ownership, storage.Disabled{}, false),
		kanbanUsecase.NewColumnUsecase(columns, ownership),
		kanbanUsecase.NewCardUsecase(cards, ownership, time.Now),
		cfg.MaxUploadSize,
	)
	helpHandler := helpDelivery.NewHelpHandler(helpUsecase.NewHelpUsecase(mail, cfg.BrevoSenderEmail))

	srv := httptest.NewServer(NewHandler(authUc, kanbanHandler, helpHandler, cfg).Router())
	t.Cleanup(srv.Close)
	return &testServer{url: srv.URL, mail: mail}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, s.url+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = s.do(t, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resource not found", body["message"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/boards"},
		{http.MethodGet, "/api/auth/profile"},
		{http.MethodPut, "/api/columns/c1"},
		{http.MethodPatch, "/api/cards/c1/move"},
	} {
		status, body := s.do(t, tc.method, tc.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, status, tc.path)
		assert.Equal(t, "Not authorized", body["message"], tc.path)
		assert.NotContains(t, body, "stack")
	}

	status, _ := s.do(t, http.MethodGet, "/api/boards", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRawTokenHeader(t *testing.T) {
	s := newTestServer(t)
	_, reg := s.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "Secret123",
	}, "")

	req, err := http.NewRequest(http.MethodGet, s.url+"/api/auth/profile", nil)
	require.NoError(t, err)
	req.Header.Set("x-auth-token", reg["token"].(string))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshRotation(t *testing.T) {
	s := newTestServer(t)

	status, reg := s.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "Secret123",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	original := reg["refreshToken"].(string)

	status, rotated := s.do(t, http.MethodPost, "/api/auth/refresh-token", map[string]string{"refreshToken": original}, "")
	require.Equal(t, http.StatusOK, status)
	assert.NotEqual(t, original, rotated["refreshToken"])

	status, _ = s.do(t, http.MethodPost, "/api/auth/refresh-token", map[string]string{"refreshToken": original}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// logout never fails, even with a spent token
	status, body := s.do(t, http.MethodPost, "/api/auth/logout", map[string]string{"refreshToken": original}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, authUsecase.MsgLoggedOut, body["message"])
}

func TestKanbanFlowThroughClient(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	ann := client.New(s.url + "/api")
	_, err := ann.Register(ctx, "Ann", "ann@example.com", "Secret123")
	require.NoError(t, err)

	x, err := ann.CreateBoard(ctx, dto.CreateBoardRequest{Title: "X", Icon: "icon-1", Background: "bg-1"})
	require.NoError(t, err)
	y, err := ann.CreateBoard(ctx, dto.CreateBoardRequest{Title: "Y", Icon: "icon-2", Background: "bg-2"})
	require.NoError(t, err)

	a, err := ann.CreateColumn(ctx, x.ID, "A")
	require.NoError(t, err)
	b, err := ann.CreateColumn(ctx, y.ID, "B")
	require.NoError(t, err)

	var created []*kanbandomain.Card
	for _, title := range []string{"one", "two", "three"} {
		card, err := ann.CreateCard(ctx, a.ID, dto.CreateCardRequest{Title: title, Description: "d", Priority: "Low"})
		require.NoError(t, err)
		created = append(created, card)
	}
	_, err = ann.CreateCard(ctx, b.ID, dto.CreateCardRequest{Title: "b0", Description: "d"})
	require.NoError(t, err)

	listed, err := ann.Cards(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.Less(t, listed[i-1].Order, listed[i].Order)
	}

	moved, err := ann.MoveCard(ctx, created[1].ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.ColumnID)
	assert.Equal(t, y.ID, moved.BoardID)
	assert.Equal(t, 1, moved.Order)

	remaining, err := ann.Cards(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, created[0].Order, remaining[0].Order)
	assert.Equal(t, created[2].Order, remaining[1].Order)
	assert.Len(t, ann.Cache().Cards(b.ID), 2)

	found, err := ann.SearchCards(ctx, y.ID, "twoo", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created[1].ID, found[0].ID)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err = ann.CreateCard(ctx, a.ID, dto.CreateCardRequest{Title: "late", Description: "d", Deadline: yesterday})
	assert.ErrorIs(t, err, kanbanUsecase.ErrPastDeadline)
	today := time.Now().Format("2006-01-02")
	_, err = ann.CreateCard(ctx, a.ID, dto.CreateCardRequest{Title: "today", Description: "d", Deadline: today})
	require.NoError(t, err)

	bob := client.New(s.url + "/api")
	_, err = bob.Register(ctx, "Bob", "bob@example.com", "Secret123")
	require.NoError(t, err)
	assert.ErrorIs(t, bob.DeleteBoard(ctx, x.ID), kanbanUsecase.ErrForbidden)
	_, err = bob.MoveCard(ctx, created[0].ID, b.ID)
	assert.ErrorIs(t, err, kanbanUsecase.ErrForbidden)
	_, err = bob.Cards(ctx, "missing")
	assert.ErrorIs(t, err, kanbanUsecase.ErrColumnNotFound)

	require.NoError(t, ann.DeleteColumn(ctx, a.ID))
	assert.Empty(t, ann.Cache().Cards(a.ID))

	require.NoError(t, ann.Logout(ctx))
	_, err = ann.Boards(ctx)
	assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
}

func TestForgotPasswordAndHelp(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	c := client.New(s.url + "/api")
	_, err := c.Register(ctx, "Ann", "ann@example.com", "Secret123")
	require.NoError(t, err)

	msg, err := c.ForgotPassword(ctx, "ann@example.com")
	require.NoError(t, err)
	unknown, err := c.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, msg, unknown)
	require.Len(t, s.mail.sent, 1)
	assert.Contains(t, s.mail.sent[0].Text, "https://app.taskpro.test/reset-password?token=")

	status, body := s.do(t, http.MethodPost, "/api/help", map[string]string{"email": "ann@example.com", "comment": "help"}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Your request has been sent", body["message"])
	require.Len(t, s.mail.sent, 2)
	assert.Equal(t, "support@taskpro.test", s.mail.sent[1].ToEmail)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	preflight := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodOptions, s.url+"/api/boards", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	resp := preflight("https://app.taskpro.test")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.taskpro.test", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")

	resp = preflight("https://evil.test")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyAllowListEchoesOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(development bool, err error) (int, map[string]any) {
		r := gin.New()
		r.Use(ErrorMiddleware(development))
		r.GET("/", func(c *gin.Context) { _ = c.Error(err) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}

	status, body := serve(false, errors.New("db exploded"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, body, "stack")

	status, body = serve(true, kanbanUsecase.ErrForbidden.Wrap(errors.New("owner mismatch")))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, kanbanUsecase.ErrForbidden.Message, body["message"])
	assert.Contains(t, body["stack"], "owner mismatch")
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware(false))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}
