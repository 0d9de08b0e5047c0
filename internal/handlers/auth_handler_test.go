package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
	"expenshare/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	registerFn     func(name, pin string) (*models.User, error)
	checkNameFn    func(name string) (bool, error)
	attemptLoginFn func(name, pin string) (*models.User, error)
	getUserByIDFn  func(id string) (*models.User, error)
	listUsersFn    func() ([]models.User, error)
	ensureAdminFn  func(name, pin string) (*models.User, error)
	deleteUserFn   func(adminID, targetID string) error
}

func (m *mockUserService) Register(name, pin string) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(name, pin)
	}
	return &models.User{}, nil
}

func (m *mockUserService) CheckName(name string) (bool, error) {
	if m.checkNameFn != nil {
		return m.checkNameFn(name)
	}
	return false, nil
}

func (m *mockUserService) AttemptLogin(name, pin string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(name, pin)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListUsers() ([]models.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn()
	}
	return nil, nil
}

func (m *mockUserService) EnsureAdmin(name, pin string) (*models.User, error) {
	if m.ensureAdminFn != nil {
		return m.ensureAdminFn(name, pin)
	}
	return &models.User{}, nil
}

func (m *mockUserService) DeleteUser(adminID, targetID string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(adminID, targetID)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/check", handler.Check)
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/profile", injectUserID("user-1"), handler.GetProfile)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func testUser(id, name string) *models.User {
	user := &models.User{Name: name}
	user.ID = id
	return user
}

// --- tests ---

func TestAuthHandler_Check(t *testing.T) {
	t.Run("reports existing name", func(t *testing.T) {
		userSvc := &mockUserService{
			checkNameFn: func(name string) (bool, error) { return name == "alice", nil },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/check", `{"name":"alice"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["exists"] != true {
			t.Errorf("expected exists=true, got %v", result["exists"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, http.MethodPost, "/auth/check", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 with token", func(t *testing.T) {
		userSvc := &mockUserService{
			registerFn: func(name, pin string) (*models.User, error) {
				return testUser("user-1", name), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/register", `{"name":"alice","pin":"1234"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == "" || result["token"] == nil {
			t.Error("expected a token in the response")
		}
		user, ok := result["user"].(map[string]interface{})
		if !ok || user["name"] != "alice" {
			t.Errorf("unexpected user payload: %v", result["user"])
		}
	})

	t.Run("rejects malformed pin at binding", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

		rec := doRequest(r, http.MethodPost, "/auth/register", `{"name":"alice","pin":"12"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("propagates duplicate name", func(t *testing.T) {
		userSvc := &mockUserService{
			registerFn: func(name, pin string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateName
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/register", `{"name":"alice","pin":"1234"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_NAME")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(name, pin string) (*models.User, error) {
				return testUser("user-1", name), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"name":"alice","pin":"1234"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["token"] == nil {
			t.Error("expected a token in the response")
		}
	})

	t.Run("returns 401 on bad credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(name, pin string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"name":"alice","pin":"9999"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	userSvc := &mockUserService{
		getUserByIDFn: func(id string) (*models.User, error) {
			return testUser(id, "alice"), nil
		},
	}
	r := setupAuthRouter(NewAuthHandler(userSvc))

	rec := doRequest(r, http.MethodGet, "/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["id"] != "user-1" || result["name"] != "alice" {
		t.Errorf("unexpected profile: %v", result)
	}
}
