package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/billing"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/crm"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/inventory"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/kanban"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/modules/reports"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type server struct {
	app  *fiber.App
	db   *gorm.DB
	auth *services.AuthService
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewDB(t,
		&inventory.Product{}, &crm.Customer{}, &crm.Interaction{}, &billing.Invoice{}, &kanban.Task{})
	cfg := testutil.Config()

	numbers, err := billing.NewNumberer(cfg.SnowflakeNode)
	require.NoError(t, err)
	notifier := notify.NewLogNotifier(nil)

	auth := services.NewAuthService(db, cfg)
	products := inventory.NewProductService(db)
	customers := crm.NewCustomerService(db)
	invoices := billing.NewInvoiceService(db, numbers, notifier, customers, products)
	customers.AddDeleteGuard(invoices.GuardCustomerDelete)

	app := fiber.New()
	Setup(app, cfg, db, Handlers{
		Auth:     handlers.NewAuthHandler(auth),
		Users:    handlers.NewUserHandler(services.NewUserService(db)),
		Business: handlers.NewBusinessHandler(services.NewBusinessService(db)),
		Health:   handlers.NewHealthHandler(db),
	}, []modules.Module{
		inventory.New(products),
		crm.New(customers),
		billing.New(invoices),
		kanban.New(kanban.NewTaskService(db, notifier)),
		reports.New(),
	})
	return &server{app: app, db: db, auth: auth}
}

func (s *server) token(t *testing.T, user *models.User) string {
	t.Helper()
	tok, err := s.auth.IssueAccessToken(user)
	require.NoError(t, err)
	return tok
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/api/products", "/api/customers", "/api/invoices", "/api/tasks", "/api/reports/summary", "/api/auth/me", "/api/users"} {
		status, body := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)

		var out dto.ErrorResponse
		decode(t, body, &out)
		assert.True(t, out.Error, path)
	}

	status, _ := s.do(t, http.MethodGet, "/api/products", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthIsPublic(t *testing.T) {
	s := newServer(t)
	status, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	var out dto.HealthResponse
	decode(t, body, &out)
	assert.Equal(t, "ok", out.DB)
}

func TestViewerIsReadOnly(t *testing.T) {
	s := newServer(t)
	viewer := s.token(t, testutil.CreateUser(t, s.db, "viewer", models.RoleViewer))

	status, body := s.do(t, http.MethodGet, "/api/products", viewer, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = s.do(t, http.MethodPost, "/api/products", viewer, map[string]interface{}{
		"name": "Widget", "sku": "W-1", "quantity": 1, "price": 2,
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodPost, "/api/tasks", viewer, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodGet, "/api/reports/summary", viewer, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodGet, "/api/users", viewer, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDeactivatedUserIsRejected(t *testing.T) {
	s := newServer(t)
	user := testutil.CreateUser(t, s.db, "gone", models.RoleStaff)
	token := s.token(t, user)
	require.NoError(t, s.db.Model(user).Update("is_active", false).Error)

	status, body := s.do(t, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "deactivated")
}

func TestRoleChangeTakesEffectImmediately(t *testing.T) {
	s := newServer(t)
	admin := s.token(t, testutil.CreateUser(t, s.db, "admin", models.RoleAdmin))
	user := testutil.CreateUser(t, s.db, "promoted", models.RoleViewer)
	token := s.token(t, user)

	status, _ := s.do(t, http.MethodGet, "/api/reports/summary", token, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodPut, "/api/users/"+user.ID.String()+"/roles", admin, map[string][]string{"roles": {"Manager"}})
	require.Equal(t, http.StatusOK, status)

	status, body := s.do(t, http.MethodGet, "/api/reports/summary", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"totalRevenue"`)
}

func TestRegisterThenMe(t *testing.T) {
	s := newServer(t)

	status, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "newbie", "email": "newbie@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var auth dto.AuthResponse
	decode(t, body, &auth)

	status, body = s.do(t, http.MethodGet, "/api/auth/me", auth.AccessToken, nil)
	assert.Equal(t, http.StatusOK, status)
	var me dto.UserResponse
	decode(t, body, &me)
	assert.Equal(t, "newbie", me.Username)
	assert.Equal(t, []string{models.RoleViewer}, me.Roles)

	status, _ = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "newbie", "email": "other@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestInvoiceOverHTTP(t *testing.T) {
	s := newServer(t)
	staff := s.token(t, testutil.CreateUser(t, s.db, "staff", models.RoleStaff))

	status, body := s.do(t, http.MethodPost, "/api/customers", staff, map[string]interface{}{
		"name": "Buyer", "contact": map[string]string{"email": "buyer@example.com"},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var customer crm.Customer
	decode(t, body, &customer)

	status, body = s.do(t, http.MethodPost, "/api/invoices", staff, map[string]interface{}{
		"customer":      customer.ID.String(),
		"invoiceNumber": "INV-HACKED",
		"amount":        1,
		"date":          "2030-01-01",
		"dueDate":       "2030-01-31",
		"taxRate":       10,
		"items": []map[string]interface{}{
			{"description": "Widget", "quantity": 2, "rate": 10},
			{"description": "Setup", "quantity": 1, "rate": 5},
		},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var inv billing.Invoice
	decode(t, body, &inv)
	assert.NotEqual(t, "INV-HACKED", inv.InvoiceNumber)
	assert.True(t, strings.HasPrefix(inv.InvoiceNumber, "INV-"))
	assert.Equal(t, 25.0, inv.Subtotal)
	assert.Equal(t, 2.5, inv.Tax)
	assert.Equal(t, 27.5, inv.Amount)

	status, _ = s.do(t, http.MethodPatch, "/api/invoices/"+inv.ID.String(), staff, map[string]string{"status": "Paid"})
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodPatch, "/api/invoices/"+inv.ID.String(), staff, map[string]string{"status": "Unpaid"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "cannot change invoice status")

	status, _ = s.do(t, http.MethodDelete, "/api/customers/"+customer.ID.String(), staff, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(t, http.MethodGet, "/api/invoices/not-a-uuid", staff, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	status, body := s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "go_goroutines")
}
