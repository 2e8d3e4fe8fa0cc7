package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/config"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/middleware"
	"github.com/LavaJover/storefront-wallet-service/internal/domain"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/metrics"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/postgres/testdb"
	"github.com/LavaJover/storefront-wallet-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type busyReconciler struct{}

func (busyReconciler) PollOnce(ctx context.Context) (*usecase.ReconcileReport, error) {
	return nil, domain.ErrReconcileInProgress
}

type server struct {
	router 	*gin.Engine
	auth 	*middleware.Authenticator
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t)
	walletRepo := repository.NewDefaultWalletRepository(db)
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	registry := prometheus.NewRegistry()
	walletMetrics := metrics.NewWalletMetrics(registry)

	allocator, err := usecase.NewReferenceAllocator(transactionRepo, "NAPTIEN", 6)
	require.NoError(t, err)

	banks := usecase.NewDefaultBankProfileUsecase(repository.NewDefaultBankProfileRepository(db), "mb")
	require.NoError(t, banks.SeedBankProfiles(context.Background(), []config.BankConfig{
		{Code: "mb", Name: "MB Bank", Bin: "970422", AccountNo: "0123456789", AccountName: "STOREFRONT"},
	}))

	deposits := usecase.NewDefaultDepositUsecase(walletRepo, transactionRepo, banks, allocator, "VND", walletMetrics)
	settlement := usecase.NewDefaultSettlementUsecase(transactionRepo, repository.NewDefaultSettlementLogRepository(db), allocator, nil, walletMetrics, 0)
	orders := usecase.NewDefaultOrderUsecase(repository.NewDefaultOrderRepository(db), nil, walletMetrics)
	admin := usecase.NewDefaultAdminUsecase(transactionRepo, walletRepo)

	auth := middleware.NewAuthenticator(testSecret)
	router := NewRouter(RouterDeps{
		Wallet: NewWalletHandler(deposits),
		Payment: NewPaymentHandler(settlement, banks),
		Order: NewOrderHandler(orders),
		Admin: NewAdminHandler(admin, settlement, busyReconciler{}),
		Auth: auth,
		Gatherer: registry,
	})
	return &server{router: router, auth: auth}
}

func (s *server) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := s.auth.Issue(userID, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestTopUpAndWebhookFlow(t *testing.T) {
	s := newServer(t)
	userToken := s.token(t, "user-1", "user")

	w := s.do(t, http.MethodPost, "/wallet/topup", userToken, map[string]interface{}{"amount": 100000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	topUp := decode[response.TopUpResponse](t, w)
	code := topUp.Transaction.ReferenceCode
	assert.Equal(t, "pending", topUp.Transaction.Status)
	require.NotNil(t, topUp.QR)
	assert.Equal(t, code, topUp.QR.Memo)

	// нативный формат SePay
	webhook := map[string]interface{}{
		"id": 92704,
		"gateway": "MBBank",
		"transactionDate": "2024-05-01 14:02:37",
		"accountNumber": "0123456789",
		"transferType": "in",
		"transferAmount": 100000,
		"description": "MBVCB.1234." + code + ".CT tu 0123",
	}
	w = s.do(t, http.MethodPost, "/payments/sepay/webhook", "", webhook)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[response.WebhookResponse](t, w)
	assert.True(t, result.Success)
	assert.Equal(t, "settled", result.Outcome)
	assert.Equal(t, int64(100000), result.Balance)
	assert.Equal(t, code, result.ReferenceCode)

	w = s.do(t, http.MethodPost, "/payments/sepay/webhook", "", webhook)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already_settled", decode[response.WebhookResponse](t, w).Outcome)

	w = s.do(t, http.MethodGet, "/wallet", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[response.WalletInfoResponse](t, w)
	assert.Equal(t, int64(100000), info.Wallet.Balance)

	w = s.do(t, http.MethodGet, "/wallet/transactions/status/"+code, userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[response.TransactionStatusResponse](t, w)
	assert.Equal(t, "success", status.Transaction.Status)
	assert.Equal(t, "92704", status.Transaction.GatewayTxnID)
}

func TestWebhook_BadRequests(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/payments/sepay/webhook", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/payments/sepay/webhook", "", map[string]interface{}{"amount": 1000, "content": "NAPTIEN-AAAAAA"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/payments/sepay/webhook", "", map[string]interface{}{"transaction_id": "x1", "amount": "10.5"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// well formed but unknown payment is still acknowledged
	w = s.do(t, http.MethodPost, "/payments/sepay/webhook", "", map[string]interface{}{"transaction_id": "x2", "amount": 1000, "content": "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unmatched", decode[response.WebhookResponse](t, w).Outcome)
}

func TestAuthAndRoles(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/wallet", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/wallet", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/admin/transactions", s.token(t, "user-1", "user"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/admin/transactions", s.token(t, "admin-1", middleware.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTopUp_Validation(t *testing.T) {
	s := newServer(t)
	userToken := s.token(t, "user-1", "user")

	w := s.do(t, http.MethodPost, "/wallet/topup", userToken, map[string]interface{}{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/wallet/topup", userToken, map[string]interface{}{"amount": 1000, "bank": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/wallet/transactions/status/NAPTIEN-ZZZZZZ", userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminOverrideAndOrders(t *testing.T) {
	s := newServer(t)
	userToken := s.token(t, "user-1", "user")
	adminToken := s.token(t, "admin-1", middleware.RoleAdmin)

	w := s.do(t, http.MethodPost, "/wallet/topup", userToken, map[string]interface{}{"amount": 30000})
	require.Equal(t, http.StatusCreated, w.Code)
	topUp := decode[response.TopUpResponse](t, w)

	w = s.do(t, http.MethodPatch, "/admin/transactions/"+topUp.Transaction.ID, adminToken, map[string]string{"status": "success"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPatch, "/admin/transactions/"+topUp.Transaction.ID, adminToken, map[string]string{"status": "success"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/orders", userToken, map[string]interface{}{"total_amount": 50000})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[response.OrderResponse](t, w)

	w = s.do(t, http.MethodPost, "/orders/"+order.ID+"/pay", userToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/orders/"+order.ID+"/pay", s.token(t, "user-2", "user"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/orders", userToken, map[string]interface{}{"total_amount": 20000})
	require.Equal(t, http.StatusCreated, w.Code)
	small := decode[response.OrderResponse](t, w)

	w = s.do(t, http.MethodPost, "/orders/"+small.ID+"/pay", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(10000), decode[response.OrderStatusResponse](t, w).Balance)

	w = s.do(t, http.MethodPut, "/admin/orders/"+small.ID+"/status", adminToken, map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(30000), decode[response.OrderStatusResponse](t, w).Balance)

	// a paid-then-cancelled order cannot be paid again by its owner
	w = s.do(t, http.MethodPost, "/orders/"+small.ID+"/pay", userToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/orders/abc/pay", userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPatch, "/admin/transactions/abc", adminToken, map[string]string{"status": "success"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodDelete, "/admin/transactions/abc", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/admin/wallets/user-1/audit", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[response.WalletAuditResponse](t, w).Consistent)
}

func TestAdminReconcileBusy(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/admin/reconcile", s.token(t, "admin-1", middleware.RoleAdmin), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/payments/banks", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "970422")

	w = s.do(t, http.MethodGet, "/payments/qr?bank=mb&amount=20000&content=NAPTIEN-ABCDEF", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "img.vietqr.io")

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
