package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Wallet 		*WalletHandler
	Payment 	*PaymentHandler
	Order 		*OrderHandler
	Admin 		*AdminHandler
	Auth 		*middleware.Authenticator
	Gatherer 	prometheus.Gatherer
	Logger 		*slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.Logger != nil {
		r.Use(middleware.RequestLogger(deps.Logger))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	payments := r.Group("/payments")
	payments.POST("/sepay/webhook", deps.Payment.SePayWebhook)
	payments.GET("/qr", deps.Payment.GetQR)
	payments.GET("/banks", deps.Payment.ListBanks)

	user := r.Group("/", deps.Auth.RequireUser())
	user.GET("/wallet", deps.Wallet.GetWallet)
	user.POST("/wallet/topup", deps.Wallet.TopUp)
	user.GET("/wallet/transactions", deps.Wallet.ListTransactions)
	user.GET("/wallet/transactions/status/:identifier", deps.Wallet.GetTransactionStatus)
	user.POST("/orders", deps.Order.CreateOrder)
	user.GET("/orders/my", deps.Order.ListMyOrders)
	user.POST("/orders/:id/pay", deps.Order.PayOrder)

	admin := r.Group("/admin", deps.Auth.RequireUser(), deps.Auth.RequireAdmin())
	admin.GET("/transactions", deps.Admin.ListTransactions)
	admin.PATCH("/transactions/:id", deps.Admin.OverrideTransaction)
	admin.DELETE("/transactions/:id", deps.Admin.DeleteTransaction)
	admin.POST("/transactions/:id/restore", deps.Admin.RestoreTransaction)
	admin.GET("/settlement-logs", deps.Admin.ListSettlementLogs)
	admin.POST("/reconcile", deps.Admin.Reconcile)
	admin.PUT("/orders/:id/status", deps.Order.UpdateOrderStatus)
	admin.GET("/wallets/:userId/audit", deps.Admin.AuditWallet)

	return r
}
