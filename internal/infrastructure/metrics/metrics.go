package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WalletMetrics содержит все метрики кошелька и сверки платежей
type WalletMetrics struct {
	// Депозиты
	DepositsRequestedTotal prometheus.CounterVec
	DepositsRequestedAmountTotal prometheus.CounterVec
	DepositsSettledAmountTotal prometheus.CounterVec

	// Результаты обработки уведомлений шлюза
	SettlementOutcomesTotal prometheus.CounterVec
	SettlementDuration prometheus.HistogramVec

	// Сверка
	ReconcileRunsTotal prometheus.CounterVec
	ReconcileDuration prometheus.Histogram
	ReconcilePendingGauge prometheus.Gauge

	// Заказы
	OrderWalletEffectsTotal prometheus.CounterVec
	OrderWalletAmountTotal prometheus.CounterVec

	// Ошибки
	WalletErrorsTotal prometheus.CounterVec
}

// NewWalletMetrics registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func NewWalletMetrics(reg prometheus.Registerer) *WalletMetrics {
	factory := promauto.With(reg)

	return &WalletMetrics{
		DepositsRequestedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_deposits_requested_total",
				Help: "Количество созданных заявок на пополнение",
			},
			[]string{"bank"},
		),

		DepositsRequestedAmountTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_deposits_requested_amount_total",
				Help: "Сумма созданных заявок на пополнение",
			},
			[]string{"bank", "currency"},
		),

		DepositsSettledAmountTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_deposits_settled_amount_total",
				Help: "Сумма зачисленных пополнений",
			},
			[]string{"source", "currency"},
		),

		SettlementOutcomesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_settlement_outcomes_total",
				Help: "Результаты обработки платежей шлюза",
			},
			[]string{"source", "outcome"},
		),

		SettlementDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "wallet_settlement_duration_seconds",
				Help: "Время обработки одного платежа шлюза",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms, 10ms, 20ms...
			},
			[]string{"source"},
		),

		ReconcileRunsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_reconcile_runs_total",
				Help: "Количество запусков сверки",
			},
			[]string{"result"},
		),

		ReconcileDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "wallet_reconcile_duration_seconds",
				Help: "Длительность цикла сверки",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),

		ReconcilePendingGauge: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wallet_reconcile_pending_transactions",
				Help: "Ожидающие пополнения, проверенные в последнем цикле сверки",
			},
		),

		OrderWalletEffectsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_order_effects_total",
				Help: "Списания и возвраты по заказам",
			},
			[]string{"effect"},
		),

		OrderWalletAmountTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_order_amount_total",
				Help: "Сумма списаний и возвратов по заказам",
			},
			[]string{"effect"},
		),

		WalletErrorsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_errors_total",
				Help: "Ошибки сервиса кошельков",
			},
			[]string{"operation", "error_type"},
		),
	}
}

func (m *WalletMetrics) RecordDepositRequested(bank, currency string, amount int64) {
	m.DepositsRequestedTotal.WithLabelValues(bank).Inc()
	m.DepositsRequestedAmountTotal.WithLabelValues(bank, currency).Add(float64(amount))
}

func (m *WalletMetrics) RecordSettlement(source, outcome string, durationSeconds float64) {
	m.SettlementOutcomesTotal.WithLabelValues(source, outcome).Inc()
	m.SettlementDuration.WithLabelValues(source).Observe(durationSeconds)
}

func (m *WalletMetrics) RecordDepositSettled(source, currency string, amount int64) {
	m.DepositsSettledAmountTotal.WithLabelValues(source, currency).Add(float64(amount))
}

func (m *WalletMetrics) RecordReconcileRun(result string, durationSeconds float64, pending int) {
	m.ReconcileRunsTotal.WithLabelValues(result).Inc()
	m.ReconcileDuration.Observe(durationSeconds)
	m.ReconcilePendingGauge.Set(float64(pending))
}

func (m *WalletMetrics) RecordOrderEffect(effect string, amount int64) {
	m.OrderWalletEffectsTotal.WithLabelValues(effect).Inc()
	m.OrderWalletAmountTotal.WithLabelValues(effect).Add(float64(amount))
}

func (m *WalletMetrics) RecordError(operation, errorType string) {
	m.WalletErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
