package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// SalesMetrics tracks sales, bills and stock levels on a private registry.
// There is no listener; the registry is exported to a textfile collector.
type SalesMetrics struct {
	registry      *prometheus.Registry
	UnitsSold     *prometheus.CounterVec
	Revenue       *prometheus.CounterVec
	SalesRejected *prometheus.CounterVec
	BillsIssued   *prometheus.CounterVec
	BillTotal     *prometheus.HistogramVec
	Stock         *prometheus.GaugeVec
}

func NewSalesMetrics(service string) *SalesMetrics {
	unitsSold := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventshop",
		Subsystem: service,
		Name:      "units_sold_total",
		Help:      "Units sold per catalog item.",
	}, []string{"item"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventshop",
		Subsystem: service,
		Name:      "revenue_rm_total",
		Help:      "Revenue in RM per catalog item, at the price of each sale.",
	}, []string{"item"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventshop",
		Subsystem: service,
		Name:      "sales_rejected_total",
		Help:      "Order lines rejected by the domain.",
	}, []string{"reason"})
	bills := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventshop",
		Subsystem: service,
		Name:      "bills_issued_total",
		Help:      "Bills issued per order kind.",
	}, []string{"kind"})
	billTotal := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eventshop",
		Subsystem: service,
		Name:      "bill_total_rm",
		Help:      "Grand total of issued bills in RM.",
		Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"kind"})
	stock := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "eventshop",
		Subsystem: service,
		Name:      "stock_quantity",
		Help:      "Units currently in stock per catalog item.",
	}, []string{"item"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(unitsSold, revenue, rejected, bills, billTotal, stock)

	return &SalesMetrics{
		registry:      reg,
		UnitsSold:     unitsSold,
		Revenue:       revenue,
		SalesRejected: rejected,
		BillsIssued:   bills,
		BillTotal:     billTotal,
		Stock:         stock,
	}
}

func (m *SalesMetrics) Registry() *prometheus.Registry { return m.registry }

func (m *SalesMetrics) SaleRecorded(item string, qty int, amount decimal.Decimal) {
	m.UnitsSold.WithLabelValues(item).Add(float64(qty))
	m.Revenue.WithLabelValues(item).Add(amount.InexactFloat64())
}

func (m *SalesMetrics) SaleRejected(reason string) {
	m.SalesRejected.WithLabelValues(reason).Inc()
}

func (m *SalesMetrics) BillIssued(kind string, total decimal.Decimal) {
	m.BillsIssued.WithLabelValues(kind).Inc()
	m.BillTotal.WithLabelValues(kind).Observe(total.InexactFloat64())
}

func (m *SalesMetrics) StockLevel(item string, stock int) {
	m.Stock.WithLabelValues(item).Set(float64(stock))
}

// WriteTextfile dumps the registry in the Prometheus text format, for the
// node exporter textfile collector.
func (m *SalesMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
