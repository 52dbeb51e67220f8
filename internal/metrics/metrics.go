package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	ListingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
		[]string{LabelRarity},
	)

	ListingsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsSold,
			Help: HelpTextListingsSold,
		},
		[]string{LabelRarity},
	)

	ListingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCancelled,
			Help: HelpTextListingsCancelled,
		},
	)

	AuctionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuctionsCreated,
			Help: HelpTextAuctionsCreated,
		},
		[]string{LabelKind},
	)

	AuctionsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuctionsSold,
			Help: HelpTextAuctionsSold,
		},
		[]string{LabelKind},
	)

	AuctionsExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuctionsExpired,
			Help: HelpTextAuctionsExpired,
		},
		[]string{LabelKind},
	)

	BidsPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBidsPlaced,
			Help: HelpTextBidsPlaced,
		},
	)

	CoinsEscrowed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEscrowed,
			Help: HelpTextCoinsEscrowed,
		},
	)

	CoinsCaptured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsCaptured,
			Help: HelpTextCoinsCaptured,
		},
	)
)
