package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameListingsCreated   = "listings_created_total"
	MetricNameListingsSold      = "listings_sold_total"
	MetricNameListingsCancelled = "listings_cancelled_total"
	MetricNameAuctionsCreated   = "auctions_created_total"
	MetricNameAuctionsSold      = "auctions_sold_total"
	MetricNameAuctionsExpired   = "auctions_expired_total"
	MetricNameBidsPlaced        = "bids_placed_total"
	MetricNameCoinsEscrowed     = "coins_escrowed_total"
	MetricNameCoinsCaptured     = "coins_captured_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextListingsCreated   = "Total number of fixed-price listings created"
	HelpTextListingsSold      = "Total number of fixed-price listings sold"
	HelpTextListingsCancelled = "Total number of fixed-price listings cancelled"
	HelpTextAuctionsCreated   = "Total number of auctions created"
	HelpTextAuctionsSold      = "Total number of auctions settled with a winner"
	HelpTextAuctionsExpired   = "Total number of auctions expired without bids"
	HelpTextBidsPlaced        = "Total number of accepted bids"
	HelpTextCoinsEscrowed     = "Total coins moved into escrow holds"
	HelpTextCoinsCaptured     = "Total coins captured from escrow at settlement"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelRarity = "rarity"
	LabelKind   = "kind"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
