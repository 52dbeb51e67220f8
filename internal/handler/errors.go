package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidListingID  = "Invalid listing ID"
	ErrMsgInvalidAuctionID  = "Invalid auction ID"
	ErrMsgInvalidKindFilter = "Invalid kind filter. Valid options: normal, special"
)

// Success messages for API responses
const (
	MsgListingCancelledSuccess = "Listing cancelled"
	MsgPurchaseSuccess         = "Item purchased"
	MsgBidAcceptedSuccess      = "Bid accepted"
	MsgAuctionSettledSuccess   = "Auction settled"
)
