package messages

const (
	BadStatusCodeMsg   = "API returned status code %d on URL %s"
	FailedToParseMsg   = "failed to parse API response"
	RequestFailedMsg   = "API request failed on URL %s"
	PlayerNotFoundMsg  = "player '%s' not found"
	PrivateProfileMsg  = "profile '%s' is private"
	RateLimitedMsg     = "rate limited, retry after %s"
	RanksRefreshFooter = "Ranks refresh every %d minutes"
)
