package domain

// UserProfile represents a seller profile tracked by the bot.
// Profiles are keyed by Telegram user ID in the backing store.
type UserProfile struct {
	Marketplace  string `json:"marketplace"`
	Tariff       string `json:"tariff"`
	RequestsLeft int    `json:"requests_left"`
}

// Marketplace constants
const (
	MarketplaceWildberries = "wildberries"
	MarketplaceOzon        = "ozon"
)

// Tariff constants
const (
	TariffFree    = "free"
	TariffPremium = "premium"
)

// DefaultFreeRequests is the number of generations a new profile starts with
const DefaultFreeRequests = 3

// NewUserProfile returns a fresh free-tariff profile for the chosen marketplace
func NewUserProfile(marketplace string, freeRequests int) UserProfile {
	return UserProfile{
		Marketplace:  marketplace,
		Tariff:       TariffFree,
		RequestsLeft: freeRequests,
	}
}

// IsValidMarketplace reports whether the value is a supported marketplace
func IsValidMarketplace(marketplace string) bool {
	return marketplace == MarketplaceWildberries || marketplace == MarketplaceOzon
}

// HasRequests reports whether the profile still has generation quota
func (p UserProfile) HasRequests() bool {
	return p.RequestsLeft > 0
}
