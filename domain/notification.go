package domain

// Membership tiers a notification can target.
const (
	TierAll      = "all"
	TierBlanco   = "blanco"
	TierReposado = "reposado"
	TierAnejo    = "añejo"
	TierSecret   = "secret"
)

// Notification categories.
const (
	NotificationTypeGeneral    = "general"
	NotificationTypePromotions = "promotions"
	NotificationTypeEvents     = "events"
	NotificationTypeMembership = "membership"
)

// Notification is a push message addressed to a membership tier.
type Notification struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	TargetTier   string `json:"targetTier"`
	ScheduledFor string `json:"scheduledFor,omitempty"`
	Type         string `json:"type"`
	Status       string `json:"status,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}
