package domain

// Membership is the tier/status block attached to a member record.
type Membership struct {
	Tier      string `json:"tier"`
	Status    string `json:"status"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// PunchCard tracks the venue loyalty card of a member.
type PunchCard struct {
	Punches        int `json:"punches"`
	TotalPunches   int `json:"totalPunches"`
	RewardsClaimed int `json:"rewardsClaimed"`
}

// NotificationSettings are the member's per-category push preferences.
type NotificationSettings struct {
	Enabled    bool `json:"enabled"`
	Promotions bool `json:"promotions"`
	Events     bool `json:"events"`
	Membership bool `json:"membership"`
	General    bool `json:"general"`
}

// Member is a venue member managed through the users screen. The record is
// remotely owned; it is fetched, displayed and mutated through the API only.
type Member struct {
	ID                   string               `json:"id"`
	FirstName            string               `json:"firstName"`
	LastName             string               `json:"lastName"`
	Email                string               `json:"email"`
	Phone                string               `json:"phone,omitempty"`
	Birthday             string               `json:"birthday,omitempty"`
	ProfileImage         string               `json:"profileImage,omitempty"`
	Role                 string               `json:"role,omitempty"`
	MembershipStatus     string               `json:"membershipStatus,omitempty"`
	Membership           *Membership          `json:"membership,omitempty"`
	PunchCard            *PunchCard           `json:"punchCard,omitempty"`
	NotificationSettings NotificationSettings `json:"notificationSettings,omitempty"`
	JoinDate             string               `json:"joinDate,omitempty"`
	CreatedAt            string               `json:"createdAt,omitempty"`
	UpdatedAt            string               `json:"updatedAt,omitempty"`
}

// Admin is a dashboard operator account.
type Admin struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	JoinDate  string `json:"joinDate,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Pagination is the shared list paging block returned by every collection
// endpoint.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
