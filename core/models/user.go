package models

// User is an application account. Authentication itself lives outside this
// service; users are kept for role lookups and dashboard counts.
type User struct {
	Username      string   `json:"username"`
	Password      string   `json:"password,omitempty"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Department    string   `json:"department,omitempty"`
	Role          string   `json:"role"`
	AccessControl []string `json:"access_control,omitempty"`
}

// ActivityEntry is one append-only row in the activity log
type ActivityEntry struct {
	Timestamp   string     `json:"timestamp"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	User        string     `json:"user"`
	RelatedID   FlexString `json:"related_id,omitempty"`
}
