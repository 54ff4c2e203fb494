package models

import "time"

// Stats is the reduced repository/follower summary.
type Stats struct {
	Repositories int `json:"repositories"`
	Followers    int `json:"followers"`
	Stars        int `json:"stars"`
	Forks        int `json:"forks"`
}

// ActivityRow is one display line of the activity feed.
type ActivityRow struct {
	Kind        string    `json:"kind"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	RepoName    string    `json:"repo_name"`
	RepoURL     string    `json:"repo_url"`
	CreatedAt   time.Time `json:"created_at"`
	Timestamp   string    `json:"timestamp"`
	Ago         string    `json:"ago"`
}

// ProfileView holds everything the page regions display, in either the
// loaded or the failed state.
type ProfileView struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url,omitempty"`
	AvatarAlt string `json:"avatar_alt,omitempty"`

	Stats          Stats         `json:"stats"`
	RepoCount      string        `json:"repo_count"`
	FollowerCount  string        `json:"follower_count"`
	StarCount      string        `json:"star_count"`
	ForkCount      string        `json:"fork_count"`
	Activity       []ActivityRow `json:"activity"`
	ActivityNotice string        `json:"activity_notice,omitempty"`

	Loaded    bool      `json:"loaded"`
	Failed    bool      `json:"failed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Preferences are the two UI flags kept next to the projects.
type Preferences struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

func (p Preferences) Dir() string {
	if p.Language == "ar" {
		return "rtl"
	}
	return "ltr"
}
