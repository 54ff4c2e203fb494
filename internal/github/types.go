package github

import (
	"encoding/json"
	"time"
)

type User struct {
	Login     string  `json:"login"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL string  `json:"avatar_url"`
}

type Repository struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
}

type Follower struct {
	Login string `json:"login"`
}

type EventRepo struct {
	Name string `json:"name"`
}

// * Event keeps the payload raw; the activity package decodes it per kind
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Repo      *EventRepo      `json:"repo"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	ReposPerPage  = 100
	EventsPerPage = 20
)
