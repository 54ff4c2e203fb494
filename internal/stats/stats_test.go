package stats

import (
	"testing"

	"github.com/Mester2001/portfolio/internal/github"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		repos     []github.Repository
		followers []github.Follower
		want      models.Stats
	}{
		{
			name: "nil input",
			want: models.Stats{},
		},
		{
			name:      "empty lists",
			repos:     []github.Repository{},
			followers: []github.Follower{},
			want:      models.Stats{},
		},
		{
			name: "sums stars and forks",
			repos: []github.Repository{
				{Name: "a", StargazersCount: 10, ForksCount: 2},
				{Name: "b", StargazersCount: 5},
				{Name: "c", ForksCount: 1},
			},
			followers: []github.Follower{{Login: "x"}, {Login: "y"}},
			want:      models.Stats{Repositories: 3, Followers: 2, Stars: 15, Forks: 3},
		},
		{
			name: "malformed negative counts",
			repos: []github.Repository{
				{StargazersCount: -4, ForksCount: -1},
				{StargazersCount: 1},
			},
			want: models.Stats{Repositories: 2, Stars: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.repos, tt.followers)

			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Repositories, 0)
			assert.GreaterOrEqual(t, got.Followers, 0)
			assert.GreaterOrEqual(t, got.Stars, 0)
			assert.GreaterOrEqual(t, got.Forks, 0)
		})
	}
}
