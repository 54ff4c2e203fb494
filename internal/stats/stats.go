// Package stats reduces the repository and follower lists to the numbers
// shown in the stats block.
package stats

import (
	"github.com/Mester2001/portfolio/internal/github"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/logger"
)

// Compute sums stars and forks over repos and counts both lists. Nil lists
// count as empty and negative counts as zero, so every field is >= 0.
func Compute(repos []github.Repository, followers []github.Follower) models.Stats {
	s := models.Stats{
		Repositories: len(repos),
		Followers:    len(followers),
	}

	for _, r := range repos {
		s.Stars += max(r.StargazersCount, 0)
		s.Forks += max(r.ForksCount, 0)
	}

	logger.Debug("GitHub stats: repos=%d stars=%d forks=%d followers=%d", s.Repositories, s.Stars, s.Forks, s.Followers)
	return s
}
