package service

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Mester2001/portfolio/internal/activity"
	"github.com/Mester2001/portfolio/internal/format"
	"github.com/Mester2001/portfolio/internal/github"
	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/internal/stats"
	"github.com/Mester2001/portfolio/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	NoBioText     = "لا توجد سيرة ذاتية متاحة"
	BioFailedText = "تعذر تحميل السيرة الذاتية"
)

type GitHubClient interface {
	GetUser(ctx context.Context, username string) (*github.User, error)
	ListRepositories(ctx context.Context, username string) ([]github.Repository, error)
	ListFollowers(ctx context.Context, username string) ([]github.Follower, error)
	ListEvents(ctx context.Context, username string) ([]github.Event, error)
}

// ProfileService aggregates the GitHub reads into the profile snapshot the
// page regions are rendered from.
type ProfileService struct {
	client   GitHubClient
	username string
	now      func() time.Time
	loc      *time.Location

	seq atomic.Uint64

	mu      sync.RWMutex
	view    models.ProfileView
	applied uint64
}

type ProfileServiceOptions struct {
	Now      func() time.Time
	Location *time.Location
}

func NewProfileService(client GitHubClient, username string, opts ProfileServiceOptions) *ProfileService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &ProfileService{
		client:   client,
		username: username,
		now:      opts.Now,
		loc:      opts.Location,
		view:     LoadingView(username),
	}
}

func (s *ProfileService) Username() string {
	return s.username
}

// Refresh runs the four reads concurrently and applies the result. Any failed
// read replaces the whole snapshot with FailureView. A refresh that finishes
// after a newer one has already been applied is dropped. The returned view is
// the snapshot in effect once this call is done.
func (s *ProfileService) Refresh(ctx context.Context) (models.ProfileView, error) {
	seq := s.seq.Add(1)

	view, err := s.fetch(ctx)
	if err != nil && ctx.Err() != nil {
		// * the caller went away; the current snapshot stays
		logger.Debug("Abandoned profile refresh #%d: %v", seq, err)
		return s.Snapshot(), err
	}
	if err != nil {
		logger.Error("Error loading GitHub profile for %s: %v", s.username, err)
		view = FailureView(s.username, s.now())
	}

	if !s.apply(seq, view) {
		logger.Debug("Dropping stale profile refresh #%d", seq)
	}
	return s.Snapshot(), err
}

func (s *ProfileService) fetch(ctx context.Context) (models.ProfileView, error) {
	var (
		user      *github.User
		repos     []github.Repository
		followers []github.Follower
		events    []github.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = s.client.GetUser(gctx, s.username)
		return err
	})
	g.Go(func() (err error) {
		repos, err = s.client.ListRepositories(gctx, s.username)
		return err
	})
	g.Go(func() (err error) {
		followers, err = s.client.ListFollowers(gctx, s.username)
		return err
	})
	g.Go(func() (err error) {
		events, err = s.client.ListEvents(gctx, s.username)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.ProfileView{}, err
	}

	return BuildView(s.username, user, repos, followers, events, s.now(), s.loc), nil
}

// * apply must not let an older sequence number overwrite a newer one
func (s *ProfileService) apply(seq uint64, view models.ProfileView) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.applied {
		return false
	}
	s.applied = seq
	s.view = view
	return true
}

// Snapshot returns the currently applied view.
func (s *ProfileService) Snapshot() models.ProfileView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.view
	v.Activity = slices.Clone(s.view.Activity)
	return v
}

// BuildView assembles a loaded view from the four successful reads.
func BuildView(username string, user *github.User, repos []github.Repository, followers []github.Follower, events []github.Event, now time.Time, loc *time.Location) models.ProfileView {
	if user == nil {
		user = &github.User{}
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}
	if name == "" {
		name = username
	}

	bio := NoBioText
	if user.Bio != nil && strings.TrimSpace(*user.Bio) != "" {
		bio = *user.Bio
	}

	st := stats.Compute(repos, followers)
	feed := activity.BuildFeed(events, username, now, loc)

	return models.ProfileView{
		Username:       username,
		Name:           name,
		Bio:            bio,
		AvatarURL:      user.AvatarURL,
		AvatarAlt:      name + "'s GitHub profile",
		Stats:          st,
		RepoCount:      format.Count(st.Repositories),
		FollowerCount:  format.Count(st.Followers),
		StarCount:      format.Count(st.Stars),
		ForkCount:      format.Count(st.Forks),
		Activity:       feed.Rows,
		ActivityNotice: feed.Notice,
		Loaded:         true,
		UpdatedAt:      now,
	}
}

// FailureView resets every profile region: bio error text, zero counts, no
// avatar and the activity failure notice.
func FailureView(username string, now time.Time) models.ProfileView {
	return models.ProfileView{
		Username:       username,
		Name:           username,
		Bio:            BioFailedText,
		RepoCount:      "0",
		FollowerCount:  "0",
		StarCount:      "0",
		ForkCount:      "0",
		Activity:       []models.ActivityRow{},
		ActivityNotice: activity.ActivityFailedText,
		Failed:         true,
		UpdatedAt:      now,
	}
}

// LoadingView is shown until the first refresh completes.
func LoadingView(username string) models.ProfileView {
	return models.ProfileView{
		Username:      username,
		Name:          username,
		RepoCount:     "0",
		FollowerCount: "0",
		StarCount:     "0",
		ForkCount:     "0",
		Activity:      []models.ActivityRow{},
	}
}
