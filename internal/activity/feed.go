package activity

import (
	"time"

	"github.com/Mester2001/portfolio/internal/format"
	"github.com/Mester2001/portfolio/internal/github"
	"github.com/Mester2001/portfolio/internal/models"
)

const (
	MaxRows = 5

	NoActivityText     = "لا توجد نشاطات حديثة"
	ActivityFailedText = "تعذر تحميل النشاطات"
)

var whitelist = map[Kind]bool{
	KindPush:        true,
	KindCreate:      true,
	KindWatch:       true,
	KindFork:        true,
	KindPullRequest: true,
}

// Feed is the rendered activity list. Notice is set, and Rows empty, when
// nothing is left to show.
type Feed struct {
	Rows   []models.ActivityRow
	Notice string
}

// Eligible reports whether ev may appear in the feed.
func Eligible(ev github.Event) bool {
	return ev.Repo != nil && ev.Repo.Name != "" && whitelist[KindOf(ev.Type)]
}

// BuildFeed keeps the first MaxRows eligible events in the order GitHub
// returned them (newest first) and formats each one. Timestamps are shown in
// loc; nil means UTC.
func BuildFeed(events []github.Event, username string, now time.Time, loc *time.Location) Feed {
	if loc == nil {
		loc = time.UTC
	}

	rows := make([]models.ActivityRow, 0, MaxRows)
	for _, ev := range events {
		if len(rows) == MaxRows {
			break
		}
		if !Eligible(ev) {
			continue
		}
		rows = append(rows, row(ev, username, now, loc))
	}

	if len(rows) == 0 {
		return Feed{Rows: rows, Notice: NoActivityText}
	}
	return Feed{Rows: rows}
}

func row(ev github.Event, username string, now time.Time, loc *time.Location) models.ActivityRow {
	a := Classify(ev)

	return models.ActivityRow{
		Kind:        string(a.Kind()),
		Icon:        Icon(a.Kind()),
		Description: a.Description(),
		RepoName:    ShortRepoName(ev.Repo.Name, username),
		RepoURL:     "https://github.com/" + ev.Repo.Name,
		CreatedAt:   ev.CreatedAt,
		Timestamp:   format.Timestamp(ev.CreatedAt.In(loc)),
		Ago:         format.Ago(ev.CreatedAt, now),
	}
}
