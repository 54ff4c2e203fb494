// Package activity turns raw GitHub events into activity feed rows.
package activity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Mester2001/portfolio/internal/github"
)

type Kind string

const (
	KindPush        Kind = "push"
	KindCreate      Kind = "create"
	KindWatch       Kind = "watch"
	KindFork        Kind = "fork"
	KindPullRequest Kind = "pull-request"
	KindOther       Kind = "other"
)

var eventKinds = map[string]Kind{
	"PushEvent":        KindPush,
	"CreateEvent":      KindCreate,
	"WatchEvent":       KindWatch,
	"ForkEvent":        KindFork,
	"PullRequestEvent": KindPullRequest,
}

// KindOf maps a GitHub event type onto its display kind.
func KindOf(eventType string) Kind {
	if k, ok := eventKinds[eventType]; ok {
		return k
	}
	return KindOther
}

// Activity is one classified event. Each kind carries only its own fields.
type Activity interface {
	Kind() Kind
	Description() string
}

type Push struct{ Commits int }

type Create struct{ RefType string }

type Watch struct{}

type Fork struct{}

type PullRequest struct {
	Action string
	Number int
}

type Other struct{ Type string }

func (Push) Kind() Kind        { return KindPush }
func (Create) Kind() Kind      { return KindCreate }
func (Watch) Kind() Kind       { return KindWatch }
func (Fork) Kind() Kind        { return KindFork }
func (PullRequest) Kind() Kind { return KindPullRequest }
func (Other) Kind() Kind       { return KindOther }

func (a Push) Description() string {
	unit := "commits"
	if a.Commits == 1 {
		unit = "commit"
	}
	return fmt.Sprintf("تم دفع %d %s إلى ", a.Commits, unit)
}

func (a Create) Description() string {
	if a.RefType == "repository" {
		return "تم إنشاء مستودع "
	}
	return "تم إنشاء فرع "
}

func (Watch) Description() string { return "تمت متابعة المستودع " }

func (Fork) Description() string { return "تم عمل Fork للمستودع " }

func (a PullRequest) Description() string {
	verb := "تحديث"
	if a.Action == "opened" {
		verb = "فتح"
	}
	if a.Number > 0 {
		return fmt.Sprintf("%s طلب سحب #%d في ", verb, a.Number)
	}
	return verb + " طلب سحب في "
}

func (Other) Description() string { return "نشاط جديد في " }

type pushPayload struct {
	Size    int               `json:"size"`
	Commits []json.RawMessage `json:"commits"`
}

type createPayload struct {
	RefType string `json:"ref_type"`
}

type pullRequestPayload struct {
	Action      string `json:"action"`
	Number      int    `json:"number"`
	PullRequest *struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// Classify decodes the payload of ev according to its kind. A payload that
// does not decode yields the zero value of the variant.
func Classify(ev github.Event) Activity {
	switch KindOf(ev.Type) {
	case KindPush:
		var p pushPayload
		decode(ev.Payload, &p)
		commits := len(p.Commits)
		if commits == 0 {
			commits = p.Size
		}
		return Push{Commits: max(commits, 0)}
	case KindCreate:
		var p createPayload
		decode(ev.Payload, &p)
		return Create{RefType: p.RefType}
	case KindWatch:
		return Watch{}
	case KindFork:
		return Fork{}
	case KindPullRequest:
		var p pullRequestPayload
		decode(ev.Payload, &p)
		number := p.Number
		if number == 0 && p.PullRequest != nil {
			number = p.PullRequest.Number
		}
		return PullRequest{Action: p.Action, Number: number}
	default:
		return Other{Type: ev.Type}
	}
}

func decode(raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}

// ShortRepoName strips the "<username>/" owner prefix from a full repo name.
func ShortRepoName(fullName, username string) string {
	if username != "" {
		if rest, ok := strings.CutPrefix(fullName, username+"/"); ok {
			return rest
		}
	}
	return fullName
}
