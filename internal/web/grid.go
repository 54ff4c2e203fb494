package web

import (
	"github.com/Mester2001/portfolio/internal/format"
	"github.com/Mester2001/portfolio/internal/models"
)

const (
	NoProjectsText = "لا توجد مشاريع مضافة بعد"
	AddProjectText = "إضافة مشروع جديد"

	// * where the add control goes in admin mode
	AddButtonNone     = ""
	AddButtonInline   = "inline"
	AddButtonFloating = "floating"
)

// ProjectCard is one rendered grid entry.
type ProjectCard struct {
	ID          string
	Title       string
	Description string
	Image       string
	Tags        []string
	GitHub      string
	Demo        string
	Date        string
	EditURL     string
	DeleteURL   string
}

// ProjectGrid is the full content of the projects container. It is rebuilt
// from the whole collection on every render.
type ProjectGrid struct {
	Cards     []ProjectCard
	Admin     bool
	Empty     bool
	EmptyText string
	AddButton string
	AddURL    string
}

// BuildGrid turns the collection into cards. Admin mode adds edit and delete
// links per card plus one add control: inside the empty state when there
// are no projects, floating otherwise.
func BuildGrid(projects []models.Project, admin bool) ProjectGrid {
	grid := ProjectGrid{
		Cards: make([]ProjectCard, 0, len(projects)),
		Admin: admin,
	}

	for _, p := range projects {
		grid.Cards = append(grid.Cards, card(p, admin))
	}

	if len(grid.Cards) == 0 {
		grid.Empty = true
		grid.EmptyText = NoProjectsText
	}

	if admin {
		grid.AddURL = "/admin/projects/new?admin=true"
		grid.AddButton = AddButtonFloating
		if grid.Empty {
			grid.AddButton = AddButtonInline
		}
	}

	return grid
}

func card(p models.Project, admin bool) ProjectCard {
	c := ProjectCard{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Tags:        p.Tags,
		Date:        format.ISODate(p.Date),
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if p.GitHub != nil {
		c.GitHub = *p.GitHub
	}
	if p.Demo != nil {
		c.Demo = *p.Demo
	}

	if admin {
		c.EditURL = "/admin/projects/" + c.ID + "/edit?admin=true"
		c.DeleteURL = "/admin/projects/" + c.ID + "/delete?admin=true"
	}
	return c
}
