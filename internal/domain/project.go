package domain

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	TechStack   []string  `db:"-" json:"tech_stack"`
	GithubURL   string    `db:"github_url" json:"github_url"`
	DemoURL     string    `db:"demo_url" json:"demo_url"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	Featured    bool      `db:"featured" json:"featured"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ProjectFilter narrows ListProjects. A zero Limit means no limit.
type ProjectFilter struct {
	FeaturedOnly bool
	Limit        int
}

// PrimaryLink is where the project card image points: demo first, then source.
func (p Project) PrimaryLink() string {
	switch {
	case p.DemoURL != "":
		return p.DemoURL
	case p.GithubURL != "":
		return p.GithubURL
	default:
		return "#"
	}
}

type Research struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	TechStack   []string  `db:"-" json:"tech_stack"`
	GithubURL   string    `db:"github_url" json:"github_url"`
	Category    string    `db:"category" json:"category"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func NewProject() *Project {
	return &Project{ID: uuid.NewString(), CreatedAt: time.Now().UTC(), TechStack: []string{}}
}

func NewResearch() *Research {
	return &Research{ID: uuid.NewString(), CreatedAt: time.Now().UTC(), TechStack: []string{}}
}
