package handlers

import (
	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/pkg/api"
)

func toAPIUser(identity models.Identity) api.User {
	return api.User{
		ID:            identity.ID,
		FullName:      identity.FullName,
		ContactNumber: identity.ContactNumber,
		Email:         identity.Email,
		Role:          string(identity.Role),
		CreatedAt:     identity.CreatedAt,
	}
}

func toAPIProject(p *models.Project) api.Project {
	project := api.Project{
		ID:         p.ID,
		Title:      p.Title,
		Author:     p.Author,
		Year:       p.Year,
		Field:      p.Field,
		FileURL:    p.FileURL,
		UploadedBy: p.UploadedBy,
		Views:      p.Views,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.Uploader != nil {
		project.Uploader = &api.Uploader{
			ID:       p.Uploader.ID,
			FullName: p.Uploader.FullName,
			Email:    p.Uploader.Email,
			Role:     string(p.Uploader.Role),
		}
	}
	return project
}

func toAPIProjects(projects []*models.Project) []api.Project {
	out := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, toAPIProject(p))
	}
	return out
}

func toAPIAbout(c models.AboutContent) api.About {
	about := api.About{
		Title:        c.Title,
		Subtitle:     c.Subtitle,
		Mission:      c.Mission,
		ContactEmail: c.ContactEmail,
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		about.UpdatedAt = &updated
	}
	return about
}
