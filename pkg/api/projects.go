package api

import "time"

// Uploader краткие данные о пользователе, загрузившем проект
type Uploader struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ID       int64  `json:"id"`
}

// Project представление проекта
type Project struct {
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Uploader   *Uploader `json:"uploader,omitempty"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Field      string    `json:"field"`
	FileURL    string    `json:"fileUrl"`
	ID         int64     `json:"id"`
	UploadedBy int64     `json:"uploadedBy"`
	Views      int64     `json:"views"`
	Year       int       `json:"year"`
}

// ProjectRequest тело запроса на создание и изменение проекта
type ProjectRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Author  string `json:"author" validate:"required,min=1,max=255"`
	Field   string `json:"field" validate:"required,min=1,max=100"`
	FileURL string `json:"fileUrl" validate:"required,url"`
	Year    int    `json:"year" validate:"required,gte=1900,lte=2100"`
}

// Pagination метаданные страницы
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// ProjectListResponse ответ со страницей проектов
type ProjectListResponse struct {
	Projects   []Project  `json:"projects"`
	Pagination Pagination `json:"pagination"`
}

// ProjectResponse ответ с одним проектом
type ProjectResponse struct {
	Project Project `json:"project"`
	Message string  `json:"message,omitempty"`
}

// SavedProject сохраненный студентом проект
type SavedProject struct {
	SavedAt time.Time `json:"savedAt"`
	Project Project   `json:"project"`
}

// SavedProjectsResponse список сохраненных проектов
type SavedProjectsResponse struct {
	SavedProjects []SavedProject `json:"savedProjects"`
}

// About редактируемый блок "About"
type About struct {
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
	Title        string     `json:"title" validate:"required,max=200"`
	Subtitle     string     `json:"subtitle" validate:"max=300"`
	Mission      string     `json:"mission" validate:"required,max=5000"`
	ContactEmail string     `json:"contactEmail" validate:"omitempty,email"`
}
