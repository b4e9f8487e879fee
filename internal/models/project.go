package models

import (
	"math"
	"time"
)

// Project представляет архивированный capstone проект
type Project struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Uploader   *Uploader `json:"uploader,omitempty"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Field      string    `json:"field"`
	FileURL    string    `json:"file_url"`
	ID         int64     `json:"id"`
	UploadedBy int64     `json:"uploaded_by"`
	Views      int64     `json:"views"`
	Year       int       `json:"year"`
	IsDeleted  bool      `json:"is_deleted"`
}

// Uploader краткая информация о пользователе, загрузившем проект
type Uploader struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	ID       int64  `json:"id"`
}

// ProjectFilter параметры выборки для списка проектов
type ProjectFilter struct {
	Field  string // подстрока, без учета регистра
	Search string // поиск по title/author, без учета регистра
	Year   int    // 0 = любой год
	Page   int
	Limit  int
}

// MaxPage верхняя граница номера страницы
const MaxPage = 1_000_000

// Offset returns the number of rows to skip for the filter's page.
// Page is clamped to [1, MaxPage]; the result never overflows.
func (f ProjectFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	page := min(f.Page, MaxPage)
	if page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (page - 1) * f.Limit
}

// SavedProject связь студент -> сохраненный проект
type SavedProject struct {
	SavedAt time.Time `json:"saved_at"`
	Project Project   `json:"project"`
	UserID  int64     `json:"user_id"`
}

// AboutContent редактируемый блок "About"
type AboutContent struct {
	UpdatedAt    time.Time `json:"updated_at"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Mission      string    `json:"mission"`
	ContactEmail string    `json:"contact_email"`
	UpdatedBy    int64     `json:"updated_by"`
}

// DefaultAboutContent is served until an admin edits the block.
func DefaultAboutContent() AboutContent {
	return AboutContent{
		Title:        "About Capsort",
		Subtitle:     "Capstone Archiving and Sorting System",
		Mission:      "Preserve and share student capstone projects.",
		ContactEmail: "",
	}
}
