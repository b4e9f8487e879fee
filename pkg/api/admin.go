package api

// Dashboard сводка аналитики
type Dashboard struct {
	MostViewedProject *Project `json:"mostViewedProject"`
	TotalProjects     int64    `json:"totalProjects"`
	TotalUsers        int64    `json:"totalUsers"`
	TotalSaves        int64    `json:"totalSaves"`
	ActiveStudents    int64    `json:"activeStudents"`
}

// YearCount количество проектов за год
type YearCount struct {
	ByField map[string]int64 `json:"byField"`
	Year    int              `json:"year"`
	Total   int64            `json:"total"`
}

// FieldShare доля направления
type FieldShare struct {
	Name       string  `json:"name"`
	Value      int64   `json:"value"`
	Percentage float64 `json:"percentage"`
}

// TopSavedProject проект с количеством сохранений
type TopSavedProject struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Field  string `json:"field"`
	ID     int64  `json:"id"`
	Year   int    `json:"year"`
	Saves  int64  `json:"saves"`
}

// UserActivity агрегаты по пользователям
type UserActivity struct {
	TotalStudents      int64 `json:"totalStudents"`
	TotalAdmins        int64 `json:"totalAdmins"`
	NewUsersLast30Days int64 `json:"newUsersLast30Days"`
	ActiveStudents     int64 `json:"activeStudents"`
}

// DatabaseStats количество записей по таблицам
type DatabaseStats struct {
	Users               int64 `json:"users"`
	Projects            int64 `json:"projects"`
	SavedProjects       int64 `json:"savedProjects"`
	AboutContent        int64 `json:"aboutContent"`
	SoftDeletedProjects int64 `json:"softDeletedProjects"`
}

// SystemHealth состояние зависимостей
type SystemHealth struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latencyMs"`
}

// HealthResponse ответ liveness проверки
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
