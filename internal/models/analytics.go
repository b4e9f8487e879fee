package models

// DashboardSummary сводка для админской панели аналитики
type DashboardSummary struct {
	MostViewedProject *Project
	TotalProjects     int64
	TotalUsers        int64
	TotalSaves        int64
	ActiveStudents    int64
}

// YearBucket количество проектов за год с разбивкой по направлениям
type YearBucket struct {
	ByField map[string]int64
	Year    int
	Total   int64
}

// FieldShare доля направления среди всех проектов
type FieldShare struct {
	Name       string
	Value      int64
	Percentage float64
}

// SavedCount проект и число его сохранений
type SavedCount struct {
	Project Project
	Saves   int64
}

// UserActivity агрегаты по пользователям
type UserActivity struct {
	TotalStudents      int64
	TotalAdmins        int64
	NewUsersLast30Days int64
	ActiveStudents     int64
}

// DatabaseStats количество записей по таблицам
type DatabaseStats struct {
	Users               int64
	Projects            int64
	SavedProjects       int64
	AboutContent        int64
	SoftDeletedProjects int64
}
