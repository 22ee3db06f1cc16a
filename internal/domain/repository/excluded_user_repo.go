package repository

// ExcludedUserRepository определяет методы для работы с реестром исключенных.
// Реестр живет в отдельной базе и переживает удаление строки пользователя.
type ExcludedUserRepository interface {
	// IsExcluded проверяет, помечен ли userId как удаленный.
	IsExcluded(userID uint) (bool, error)

	// MarkExcluded идемпотентно добавляет userId в реестр:
	// повторный вызов — no-op, а не ошибка.
	MarkExcluded(userID uint) error
}
