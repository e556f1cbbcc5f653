package repository

import "budget-backend/internal/app/ds"

// Методы для справочников (департаменты и категории бюджета).
// Справочные данные только читаются, наполняются через cmd/migrate.

// GetDepartments возвращает все департаменты по алфавиту
func (r *Repository) GetDepartments() ([]ds.Department, error) {
	var departments []ds.Department
	err := r.db.Order("name").Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

// GetDepartmentByID возвращает департамент или (nil, nil) если его нет
func (r *Repository) GetDepartmentByID(id uint) (*ds.Department, error) {
	var department ds.Department
	err := r.db.First(&department, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

// DepartmentExists проверяет существование департамента
func (r *Repository) DepartmentExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Department{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBudgetCategories возвращает все категории по алфавиту
func (r *Repository) GetBudgetCategories() ([]ds.BudgetCategory, error) {
	var categories []ds.BudgetCategory
	err := r.db.Order("name").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryExists проверяет существование категории бюджета
func (r *Repository) CategoryExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.BudgetCategory{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
