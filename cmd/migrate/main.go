package main

import (
	"log"

	"budget-backend/internal/app/ds"
	"budget-backend/internal/app/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
	err = db.AutoMigrate(
		&ds.User{},
		&ds.Department{},
		&ds.BudgetCategory{},
		&ds.BudgetRequest{},
		&ds.BudgetLineItem{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	seedReferenceData(db)
}

// seedReferenceData заполняет справочники подразделений и категорий
func seedReferenceData(db *gorm.DB) {
	departments := []ds.Department{
		{Code: "IT", Name: "Управление информационных технологий", HeadName: "Соколов А. В.", ContactEmail: "it@example.org"},
		{Code: "HR", Name: "Управление кадров", HeadName: "Морозова Е. П.", ContactEmail: "hr@example.org"},
		{Code: "FIN", Name: "Финансовое управление", HeadName: "Кузнецов Д. И.", ContactEmail: "fin@example.org"},
		{Code: "OPS", Name: "Хозяйственное управление", HeadName: "Волков С. Н.", ContactEmail: "ops@example.org"},
		{Code: "EDU", Name: "Учебное управление", HeadName: "Павлова И. А.", ContactEmail: "edu@example.org"},
	}
	for _, dept := range departments {
		if err := db.Where(ds.Department{Code: dept.Code}).FirstOrCreate(&dept).Error; err != nil {
			log.Fatalf("Failed to seed department %s: %v", dept.Code, err)
		}
	}

	categories := []ds.BudgetCategory{
		{Code: "EQUIP", Name: "Оборудование"},
		{Code: "SOFT", Name: "Программное обеспечение"},
		{Code: "SERV", Name: "Услуги и работы"},
		{Code: "TRAIN", Name: "Обучение персонала"},
		{Code: "MAINT", Name: "Содержание и ремонт"},
	}
	for _, cat := range categories {
		if err := db.Where(ds.BudgetCategory{Code: cat.Code}).FirstOrCreate(&cat).Error; err != nil {
			log.Fatalf("Failed to seed category %s: %v", cat.Code, err)
		}
	}

	log.Println("Reference data seeded successfully")
}
