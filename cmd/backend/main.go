package main

import (
	"log"

	"budget-backend/internal/api"
)

// @title Budget Request API
// @version 1.0
// @description API для подачи и рассмотрения заявок на бюджетное финансирование

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Введите токен в формате: Bearer {token}

func main() {
	log.Println("App start")
	api.StartServer()
	log.Println("App terminated")
}
