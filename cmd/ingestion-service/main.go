package main

import "momo-analysis/internal/bootstrap/ingestion"

// @title MoMo SMS Analysis API
// @version 1.0
// @description Импорт, классификация и анализ SMS о транзакциях мобильных денег
// @host localhost:8080
// @BasePath /api/v1
func main() { ingestion.StartIngestionService() }
