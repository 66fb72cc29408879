package postgres

import (
	"fmt"
	"log"

	"github.com/c3pio89/Board/internal/config"
	"github.com/c3pio89/Board/internal/permission"
	"github.com/c3pio89/Board/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/joho/godotenv"
)

var DB *gorm.DB

// GetDB возвращает глобальную переменную DB (для тестирования)
func GetDB() *gorm.DB {
	return DB
}

// InitDB подключается к базе данных PostgreSQL и устанавливает глобальную переменную DB
func InitDB() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST"),
		config.GetEnv("DB_USER"),
		config.GetEnv("DB_PASSWORD"),
		config.GetEnv("DB_NAME"),
		config.GetEnv("DB_PORT"),
		config.GetEnv("DB_SSLMODE"),
	)

	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %v", err)
	}

	DB = db
	log.Println("Successfully connected to the database.")
	return nil
}

// CloseDB закрывает соединение с базой данных
func CloseDB() error {
	if DB == nil {
		return nil
	}

	err := DB.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %v", err)
	}

	log.Println("Database connection closed.")
	return nil
}

// InitDBWithConnection для тестирования (позволяет инъекцию соединения БД)
func InitDBWithConnection(db *gorm.DB) {
	DB = db
}

// Migrate выполняет миграцию всех сущностей доски объявлений
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Author{},
		&models.News{},
		&models.Comment{},
		&models.ConfirmationCode{},
		&models.Newsletter{},
	).Error
}

// EnsureGroups создает стандартные группы, если их еще нет
func EnsureGroups() error {
	for _, name := range []string{permission.GroupCommonUsers, permission.GroupAuthors} {
		var group models.Group
		err := DB.FirstOrCreate(&group, models.Group{Name: name}).Error
		if err != nil {
			return fmt.Errorf("could not ensure group %s: %w", name, err)
		}
	}
	return nil
}
