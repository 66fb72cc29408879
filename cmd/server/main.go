package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/c3pio89/Board/internal/comment"
	"github.com/c3pio89/Board/internal/config"
	"github.com/c3pio89/Board/internal/confirmation"
	"github.com/c3pio89/Board/internal/mail"
	"github.com/c3pio89/Board/internal/news"
	"github.com/c3pio89/Board/internal/newsletter"
	"github.com/c3pio89/Board/internal/storage/memory"
	"github.com/c3pio89/Board/internal/storage/postgres"
	"github.com/c3pio89/Board/internal/user"
	"github.com/c3pio89/Board/server"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// загружаем .env из нашего config.go
	config.LoadEnv()

	siteURL := config.GetEnvDefault("SITE_URL", "http://localhost:8080")

	var mailer mail.Mailer
	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		mailer = mail.NewSMTPMailer(
			smtpHost,
			config.GetEnvDefault("SMTP_PORT", "587"),
			os.Getenv("SMTP_USER"),
			os.Getenv("SMTP_PASSWORD"),
			config.GetEnv("FROM_EMAIL"),
		)
	} else {
		log.Println("SMTP не настроен, письма уходят в лог")
		mailer = mail.NewLogMailer(log)
	}

	var newsStore news.NewsStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage
	var newsletterStore newsletter.NewsletterStorage
	var confirmationStore confirmation.ConfirmationStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		if err := postgres.Migrate(); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		if err := postgres.EnsureGroups(); err != nil {
			log.Fatalf("failed to seed groups: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		perm := postgres.NewPermissionPostgresStore()
		newsStore = postgres.NewNewsPostgresStorage(perm)
		commentStore = postgres.NewCommentPostgresStorage(perm)
		userStore = postgres.NewUserPostgresStorage(mailer, siteURL)
		newsletterStore = postgres.NewNewsletterPostgresStorage(perm)
		confirmationStore = postgres.NewConfirmationPostgresStorage(perm)

	case "memory":
		log.Println("Используется in-memory хранилище")
		groups := memory.NewGroupMemoryStore()
		codes := memory.NewConfirmationMemoryStorage(groups)
		newsStore = memory.NewNewsMemoryStorage(groups)
		commentStore = memory.NewCommentMemoryStorage(newsStore, groups)
		userStore = memory.NewUserMemoryStorage(groups, codes, mailer, siteURL)
		newsletterStore = memory.NewNewsletterMemoryStorage(groups)
		confirmationStore = codes

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	srv := &server.Server{
		NewsStore:         newsStore,
		CommentStore:      commentStore,
		UserStore:         userStore,
		NewsletterStore:   newsletterStore,
		ConfirmationStore: confirmationStore,
	}

	// HTTP сервер
	httpServer := &http.Server{
		Addr:    config.GetEnvDefault("SERVER_ADDR", ":8080"),
		Handler: srv.Router(),
	}

	// запуск HTTP сервера
	go func() {
		log.Printf("Сервер запущен на %s", httpServer.Addr)
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Завершение...")

	if err := httpServer.Shutdown(context.Background()); err != nil {
		log.Fatalf("Ошибка при завершении сервера: %v", err)
	}

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}

	log.Println("Сервер остановлен корректно")
}
