package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/folio/internal/aiservice"
	"github.com/sushihentaime/folio/internal/blogservice"
	"github.com/sushihentaime/folio/internal/byteservice"
	"github.com/sushihentaime/folio/internal/commentservice"
	"github.com/sushihentaime/folio/internal/common"
	"github.com/sushihentaime/folio/internal/contactservice"
	"github.com/sushihentaime/folio/internal/linkedinservice"
	"github.com/sushihentaime/folio/internal/mailservice"
	"github.com/sushihentaime/folio/internal/newsletterservice"
	"github.com/sushihentaime/folio/internal/userservice"
)

type application struct {
	config            *Config
	logger            *slog.Logger
	userService       *userservice.UserService
	blogService       *blogservice.BlogService
	byteService       *byteservice.ByteService
	commentService    *commentservice.CommentService
	contactService    *contactservice.ContactService
	newsletterService *newsletterservice.NewsletterService
	aiService         *aiservice.AIService
	linkedInService   *linkedinservice.LinkedInService
	mailService       *mailservice.MailService
	broker            *common.MessageBroker
	limiter           *common.RateLimiter
	formLimiter       *common.RateLimiter
}

func main() {
	configPath := flag.String("config", ".env", "path to the .env configuration file")
	migrations := flag.String("migrate", "", "apply the migrations at this source (e.g. file://migrations) before starting")
	flag.Parse()

	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *migrations != "" {
		m, err := common.Migrate(*migrations, common.DSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name))
		if err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		m.Close()
		logger.Info("migrations applied", slog.String("source", *migrations))
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.MaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Create the URI and connect to the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	// Setup the exchanges, queues, and binding keys
	if err := common.SetupUserExchange(broker); err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := common.SetupSiteExchange(broker); err != nil {
		logger.Error("failed to setup the site exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Content generation is optional
	var generator aiservice.Generator
	gemini, err := aiservice.NewGeminiGenerator(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
	switch {
	case err == nil:
		generator = gemini
	case errors.Is(err, aiservice.ErrDisabled):
		logger.Info("content generation disabled, GEMINI_API_KEY is not set")
	default:
		logger.Error("failed to create the content generator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	ai := aiservice.NewAIService(generator)

	app := &application{
		config:            cfg,
		logger:            logger,
		userService:       userservice.NewUserService(db, broker, cfg.Site.AdminEmails),
		blogService:       blogservice.NewBlogService(db, cache),
		byteService:       byteservice.NewByteService(db),
		commentService:    commentservice.NewCommentService(db),
		contactService:    contactservice.NewContactService(db, broker),
		newsletterService: newsletterservice.NewNewsletterService(db, broker),
		aiService:         ai,
		linkedInService:   linkedinservice.NewLinkedInService(db, ai),
		broker:            broker,
		limiter:           common.NewRateLimiter(cfg.Limiter.RPS, cfg.Limiter.Burst, 3*time.Minute),
		formLimiter:       common.NewRateLimiter(cfg.Limiter.FormRPS, cfg.Limiter.FormBurst, 15*time.Minute),
		mailService: mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port,
			mailservice.SiteConfig{Name: cfg.Site.Name, URL: cfg.Site.URL, ContactRecipient: cfg.Site.ContactRecipient}, logger),
	}

	// Start the consumers
	app.mailService.Start()
	defer app.mailService.Close()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
