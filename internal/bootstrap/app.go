package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "practice-backend/internal/auth"
	"practice-backend/internal/documents"
	"practice-backend/internal/ingest"
	"practice-backend/internal/llm"
	"practice-backend/internal/llm/gemini"
	"practice-backend/internal/mail"
	"practice-backend/internal/papers"
	"practice-backend/internal/profiles"
	"practice-backend/internal/queue"
	"practice-backend/internal/reminders"
	"practice-backend/internal/shared/config"
	"practice-backend/internal/shared/server"
	"practice-backend/internal/shared/storage/db"
	"practice-backend/internal/shared/storage/object"
	localstore "practice-backend/internal/shared/storage/object/local"
	s3store "practice-backend/internal/shared/storage/object/s3"
)

// App holds the wired application dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	Mail   mail.Client

	DocumentsRepo documents.DocumentsRepo
	PapersRepo    papers.Repo
	ProfilesRepo  profiles.Repo

	DocumentsService *documents.Service
	PapersService    *papers.Service
	ProfilesService  *profiles.Service
	RemindersService *reminders.Service

	DocumentsHandler *documents.Handler
	PapersHandler    *papers.Handler
	ProfilesHandler  *profiles.Handler
	RemindersHandler *reminders.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentHandler:  app.DocumentsHandler,
		PaperHandler:     app.PapersHandler,
		ProfileHandler:   app.ProfilesHandler,
		RemindersHandler: app.RemindersHandler,
		GoogleAuth:       app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errRequired("DATABASE_URL")
	}

	sqlDB, err := db.Connect(ctx, db.Options{DatabaseURL: cfg.DatabaseURL})
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.Migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildMail(cfg config.Config) (mail.Client, error) {
	if strings.TrimSpace(cfg.MailRelayURL) == "" {
		log.Printf("bootstrap: MAIL_RELAY_URL empty; emails are logged, not sent")
		return mail.NoopClient{}, nil
	}
	return mail.NewRelayClient(cfg.MailRelayURL, cfg.MailRelayKey, cfg.MailFromAddress, cfg.MailFromName)
}

func buildServices(app *App) error {
	var docRepo documents.DocumentsRepo
	var paperRepo papers.Repo
	var profileRepo profiles.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		paperRepo = &papers.PGRepo{DB: app.DB}
		profileRepo = &profiles.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		paperRepo = papers.NewMemoryRepo()
		profileRepo = profiles.NewMemoryRepo()
	}

	mailClient, err := buildMail(app.Config)
	if err != nil {
		return err
	}
	app.Mail = mailClient

	docSvc := &documents.Service{Store: app.Store, Repo: docRepo}
	profileSvc := profiles.NewService(profileRepo)
	reminderSvc := reminders.NewService(profileSvc, mailClient, app.Config.AppBaseURL)

	llmClient := llm.Client(gemini.NewClient(app.Config.GeminiAPIKey, app.Config.GeminiModel))
	paperSvc := &papers.Service{
		Repo:      paperRepo,
		Processor: &ingest.Processor{Store: app.Store},
		LLM:       llmClient,
	}

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		profileSvc,
		reminderSvc,
	)

	app.DocumentsRepo = docRepo
	app.PapersRepo = paperRepo
	app.ProfilesRepo = profileRepo
	app.DocumentsService = docSvc
	app.PapersService = paperSvc
	app.ProfilesService = profileSvc
	app.RemindersService = reminderSvc
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.PapersHandler = papers.NewHandler(paperSvc)
	app.ProfilesHandler = profiles.NewHandler(profileSvc)
	app.RemindersHandler = reminders.NewHandler(reminderSvc, app.Queue)
	app.GoogleAuth = googleAuthSvc

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type errRequired string

func (e errRequired) Error() string { return string(e) + " is required" }
