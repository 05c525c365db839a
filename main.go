package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/config"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/handlers/api"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/handlers/web"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/cache"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/storage"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	engine := html.New("./templates", ".html")

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			if api.IsAPIRequest(c) {
				return c.Status(code).JSON(fiber.Map{
					"error": err.Error(),
				})
			}

			return c.Status(code).Render("error", fiber.Map{
				"Error": err.Error(),
				"Code":  code,
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	store := session.New(session.Config{
		Expiration:     cfg.Session.Timeout.Duration,
		CookieHTTPOnly: true,
	})

	verdicts := cache.NewVerdictCache(cfg.Cache.TTL.Duration)

	exports, err := storage.NewRecordStore(cfg.Export.Directory)
	if err != nil {
		log.Fatal("Failed to initialize export storage:", err)
	}

	authHandler := api.NewAuthHandler(store, cfg)
	analysisHandler := api.NewAnalysisHandler(store, cfg, verdicts, exports)
	webAuthHandler := web.NewAuthHandler(store)
	verdictHandler := web.NewVerdictHandler(store, cfg, analysisHandler)

	// Public routes
	app.Get("/login", webAuthHandler.ShowLogin)
	app.Get("/logout", authHandler.HandleLogout)
	app.Post("/api/login", authHandler.HandleLogin)

	// Standalone analysis of an uploaded raw message needs no mailbox
	// session; the engine runs entirely on the posted bytes.
	app.Post("/api/analyze", analysisHandler.HandleAnalyzeUpload)

	// Protected routes group
	protected := app.Group("", api.SessionMiddleware(store, cfg.Session.JWTSecret))

	protected.Get("/", verdictHandler.HandleHome)
	protected.Get("/message/:name/:uid", verdictHandler.HandleVerdict)

	apiRoutes := protected.Group("/api")
	{
		apiRoutes.Get("/folders", analysisHandler.HandleFolders)
		apiRoutes.Get("/folder/:name/analysis", analysisHandler.HandleAnalyzeFolder)
		apiRoutes.Get("/folder/:name/message/:uid/analysis", analysisHandler.HandleAnalyzeMessage)
		apiRoutes.Get("/folder/:name/message/:uid/record", analysisHandler.HandleMessageRecord)
		apiRoutes.Post("/folder/:name/message/:uid/export", analysisHandler.HandleExportRecord)
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s...\n", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal("Error starting server: ", err)
	}
}
