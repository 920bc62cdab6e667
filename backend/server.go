// Package backend is the HTTP API of the marketplace.
package backend

import (
	"log/slog"
	"strings"

	"github.com/carrybid/carrybid/backend/handlers"
	"github.com/carrybid/carrybid/backend/middleware"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/audit"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	bodyLimit  = 20 << 20
	streamPath = "/api/notifications/stream"
)

// NewServer builds the fiber app with every route of the API.
func NewServer(webApp *handlers.WebApp) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "carrybid API",
		ServerHeader: "carrybid",
		BodyLimit:    bodyLimit,
		Immutable:    true,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Next:  func(c *fiber.Ctx) bool { return c.Path() == streamPath },
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.ToLower(webApp.Config.Config.Web.AllowOrigins),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp)
	return app
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	auth := middleware.AuthRequired(webApp)
	admin := middleware.AdminRequired()
	uploads := middleware.UploadRateLimit()

	app.Get("/health", handlers.HealthCheck(webApp))
	app.Get("/uploads/*", handlers.ServeUpload(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, fiber.Map{
			"version": webApp.Version,
			"commit":  webApp.Commit,
		}, "carrybid API")
	})

	api := app.Group("/api", middleware.APIRateLimit())

	// group middleware would also throttle /me
	signInLimit := middleware.AuthRateLimit()
	sessions := api.Group("/auth")
	sessions.Post("/register", signInLimit, handlers.Register(webApp))
	sessions.Post("/login", signInLimit, handlers.Login(webApp))
	sessions.Get("/google", signInLimit, handlers.GoogleOAuth(webApp))
	sessions.Get("/callback", signInLimit, handlers.OAuthCallback(webApp))
	sessions.Post("/logout", handlers.Logout(webApp))
	sessions.Get("/me", auth, handlers.Me(webApp))

	api.Get("/locations", handlers.SuggestLocations(webApp))

	posts := api.Group("/posts")
	posts.Get("/", handlers.ListPosts(webApp))
	posts.Post("/", auth, uploads, handlers.CreatePost(webApp))
	posts.Get("/:id", middleware.OptionalAuth(webApp), handlers.GetPost(webApp))
	posts.Patch("/:id", auth, handlers.UpdatePost(webApp))
	posts.Post("/:id/close", auth, handlers.ClosePost(webApp))
	posts.Post("/:id/reopen", auth, handlers.ReopenPost(webApp))
	posts.Get("/:id/bids", auth, handlers.ListPostBids(webApp))
	posts.Post("/:id/bids", auth, handlers.PlaceBid(webApp))

	bids := api.Group("/bids", auth)
	bids.Post("/:id/accept", handlers.AcceptBid(webApp))
	bids.Post("/:id/reject", handlers.RejectBid(webApp))

	me := api.Group("/me", auth)
	me.Patch("/", handlers.UpdateProfile(webApp))
	me.Get("/posts", handlers.MyPosts(webApp))
	me.Get("/bids", handlers.MyBids(webApp))
	me.Get("/bids/received", handlers.ReceivedBids(webApp))
	me.Post("/verification", uploads, handlers.SubmitVerification(webApp))

	people := api.Group("/users")
	people.Get("/:id", handlers.PublicProfile(webApp))
	people.Get("/:id/reviews", handlers.ListUserReviews(webApp))
	api.Post("/reviews", auth, handlers.CreateReview(webApp))

	conversations := api.Group("/conversations", auth)
	conversations.Get("/", handlers.ListConversations(webApp))
	conversations.Post("/", handlers.StartConversation(webApp))
	conversations.Get("/:id", handlers.GetConversation(webApp))
	conversations.Get("/:id/messages", handlers.ListMessages(webApp))
	conversations.Post("/:id/messages", handlers.SendMessage(webApp))

	notifications := api.Group("/notifications", auth)
	notifications.Get("/", handlers.ListNotifications(webApp))
	notifications.Get("/stream", handlers.StreamNotifications(webApp))
	notifications.Post("/read-all", handlers.MarkAllNotificationsRead(webApp))
	notifications.Post("/permission", handlers.SetNotificationPermission(webApp))
	notifications.Post("/:id/read", handlers.MarkNotificationRead(webApp))

	moderation := api.Group("/admin", auth, admin)
	moderation.Get("/archive", handlers.ListArchive(webApp))
	moderation.Get("/archive/:id", handlers.GetArchive(webApp))
	moderation.Post("/archive/:id/restore", middleware.AdminAction(audit.ActionPostRestored), handlers.RestoreArchive(webApp))
	moderation.Delete("/posts/:id", middleware.AdminAction(audit.ActionPostArchived), handlers.ArchivePost(webApp))
	moderation.Put("/posts/:id/featured", handlers.SetFeatured(webApp))
	moderation.Delete("/bids/:id", middleware.AdminAction(audit.ActionBidDeleted), handlers.DeleteBid(webApp))
	moderation.Get("/users", handlers.ListUsers(webApp))
	moderation.Post("/users/:id/ban", middleware.AdminAction(audit.ActionUserBanned), handlers.BanUser(webApp))
	moderation.Delete("/users/:id/ban", middleware.AdminAction(audit.ActionUserUnbanned), handlers.UnbanUser(webApp))
	moderation.Get("/verifications", handlers.PendingVerifications(webApp))
	moderation.Post("/verifications/:id/approve", middleware.AdminAction(audit.ActionIdentityApproved), handlers.ApproveVerification(webApp))
	moderation.Post("/verifications/:id/reject", middleware.AdminAction(audit.ActionIdentityRejected), handlers.RejectVerification(webApp))
	moderation.Get("/audit", handlers.AuditLog(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()))
		return utils.SendNotFound(c, "The requested endpoint does not exist")
	})
}
