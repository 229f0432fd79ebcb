package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/middleware"
	"github.com/noteduco342/storyline-backend/internal/models"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Users      *UserHandler
	Posts      *PostHandler
	Follows    *FollowHandler
	Engagement *EngagementHandler
	History    *HistoryHandler
	Comments   *CommentHandler
	Discovery  *DiscoveryHandler
}

type RouteConfig struct {
	JWTSecret      string
	CSRFMode       string
	AllowedOrigins []string
	RequestTimeout time.Duration
	RateLimitMax   int
	RateLimitTTL   time.Duration
	// LimiterStorage backs the rate limiter; nil keeps counters in memory.
	LimiterStorage fiber.Storage
	RoleLookup     middleware.RoleLookup
}

// RegisterRoutes mounts the API under /api. Public routes are registered
// before the authenticated group so its middleware never runs for them.
func RegisterRoutes(app fiber.Router, h Handlers, cfg RouteConfig) {
	resolveRole := middleware.ResolveRole(cfg.RoleLookup)
	optionalAuth := middleware.AuthOptional(cfg.JWTSecret)
	optional := func(handler fiber.Handler) []fiber.Handler {
		return []fiber.Handler{optionalAuth, resolveRole, handler}
	}

	api := app.Group("/api", middleware.OriginAllowed(cfg.AllowedOrigins), middleware.Timeout(cfg.RequestTimeout))
	api.Get("/csrf", CSRF)

	// Public routes
	api.Get("/search", h.Discovery.Search)
	api.Get("/categories", h.Discovery.Categories)
	api.Get("/authors", h.Discovery.Authors)
	api.Get("/posts", h.Posts.ListPublished)
	api.Get("/posts/:id", optional(h.Posts.GetPost)...)
	api.Get("/posts/:id/comments", optional(h.Comments.ListComments)...)
	api.Get("/posts/:id/likes", optional(h.Engagement.LikeCount)...)
	api.Get("/posts/:id/bookmarks", optional(h.Engagement.BookmarkCount)...)
	api.Get("/users/:id", optional(h.Users.GetUser)...)
	api.Get("/users/:id/stats", h.Discovery.Stats)
	api.Get("/users/:id/following", h.Follows.ListFollowing)
	api.Get("/users/:id/followers", h.Follows.ListFollowers)
	api.Get("/users/:id/posts", optional(h.Posts.ListByAuthor)...)

	// Protected routes
	protected := api.Group("/",
		middleware.AuthRequired(cfg.JWTSecret),
		resolveRole,
		middleware.CSRFRequired(cfg.CSRFMode, cfg.AllowedOrigins),
		limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitTTL,
			Storage:    cfg.LimiterStorage,
			KeyGenerator: func(c *fiber.Ctx) string {
				if uid := middleware.UserID(c); uid != "" {
					return "limiter:user:" + uid
				}
				return "limiter:ip:" + c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return httpx.Error(c, fiber.StatusTooManyRequests, "rate_limited", "Too many requests")
			},
		}),
	)
	protected.Post("/me/sync", h.Users.Sync)
	protected.Get("/me", h.Users.GetCurrentUser)
	protected.Put("/me", h.Users.UpdateProfile)
	protected.Get("/me/feed", h.Discovery.Feed)
	protected.Get("/me/bookmarks", h.Engagement.ListBookmarks)
	protected.Get("/me/history", h.History.ListHistory)
	protected.Post("/me/history", h.History.RecordVisit)
	protected.Delete("/me/history", h.History.ClearHistory)

	protected.Post("/users/:id/follow", h.Follows.ToggleFollow)
	protected.Get("/users/:id/follow", h.Follows.IsFollowing)

	protected.Post("/posts", h.Posts.CreatePost)
	protected.Put("/posts/:id", h.Posts.UpdatePost)
	protected.Delete("/posts/:id", h.Posts.DeletePost)
	protected.Post("/posts/:id/like", h.Engagement.ToggleLike)
	protected.Get("/posts/:id/like", h.Engagement.IsLiked)
	protected.Post("/posts/:id/bookmark", h.Engagement.ToggleBookmark)
	protected.Get("/posts/:id/bookmark", h.Engagement.IsBookmarked)
	protected.Post("/posts/:id/comments", h.Comments.AddComment)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Get("/users", h.Users.ListUsers)
	admin.Put("/users/:id/role", h.Users.UpdateRole)
	admin.Delete("/users/:id", h.Users.DeleteUser)
}
