package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"

	"github.com/pllus/main-blog/config"
	_ "github.com/pllus/main-blog/docs"
	"github.com/pllus/main-blog/internal/controllers"
	"github.com/pllus/main-blog/internal/middleware"
	"github.com/pllus/main-blog/internal/repository"
	"github.com/pllus/main-blog/internal/services"
	"github.com/pllus/main-blog/internal/utils"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Config config.Config
	Users  repository.UserRepository
	Posts  repository.BlogRepository
	// HashCost overrides the bcrypt cost; zero keeps the default.
	HashCost int
}

// NewApp builds the Fiber app with every route mounted. API routes are
// registered before the static handler so /users and /blogs never fall
// through to the file system.
func NewApp(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:      "main-blog",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FrontendOrigins,
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Authorization",
	}))

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// Swagger API document
	app.Get("/docs/*", swagger.HandlerDefault)

	var mask *utils.ProfanityFilter
	if cfg.MaskProfanity {
		mask = utils.NewProfanityFilter(cfg.ProfanityWords...)
	}

	SetupRoutesUser(app, &controllers.UserHandler{
		Svc: &services.UserService{
			Users:    d.Users,
			Timeout:  cfg.StoreTimeout,
			HashCost: d.HashCost,
		},
		Tokens: services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
	})
	SetupRoutesBlog(app, &controllers.BlogHandler{
		Svc: &services.BlogService{
			Posts:   d.Posts,
			Users:   d.Users,
			Mask:    mask,
			Timeout: cfg.StoreTimeout,
		},
	}, middleware.JWTUidOnly(cfg.JWTSecret))

	if cfg.StaticDir != "" {
		SetupStatic(app, cfg.StaticDir)
	}
	return app
}
