package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/rogerio-castellano/furniture-storefront/docs"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/ban"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/handlers"
	mw "github.com/rogerio-castellano/furniture-storefront/internal/http/middleware"
	rl "github.com/rogerio-castellano/furniture-storefront/internal/http/rate_limiter"
)

// Options carries the limiters and shared services the routes are guarded by.
// A nil limiter leaves its routes unlimited.
type Options struct {
	ReadLimiter   rl.Limiter
	WriteLimiter  rl.Limiter
	UploadLimiter rl.Limiter
	Recorder      ban.Recorder
	Logger        *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := func(l rl.Limiter, scope string) func(http.Handler) http.Handler {
		if l == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return mw.RateLimit(l, scope, opts.Recorder, logger)
	}
	read := limit(opts.ReadLimiter, "read")
	write := limit(opts.WriteLimiter, "write")
	upload := limit(opts.UploadLimiter, "upload")

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(mw.Authenticate)

	r.Get("/health", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Public reads
	r.Group(func(r chi.Router) {
		r.Use(read)
		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/price-range", handlers.GetPriceRangeHandler)
		r.Get("/products/{slug}", handlers.GetProductBySlugHandler)
		r.Get("/taxonomy", handlers.GetTaxonomyHandler)
		r.Get("/categories/{slug}", handlers.GetCategoryHandler)
		r.Get("/slides", handlers.GetSlidesHandler)
		r.Get("/translations/{locale}", handlers.GetTranslationsHandler)
	})

	// Accounts
	r.Group(func(r chi.Router) {
		r.Use(write)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
		r.Post("/logout", handlers.LogoutHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.With(read).Get("/me", handlers.GetMeHandler)
		r.With(write).Put("/me", handlers.UpdateMeHandler)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.RequireAdmin)

		r.Group(func(r chi.Router) {
			r.Use(read)
			r.Get("/products/{id}", handlers.GetProductByIDHandler)
			r.Get("/slides", handlers.ListAllSlidesHandler)
			r.Get("/users", handlers.ListUsersHandler)
			r.Get("/metrics", handlers.GetDashboardMetricsHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(write)
			r.Post("/products", handlers.CreateProductHandler)
			r.Post("/products/import", handlers.ImportProductsHandler)
			r.Put("/products/{id}", handlers.UpdateProductHandler)
			r.Delete("/products/{id}", handlers.DeleteProductHandler)
			r.Post("/products/{id}/stock", handlers.AdjustStockHandler)

			r.Post("/groups", handlers.CreateGroupHandler)
			r.Put("/groups/{id}", handlers.UpdateGroupHandler)
			r.Delete("/groups/{id}", handlers.DeleteGroupHandler)
			r.Post("/categories", handlers.CreateCategoryHandler)
			r.Put("/categories/{id}", handlers.UpdateCategoryHandler)
			r.Delete("/categories/{id}", handlers.DeleteCategoryHandler)
			r.Post("/subcategories", handlers.CreateSubcategoryHandler)
			r.Put("/subcategories/{id}", handlers.UpdateSubcategoryHandler)
			r.Delete("/subcategories/{id}", handlers.DeleteSubcategoryHandler)

			r.Post("/slides", handlers.CreateSlideHandler)
			r.Put("/slides/{id}", handlers.UpdateSlideHandler)
			r.Delete("/slides/{id}", handlers.DeleteSlideHandler)

			r.Put("/translations/{locale}/{key}", handlers.UpsertTranslationHandler)
			r.Delete("/translations/{locale}/{key}", handlers.DeleteTranslationHandler)

			r.Post("/users", handlers.CreateUserHandler)
			r.Put("/users/{id}/role", handlers.SetUserRoleHandler)
		})

		r.With(upload).Post("/uploads", handlers.UploadImageHandler)
	})

	return r
}
