package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"compliance-backend/internal/shared/middleware"
	"compliance-backend/internal/shared/response"
	"compliance-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Unknown verbs on known paths answer 405, e.g. DELETE on a guideline
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)
	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Not found.")
	})
	router.MaxMultipartMemory = 8 << 20
	// Both slash forms are registered, so nothing is redirected
	router.RedirectTrailingSlash = false

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		route(v1, http.MethodGet, "/health", healthCheckHandler(c))

		auth := middleware.AuthMiddleware(c.JWTManager)
		setupGuidelineRoutes(v1, c, auth)
		setupContentRoutes(v1, c, auth)
	}

	return router
}

// route registers path with and without a trailing slash
func route(g *gin.RouterGroup, method, path string, handlers ...gin.HandlerFunc) {
	g.Handle(method, path, handlers...)
	g.Handle(method, path+"/", handlers...)
}

// ========================================
// GUIDELINE ROUTES
// ========================================
func setupGuidelineRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	guidelines := v1.Group("/guidelines", auth)
	{
		route(guidelines, http.MethodGet, "", c.GuidelineHandler.ListGuidelines)
		route(guidelines, http.MethodPost, "", c.GuidelineHandler.CreateGuideline)
		route(guidelines, http.MethodGet, "/:id", c.GuidelineHandler.GetGuideline)
		route(guidelines, http.MethodPut, "/:id", c.GuidelineHandler.ReplaceGuideline)
		route(guidelines, http.MethodPatch, "/:id", c.GuidelineHandler.PatchGuideline)
	}
}

// ========================================
// CONTENT + REVIEW ROUTES
// ========================================
func setupContentRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	content := v1.Group("/content", auth)
	{
		route(content, http.MethodGet, "", c.ContentHandler.ListContents)
		route(content, http.MethodPost, "/upload", c.ContentHandler.UploadContent)
		route(content, http.MethodGet, "/:id", c.ContentHandler.GetContent)
		route(content, http.MethodPatch, "/:id", c.ContentHandler.UpdateContent)

		route(content, http.MethodGet, "/:id/review-status", c.ReviewHandler.ListReviewItems)
		route(content, http.MethodPut, "/:id/review/:review_item_id", c.ReviewHandler.UpdateReviewItem)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{
			"database": probe(ctx, appCtx.DB != nil, func(ctx context.Context) error { return appCtx.DB.HealthCheck(ctx) }),
			"redis":    probe(ctx, appCtx.Redis != nil, func(ctx context.Context) error { return appCtx.Redis.Ping(ctx) }),
			"storage":  probe(ctx, appCtx.Storage != nil, func(ctx context.Context) error { return appCtx.Storage.HealthCheck(ctx) }),
		}

		// Redis only backs the cache and the queue, so the API stays up without it
		statusCode := http.StatusOK
		status := "ok"
		if checks["database"] != "ok" || checks["storage"] != "ok" {
			statusCode = http.StatusServiceUnavailable
			status = "degraded"
		}

		c.JSON(statusCode, gin.H{
			"status":      status,
			"version":     appCtx.Config.App.Version,
			"environment": appCtx.Config.App.Environment,
			"checks":      checks,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func probe(ctx context.Context, configured bool, check func(ctx context.Context) error) string {
	if !configured {
		return "not configured"
	}
	if err := check(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
