package main

import (
	"ishop/internal/handlers"
	"ishop/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routeDeps struct {
	images    *handlers.ImageHandlers
	products  *handlers.ProductHandlers
	suppliers *handlers.SupplierHandlers
	shippings *handlers.ShippingHandlers
	carts     *handlers.CartHandlers
	health    *handlers.HealthHandlers
	metrics   prometheus.Gatherer
	// authGuard is nil when authentication is disabled.
	authGuard echo.MiddlewareFunc
}

func registerRoutes(e *echo.Echo, d routeDeps) {
	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health and metrics endpoints (no auth required)
	e.GET("/health", d.health.HealthCheck)
	e.GET("/health/live", d.health.LivenessCheck)
	e.GET("/health/ready", d.health.ReadinessCheck)
	e.GET("/health/detailed", d.health.DetailedHealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.metrics, promhttp.HandlerOpts{})))

	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	protected := v1.Group("")
	if d.authGuard != nil {
		protected.Use(d.authGuard)
	}

	// Image routes
	protected.POST("/products/:id/images", d.images.UploadImage)
	protected.GET("/products/:id/images", d.images.ListProductImages)
	protected.GET("/images/:id", d.images.GetImage)
	protected.GET("/images/:id/content", d.images.GetImageContent)
	protected.GET("/images/:id/url", d.images.GetImageURL)
	protected.DELETE("/images/:id", d.images.RemoveImage)

	// Product routes
	protected.GET("/products", d.products.ListProducts)
	protected.POST("/products", d.products.CreateProduct)
	protected.GET("/products/:id", d.products.GetProduct)
	protected.DELETE("/products/:id", d.products.DeleteProduct)

	protected.GET("/suppliers", d.suppliers.ListSuppliers)
	protected.POST("/suppliers", d.suppliers.CreateSupplier)
	protected.GET("/suppliers/:id", d.suppliers.GetSupplier)
	protected.PUT("/suppliers/:id", d.suppliers.UpdateSupplier)
	protected.DELETE("/suppliers/:id", d.suppliers.DeleteSupplier)

	protected.POST("/shippings", d.shippings.CreateShipping)
	protected.GET("/shippings/:id", d.shippings.GetShipping)
	protected.PATCH("/shippings/:id/state", d.shippings.UpdateShippingState)
	protected.DELETE("/shippings/:id", d.shippings.DeleteShipping)
	protected.GET("/orders/:id/shippings", d.shippings.ListOrderShippings)

	protected.POST("/carts", d.carts.SaveCart)
	protected.GET("/carts/:id", d.carts.GetCart)
	protected.DELETE("/carts/:id", d.carts.DeleteCart)
	protected.GET("/users/:id/carts", d.carts.ListUserCarts)
}
