package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rmehra/billmitra-backend/config"
	"github.com/rmehra/billmitra-backend/internal/app/controller"
	"github.com/rmehra/billmitra-backend/internal/middleware"
)

type Router struct {
	billController    *controller.BillController
	menuController    *controller.MenuController
	profileController *controller.ProfileController
	salesController   *controller.SalesController
	config            *config.Config
}

func NewRouter(
	billController *controller.BillController,
	menuController *controller.MenuController,
	profileController *controller.ProfileController,
	salesController *controller.SalesController,
	cfg *config.Config,
) *Router {
	return &Router{
		billController:    billController,
		menuController:    menuController,
		profileController: profileController,
		salesController:   salesController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BILLMITRA API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		bill := v1.Group("/bill")
		{
			bill.GET("", r.billController.GetBill)
			bill.POST("/items", r.billController.AddItem)
			bill.DELETE("/items/:id", r.billController.RemoveItem)
			bill.PUT("/tax-rate", r.billController.SetTaxRate)
			bill.PUT("/details", r.billController.SetDetails)
			bill.POST("/finalize", r.billController.Finalize)
			bill.POST("/reset", r.billController.ResetBill)
			bill.GET("/text", r.billController.GetBillText)
			bill.GET("/export", r.billController.ExportBill)
		}

		menu := v1.Group("/menu")
		{
			menu.GET("/items", r.menuController.GetItems)
			menu.POST("/items", r.menuController.CreateItem)
			menu.PUT("/items/:id", r.menuController.UpdateItem)
			menu.DELETE("/items/:id", r.menuController.DeleteItem)

			menu.GET("/categories", r.menuController.GetCategories)
			menu.POST("/categories", r.menuController.CreateCategory)
			menu.DELETE("/categories/:id", r.menuController.DeleteCategory)

			menu.GET("/grouped", r.menuController.GetGrouped)
			menu.GET("/export", r.menuController.ExportMenu)
			menu.POST("/import", r.menuController.ImportMenu)
		}

		profile := v1.Group("/profile")
		{
			profile.GET("", r.profileController.GetProfile)
			profile.PUT("", r.profileController.UpdateProfile)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("/summary", r.salesController.GetSummary)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
