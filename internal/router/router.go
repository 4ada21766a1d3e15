package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nikka005/nirbani-sub001/internal/billing"
	"github.com/nikka005/nirbani-sub001/internal/config"
	"github.com/nikka005/nirbani-sub001/internal/handler"
	"github.com/nikka005/nirbani-sub001/internal/middleware"
	"github.com/nikka005/nirbani-sub001/internal/sms"
)

// Setup wires all routes and returns the engine.
func Setup(db *gorm.DB, cfg *config.Config, smsClient *sms.Client, renderer *billing.Renderer, log *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.Origins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORS.Origins
	}
	r.Use(cors.New(corsCfg))

	authHandler := handler.NewAuthHandler(db)
	farmerHandler := handler.NewFarmerHandler(db)
	collectionHandler := handler.NewCollectionHandler(db, smsClient, log)
	rateChartHandler := handler.NewRateChartHandler(db)
	paymentHandler := handler.NewPaymentHandler(db, smsClient, log)
	plantHandler := handler.NewDairyPlantHandler(db, renderer)
	dispatchHandler := handler.NewDispatchHandler(db)
	dairyPaymentHandler := handler.NewDairyPaymentHandler(db)
	dashboardHandler := handler.NewDashboardHandler(db)
	reportHandler := handler.NewReportHandler(db, renderer)
	billHandler := handler.NewBillHandler(db, renderer)
	expenseHandler := handler.NewExpenseHandler(db)
	exportHandler := handler.NewExportHandler(db)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
	}

	auth := api.Group("")
	auth.Use(middleware.JWTAuth(db), middleware.Audit(db, log))
	{
		auth.GET("/auth/me", authHandler.Me)

		auth.POST("/farmers", farmerHandler.Create)
		auth.GET("/farmers", farmerHandler.List)
		auth.GET("/farmers/:id", farmerHandler.Get)
		auth.PUT("/farmers/:id", farmerHandler.Update)
		auth.DELETE("/farmers/:id", farmerHandler.Delete)
		auth.GET("/farmers/:id/ledger", farmerHandler.Ledger)

		auth.POST("/collections", collectionHandler.Create)
		auth.GET("/collections", collectionHandler.List)
		auth.GET("/collections/today", collectionHandler.Today)
		auth.DELETE("/collections/:id", collectionHandler.Delete)

		auth.POST("/rate-charts", rateChartHandler.Create)
		auth.GET("/rate-charts", rateChartHandler.List)
		auth.GET("/rate-charts/default", rateChartHandler.Default)
		auth.PUT("/rate-charts/:id", rateChartHandler.Update)
		auth.DELETE("/rate-charts/:id", rateChartHandler.Delete)
		auth.POST("/rate-charts/calculate-rate", rateChartHandler.CalculateRate)

		auth.POST("/payments", paymentHandler.Create)
		auth.GET("/payments", paymentHandler.List)
		auth.DELETE("/payments/:id", paymentHandler.Delete)

		auth.POST("/dairy-plants", plantHandler.Create)
		auth.GET("/dairy-plants", plantHandler.List)
		auth.GET("/dairy-plants/:id", plantHandler.Get)
		auth.PUT("/dairy-plants/:id", plantHandler.Update)
		auth.GET("/dairy-plants/:id/ledger", plantHandler.Ledger)
		auth.GET("/dairy-plants/:id/statement", plantHandler.Statement)

		auth.POST("/dispatches", dispatchHandler.Create)
		auth.GET("/dispatches", dispatchHandler.List)
		auth.GET("/dispatches/:id", dispatchHandler.Get)
		auth.PUT("/dispatches/:id/slip-match", dispatchHandler.SlipMatch)
		auth.DELETE("/dispatches/:id", dispatchHandler.Delete)

		auth.POST("/dairy-payments", dairyPaymentHandler.Create)
		auth.GET("/dairy-payments", dairyPaymentHandler.List)
		auth.DELETE("/dairy-payments/:id", dairyPaymentHandler.Delete)

		auth.GET("/dashboard/stats", dashboardHandler.Stats)
		auth.GET("/dashboard/weekly-stats", dashboardHandler.WeeklyStats)

		auth.GET("/reports/daily", reportHandler.Daily)
		auth.GET("/reports/farmer", reportHandler.Farmer)
		auth.GET("/reports/farmer/:id", reportHandler.FarmerDetail)
		auth.GET("/dairy/profit-report", reportHandler.Profit)
		auth.GET("/dairy/fat-analysis", reportHandler.FatAnalysis)

		auth.GET("/bills/farmer/:id", billHandler.FarmerBill)
		auth.GET("/bills/thermal/:id", billHandler.ThermalBill)
		auth.GET("/bills/a4/:id", billHandler.A4Bill)
		auth.GET("/share/farmer-bill/:id", billHandler.Share)

		auth.POST("/expenses", expenseHandler.Create)
		auth.GET("/expenses", expenseHandler.List)
		auth.DELETE("/expenses/:id", expenseHandler.Delete)

		auth.GET("/exports/collections", exportHandler.Collections)
		auth.GET("/exports/payments", exportHandler.Payments)
		auth.GET("/exports/dispatches", exportHandler.Dispatches)
		auth.GET("/exports/farmers", exportHandler.Farmers)
		auth.GET("/exports/farmer-ledger/:id", exportHandler.FarmerLedger)
	}

	return r
}
