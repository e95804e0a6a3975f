package api

import (
	"parking_admin/internal/api/handler"
	"parking_admin/internal/api/middleware"
	"parking_admin/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRouter dựng toàn bộ HTTP surface. authMw có thể nil khi JWT_SECRET
// không được cấu hình; khi đó endpoint xóa bản ghi mở như các endpoint khác.
func SetupRouter(ps *service.ParkingService, pays *service.PaymentService,
	gateway service.PaymentGateway, as *service.AuthService,
	authMw *middleware.AuthMiddleware, corsOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(corsOrigins))

	parkingH := handler.NewParkingHandler(ps)
	paymentH := handler.NewPaymentHandler(pays)
	webhookH := handler.NewWebhookHandler(pays, gateway)

	apiRoutes := r.Group("/api")
	{
		apiRoutes.POST("/checkin", parkingH.CheckIn)
		apiRoutes.POST("/checkout", parkingH.CheckOut)
		apiRoutes.GET("/records", parkingH.ListRecords)
		apiRoutes.POST("/create-order", paymentH.CreateOrder)

		if authMw != nil {
			// Xóa bản ghi là thao tác admin, yêu cầu token khi auth được bật
			apiRoutes.DELETE("/records/:id", authMw.Authenticate(), authMw.AuthorizeRole("admin"), parkingH.DeleteRecord)
		} else {
			apiRoutes.DELETE("/records/:id", parkingH.DeleteRecord)
		}
	}

	// Webhook nằm ngoài /api: không CORS-sensitive, không auth, cần body thô
	r.POST("/webhooks/razorpay", webhookH.HandleRazorpay)

	if as != nil {
		authH := handler.NewAuthHandler(as)
		authRoutes := r.Group("/auth")
		{
			authRoutes.POST("/register", authH.Register)
			authRoutes.POST("/login", authH.Login)
		}
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
