package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking_admin/internal/api"
	"parking_admin/internal/api/middleware"
	"parking_admin/internal/config"
	"parking_admin/internal/repository/sqlite"
	"parking_admin/internal/service"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Cấu hình đã được tải.")

	// 2. Setup Database Connection
	db, err := sqlite.NewDB(cfg)
	if err != nil {
		log.Fatalf("Không thể mở database: %v", err)
	}
	defer db.Close()
	log.Println("Đã mở database:", cfg.DBPath)

	// 3. Initialize Repositories
	visitRepo := sqlite.NewVisitRepository(db)
	paymentRepo := sqlite.NewPaymentRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	// 4. Initialize external gateways (thiếu credential thì degrade, không fail)
	smsService := service.NewSMSService(cfg)
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		log.Println("CẢNH BÁO: Twilio chưa được cấu hình. SMS thông báo sẽ bị bỏ qua.")
	}
	razorpayService := service.NewRazorpayService(cfg)
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("CẢNH BÁO: Razorpay chưa được cấu hình. Tạo order thanh toán sẽ thất bại.")
	}

	// 5. Initialize Services
	parkingService := service.NewParkingService(visitRepo, smsService, cfg.AdminPhone)
	paymentService := service.NewPaymentService(paymentRepo, razorpayService, smsService, cfg.AdminPhone)

	var authService *service.AuthService
	var authMiddleware *middleware.AuthMiddleware
	if cfg.JWTSecret != "" {
		authService = service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
		authMiddleware = middleware.NewAuthMiddleware(authService)
	} else {
		log.Println("CẢNH BÁO: JWT_SECRET chưa được cấu hình. Các endpoint admin không yêu cầu đăng nhập.")
	}

	// 6. Setup HTTP Router
	router := api.SetupRouter(parkingService, paymentService, razorpayService, authService, authMiddleware, cfg.CORSOrigins)

	// 7. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server đang chạy trên port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Lỗi ListenAndServe(): %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Đang tắt server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server buộc phải tắt: %v", err)
	}

	log.Println("Server đã tắt.")
}
