package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	CORSOrigins []string // danh sách origin được phép; rỗng nghĩa là cho phép tất cả

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	AdminPhone       string // số điện thoại admin nhận SMS thông báo

	JWTSecret          string        // Secret key cho JWT, để trống thì tắt auth
	JWTExpirationHours time.Duration // Thời gian hết hạn của JWT
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Cảnh báo: Không thể tải file .env: %v", err)
	}

	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24")) // Mặc định 24 giờ

	var corsOrigins []string
	for _, o := range strings.Split(getEnv("CORS_ORIGIN", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "./parking.db"),
		CORSOrigins: corsOrigins,

		RazorpayKeyID:         getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:       getEnv("TWILIO_FROM", ""),
		AdminPhone:       getEnv("ADMIN_PHONE", ""),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpirationHours: time.Duration(jwtExpHours) * time.Hour,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if fallback != "" {
		log.Printf("Biến môi trường '%s' không được đặt, sử dụng giá trị mặc định: '%s'", key, fallback)
	}
	return fallback
}
