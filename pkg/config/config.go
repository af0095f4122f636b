package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	FirebaseProject            string
	FirebaseAPIKey             string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	StorageBucket          string
	ClientUploadsPrefix    string
	ServiceDocumentsPrefix string
	MaxUploadBytes         int64

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	PaymentCurrency   string
	GSTPercent        int64

	LLMGatewayURL     string
	LLMAPIKey         string
	LLMModel          string
	ChatRatePerMinute int

	OTLPEndpoint     string
	CORSAllowOrigins []string
}

func Load() (*Config, error) {
	// a missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseAPIKey:             getEnv("FIREBASE_API_KEY", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		StorageBucket:          getEnv("STORAGE_BUCKET", ""),
		ClientUploadsPrefix:    getEnv("CLIENT_UPLOADS_PREFIX", "client-uploads"),
		ServiceDocumentsPrefix: getEnv("SERVICE_DOCUMENTS_PREFIX", "service-documents"),
		MaxUploadBytes:         getEnvAsInt64("MAX_UPLOAD_BYTES", 10*1024*1024),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		PaymentCurrency:   getEnv("PAYMENT_CURRENCY", "INR"),
		GSTPercent:        getEnvAsInt64("GST_PERCENT", 18),

		LLMGatewayURL:     getEnv("LLM_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		LLMAPIKey:         getEnv("LLM_API_KEY", ""),
		LLMModel:          getEnv("LLM_MODEL", "google/gemini-3-flash-preview"),
		ChatRatePerMinute: int(getEnvAsInt64("CHAT_RATE_PER_MINUTE", 20)),

		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate reports the settings the API cannot start without. Outside
// production only the Firebase project is mandatory.
func (c *Config) Validate() error {
	var missing []string
	if c.FirebaseProject == "" {
		missing = append(missing, "FIREBASE_PROJECT_ID")
	}
	if c.IsProduction() {
		required := map[string]string{
			"FIREBASE_API_KEY":    c.FirebaseAPIKey,
			"STORAGE_BUCKET":      c.StorageBucket,
			"RAZORPAY_KEY_ID":     c.RazorpayKeyID,
			"RAZORPAY_KEY_SECRET": c.RazorpayKeySecret,
			"LLM_API_KEY":         c.LLMAPIKey,
		}
		for _, key := range []string{"FIREBASE_API_KEY", "STORAGE_BUCKET", "RAZORPAY_KEY_ID", "RAZORPAY_KEY_SECRET", "LLM_API_KEY"} {
			if required[key] == "" {
				missing = append(missing, key)
			}
		}
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
