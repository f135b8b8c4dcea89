package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Branding holds the business details printed on generated invoices
type Branding struct {
	Name       string
	Address    string
	Phone      string
	GSTIN      string
	Email      string
	Website    string
	LogoPath   string
	LogoWidth  float64
	LogoHeight float64
}

// Config holds all server configuration
type Config struct {
	Port            int
	DataPath        string // Path to the restaurant knowledge text file
	IndexFile       string // Optional chat UI served at /
	MenuImagesDir   string // Static assets served at /menu-images/
	GeminiAPIKey    string // Optional: engine degrades to retrieval-only when missing
	ModelName       string
	TopKContext     int // Lines of retrieval context fed to the model
	GenerateTimeout time.Duration
	RedisURL        string
	RedisPassword   string
	SessionTimeout  time.Duration
	AllowedOrigins  []string
	Invoice         Branding
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:            8080,
		DataPath:        "data/restaurant.txt",
		IndexFile:       "index.html",
		MenuImagesDir:   "data/menu_images",
		ModelName:       "gemini-2.5-flash",
		TopKContext:     12,
		GenerateTimeout: 30 * time.Second,
		RedisURL:        "localhost:6379",
		RedisPassword:   "",
		SessionTimeout:  30 * time.Minute,
		AllowedOrigins:  []string{"*"},
		Invoice: Branding{
			Name:       "CloudNest Restaurant",
			Address:    "India",
			Phone:      "+91 98765 43210",
			GSTIN:      "29ABCDE1234F1Z5",
			Email:      "support@cloudnest.example",
			Website:    "www.cloudnest.example",
			LogoPath:   "data/invoice_logo.png",
			LogoWidth:  42,
			LogoHeight: 42,
		},
	}

	// Optional: GEMINI_API_KEY (retrieval-only mode when absent)
	config.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: DATA_PATH
	if dataPath := os.Getenv("DATA_PATH"); dataPath != "" {
		config.DataPath = dataPath
	}

	// Optional: INDEX_FILE
	if indexFile := os.Getenv("INDEX_FILE"); indexFile != "" {
		config.IndexFile = indexFile
	}

	// Optional: MENU_IMAGES_DIR
	if dir := os.Getenv("MENU_IMAGES_DIR"); dir != "" {
		config.MenuImagesDir = dir
	}

	// Optional: MODEL_NAME
	if model := os.Getenv("MODEL_NAME"); model != "" {
		config.ModelName = model
	}

	// Optional: TOP_K_CONTEXT_LINES
	if topK := os.Getenv("TOP_K_CONTEXT_LINES"); topK != "" {
		k, err := strconv.Atoi(topK)
		if err != nil {
			return nil, fmt.Errorf("invalid TOP_K_CONTEXT_LINES: %w", err)
		}
		config.TopKContext = k
	}

	// Optional: GENERATE_TIMEOUT (in seconds)
	if timeout := os.Getenv("GENERATE_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATE_TIMEOUT: %w", err)
		}
		config.GenerateTimeout = time.Duration(t) * time.Second
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Invoice branding overrides
	if name := os.Getenv("RESTAURANT_NAME"); name != "" {
		config.Invoice.Name = name
	}
	if address := os.Getenv("RESTAURANT_ADDRESS"); address != "" {
		config.Invoice.Address = address
	}
	if phone := os.Getenv("RESTAURANT_PHONE"); phone != "" {
		config.Invoice.Phone = phone
	}
	if gstin := os.Getenv("RESTAURANT_GSTIN"); gstin != "" {
		config.Invoice.GSTIN = gstin
	}
	if email := os.Getenv("RESTAURANT_EMAIL"); email != "" {
		config.Invoice.Email = email
	}
	if website := os.Getenv("RESTAURANT_WEBSITE"); website != "" {
		config.Invoice.Website = website
	}
	if logoPath := os.Getenv("INVOICE_LOGO_PATH"); logoPath != "" {
		config.Invoice.LogoPath = strings.TrimSpace(logoPath)
	}
	if logoWidth := os.Getenv("INVOICE_LOGO_WIDTH"); logoWidth != "" {
		w, err := strconv.ParseFloat(logoWidth, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid INVOICE_LOGO_WIDTH: %w", err)
		}
		config.Invoice.LogoWidth = w
	}
	if logoHeight := os.Getenv("INVOICE_LOGO_HEIGHT"); logoHeight != "" {
		h, err := strconv.ParseFloat(logoHeight, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid INVOICE_LOGO_HEIGHT: %w", err)
		}
		config.Invoice.LogoHeight = h
	}

	return config, nil
}
