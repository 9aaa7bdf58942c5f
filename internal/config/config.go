package config

import (
	"github.com/spf13/viper"
)

// Config holds every setting the application reads from the environment.
// It is built once in main and passed by reference; request handlers never
// touch the environment themselves.
type Config struct {
	AppPort     string
	LocalDBPath string

	// Remote tracker store. Empty means the tracker table falls back to the
	// local sqlite database (degraded single-node mode).
	TrackerDSN string

	// Spreadsheet backup endpoints, one per sheet. Empty disables the
	// backup push / startup restore for that collection.
	SheetWaitlistURL string
	SheetReviewsURL  string

	// Face/skin analysis API.
	VisionAPIURL    string
	VisionAPIKey    string
	VisionAPISecret string

	// Air quality API.
	WeatherAPIURL string
	WeatherAPIKey string

	// Generative ingredient-analysis API.
	GenAIURL string
	GenAIKey string

	// Mail relay for waitlist confirmation emails.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Optional event mirror.
	AMQPURL string

	// Side-effect dispatcher.
	QueueSize int
	Workers   int

	LogLevel string
	LogPath  string
}

// Load builds the Config from environment variables with viper defaults.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("LOCAL_DB_PATH", "skincache.db")
	viper.SetDefault("VISION_API_URL", "https://api-us.faceplusplus.com/facepp/v3/detect")
	viper.SetDefault("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/air_pollution")
	viper.SetDefault("GENAI_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("QUEUE_SIZE", 64)
	viper.SetDefault("WORKERS", 2)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	return &Config{
		AppPort:          viper.GetString("APP_PORT"),
		LocalDBPath:      viper.GetString("LOCAL_DB_PATH"),
		TrackerDSN:       viper.GetString("TRACKER_DSN"),
		SheetWaitlistURL: viper.GetString("SHEET_WAITLIST_URL"),
		SheetReviewsURL:  viper.GetString("SHEET_REVIEWS_URL"),
		VisionAPIURL:     viper.GetString("VISION_API_URL"),
		VisionAPIKey:     viper.GetString("VISION_API_KEY"),
		VisionAPISecret:  viper.GetString("VISION_API_SECRET"),
		WeatherAPIURL:    viper.GetString("WEATHER_API_URL"),
		WeatherAPIKey:    viper.GetString("WEATHER_API_KEY"),
		GenAIURL:         viper.GetString("GENAI_URL"),
		GenAIKey:         viper.GetString("GENAI_KEY"),
		SMTPHost:         viper.GetString("SMTP_HOST"),
		SMTPPort:         viper.GetInt("SMTP_PORT"),
		SMTPUsername:     viper.GetString("SMTP_USERNAME"),
		SMTPPassword:     viper.GetString("SMTP_PASSWORD"),
		SMTPFrom:         viper.GetString("SMTP_FROM"),
		AMQPURL:          viper.GetString("AMQP_URL"),
		QueueSize:        viper.GetInt("QUEUE_SIZE"),
		Workers:          viper.GetInt("WORKERS"),
		LogLevel:         viper.GetString("LOG_LEVEL"),
		LogPath:          viper.GetString("LOG_PATH"),
	}
}
