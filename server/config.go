package server

import (
	"os"
	"strconv"
	"strings"
)

// Config 保存服务配置，全部来自环境变量（.env 由入口加载）。
type Config struct {
	Port      string
	OutputDir string

	// 远程资源抓取
	FetchTimeoutSeconds int
	MaxFetchMB          int

	// 拟合预算
	FitMaxIterations int
	FitMaxFontSize   float64

	Debug bool
}

// LoadConfig 从环境变量读取配置，缺省时使用默认值。
func LoadConfig() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		OutputDir: getEnv("OUTPUT_DIR", "output"),

		FetchTimeoutSeconds: getEnvInt("FETCH_TIMEOUT_SECONDS", 15),
		MaxFetchMB:          getEnvInt("MAX_FETCH_MB", 20),

		FitMaxIterations: getEnvInt("FIT_MAX_ITERATIONS", 64),
		FitMaxFontSize:   getEnvFloat("FIT_MAX_FONT_SIZE", 0),

		Debug: getEnvBool("DEBUG", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(strings.TrimSpace(value))
		return lower == "1" || lower == "true" || lower == "yes" || lower == "on"
	}
	return defaultValue
}
