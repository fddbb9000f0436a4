package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// DefaultPort Порт, на котором сервер слушает по умолчанию.
const DefaultPort = 8000

// Config Конфигурация сервера статики.
type Config struct {
	Port      int
	LogLevel  string
	LogOutput string
}

// InitConfig Инициализация структуры, содержащей конфигурацию сервера, полученную из флагов или
// переменных окружения.
func InitConfig() (*Config, error) {
	config := &Config{}

	flag.IntVar(&config.Port, "port", DefaultPort, "Port to serve on")
	flag.StringVar(&config.LogLevel, "ll", "Info", "Log level for logging (example: Debug, Info, Warn, Error)")
	flag.StringVar(&config.LogOutput, "lo", "stdout", "Log output (stdout, stderr or path to a log file)")
	flag.Parse()

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Переопределение конфигурации переменными окружения (имеют приоритет над флагами).
func applyEnv(config *Config) error {
	if value, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("некорректное значение переменной окружения PORT %q: %w", value, err)
		}
		config.Port = port
	}

	if value, ok := os.LookupEnv("LOG_LEVEL"); ok {
		config.LogLevel = value
	}

	if value, ok := os.LookupEnv("LOG_OUTPUT"); ok {
		config.LogOutput = value
	}

	return nil
}

// Addr Адрес, на котором сервер слушает входящие соединения.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// URL Человекочитаемый адрес сервера для вывода при старте.
func (c *Config) URL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
