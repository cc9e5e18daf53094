package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	PortEnv     = "PORT"
	DefaultPort = 3001
)

type Config struct {
	Port int
}

// Load reads the configuration from the environment, after loading a .env file
// from the working directory when there is one. Variables already set in the
// environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
		log.Println("No .env file found, using the process environment")
	}

	port, err := ParsePort(os.Getenv(PortEnv))
	if err != nil {
		return Config{}, err
	}
	return Config{Port: port}, nil
}

// ParsePort validates a port value; empty means DefaultPort
func ParsePort(v string) (int, error) {
	if v == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", PortEnv, v, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid %s %d: out of range", PortEnv, port)
	}
	return port, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
