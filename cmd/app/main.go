package main

import (
	"github.com/Shrvnsthr/Event-Booking/config"
	"github.com/Shrvnsthr/Event-Booking/internal/appServer"

	"github.com/sirupsen/logrus"
)

func main() {
	v, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	cfg, err := config.ParseConfig(v)
	if err != nil {
		logrus.Fatalf("Failed to parse config: %v", err)
	}

	appServer.NewServer(cfg)
}
