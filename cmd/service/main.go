package main

import (
	"flag"
	"log"

	"gitlab.com/touchbase/touchbase-service/internal/config"
	"gitlab.com/touchbase/touchbase-service/internal/service"
)

// Usage example on the command line:
// > DBUSER=touchbase DBPWD=secret DBHOST=localhost:3306 JWT_SECRET=changeme GIN_MODE=release go run main.go
func main() {
	configPath := flag.String("config", "", "path to an optional config YAML file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	sqlDB := service.CreateDatabase(cfg)
	service.SetupDatabaseWrapper(sqlDB)
	router := service.SetupHttpRouter(cfg)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
