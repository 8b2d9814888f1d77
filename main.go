package main

import (
	"github.com/yigaglobal/fellowship_service/config"
	"github.com/yigaglobal/fellowship_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
