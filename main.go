package main

import (
	"github.com/quillapi/quill/config"
	"github.com/quillapi/quill/models"
	"github.com/quillapi/quill/routes"
	"github.com/quillapi/quill/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db, err := config.InitDatabase(cfg, &models.User{}, &models.Blog{}, &models.PageView{})
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			utils.Sugar.Errorf("database close failed: %v", err)
		}
		utils.CloseRedis()
	}()

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
