// Package main é o ponto de entrada do servidor do catálogo de modelos.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renanbrackmann-glitch/modelfinder/internal/config"
	"github.com/renanbrackmann-glitch/modelfinder/internal/handler"
	"github.com/renanbrackmann-glitch/modelfinder/internal/middleware"
	"github.com/renanbrackmann-glitch/modelfinder/internal/repository"
	"github.com/renanbrackmann-glitch/modelfinder/internal/service"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/database"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/extract"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/llm"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/storage"
)

func main() {
	// 1. Configuração
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. Logger
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("logger inicializado")

	// 3. Banco de dados, Redis e object storage
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err := database.RunMigrate(); err != nil {
		log.Fatal("falha na migração do banco de dados", err)
	}
	storage.InitMinIO(cfg.MinIO)

	// 4. Repositórios
	modeloRepo := repository.NewModeloRepository(database.DB, database.RDB)
	pageGroupRepo := repository.NewPageGroupRepository(database.DB)
	settingRepo := repository.NewSettingRepository(database.DB)

	// 5. Clientes externos e serviços
	extractClient := extract.NewClient(cfg.Tika)
	llmClient := llm.NewClient(cfg.LLM)

	catalogoService := service.NewCatalogoService(modeloRepo)
	searchService := service.NewSearchService(modeloRepo)
	analiseService := service.NewAnaliseService(modeloRepo, extractClient, llmClient)
	adminService := service.NewAdminService(settingRepo, pageGroupRepo, cfg.Admin.DefaultPassword)

	// 6. Router
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	modeloHandler := handler.NewModeloHandler(catalogoService, searchService)
	analiseHandler := handler.NewAnaliseHandler(analiseService)
	adminHandler := handler.NewAdminHandler(adminService)

	api := r.Group("/api")
	{
		// Rotas públicas de consulta
		api.GET("/models", modeloHandler.List)
		api.GET("/models/search", modeloHandler.Search)
		api.GET("/models/:id", modeloHandler.Get)
		api.GET("/tags", modeloHandler.Tags)
		api.GET("/page-groups", adminHandler.ListarGrupos)
		api.POST("/analyze-pdf", analiseHandler.AnalisarPDF)

		// Verificação de senha: pública por definição, valida a credencial
		// recebida no corpo.
		api.POST("/admin/verify-password", adminHandler.VerificarSenha)

		// Importações protegidas pela credencial compartilhada
		uploads := api.Group("/models", middleware.AdminAuth(adminService))
		{
			uploads.POST("/upload", modeloHandler.Upload)
			uploads.POST("/upload-content", modeloHandler.UploadConteudo)
		}

		// Administração
		admin := api.Group("/admin", middleware.AdminAuth(adminService))
		{
			admin.PUT("/models/:id/tags", modeloHandler.AtualizarTags)
			admin.PUT("/models/:id/reset-tags", modeloHandler.ReverterTags)
			admin.PUT("/page-groups", adminHandler.SalvarGrupos)
			admin.PUT("/password", adminHandler.AlterarSenha)
		}
	}

	// 7. Servidor HTTP com parada graciosa
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("servidor escutando em %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("falha ao escutar HTTP: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("sinal de parada recebido, encerrando o servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("falha ao encerrar o servidor HTTP: %v", err)
	}

	log.Info("servidor encerrado")
}
