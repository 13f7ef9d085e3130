/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tieubaoca/docextract-be/config"
	"github.com/tieubaoca/docextract-be/handler"
	"github.com/tieubaoca/docextract-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the extraction server",
	Long:  `Starts the HTTP server that accepts document uploads and returns extracted text and table data`,
	Run: func(cmd *cobra.Command, args []string) {

		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize services
		pdfService := service.NewPDFService(cfg.ClassifierConfig)
		ocrService := service.NewOCRService(cfg.OCRConfig)
		officeService := service.NewOfficeService()
		archiveService := service.NewArchiveService()
		dispatchService := service.NewDispatchService(pdfService, officeService, archiveService, ocrService)

		fileService, err := service.NewFileService(cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to init upload storage: %v", err)
		}

		if err := ocrService.Available(); err != nil {
			log.Printf("Warning: %v; scanned documents will be reported as errors", err)
		}

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		healthHandler := handler.NewHealthHandler()
		uploadHandler := handler.NewUploadHandler(fileService, dispatchService, cfg.MaxUploadSize)
		documentHandler := handler.NewDocumentHandler(fileService)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/health", healthHandler.HandleHealth)

		api := router.Group("/api")
		{
			api.POST("/upload", uploadHandler.HandleUpload)
			api.POST("/upload-multiple", uploadHandler.HandleUploadMultiple)
		}

		apiV1 := router.Group("/api/v1")
		{
			apiV1.GET("/documents", documentHandler.ServeDocument)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
