/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/docextract-be/config"
	"github.com/tieubaoca/docextract-be/service"
	"github.com/tieubaoca/docextract-be/types"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a local file or archive to JSON",
	Long: `Runs the extraction pipeline against a local document or ZIP archive
and writes the resulting ExtractionResult JSON to disk.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		outputPath, _ := cmd.Flags().GetString("output")
		if filePath == "" {
			log.Fatal("missing required flag: --file")
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", filePath, err)
		}

		cfg := config.DefaultConfig()
		pdfService := service.NewPDFService(cfg.ClassifierConfig)
		ocrService := service.NewOCRService(cfg.OCRConfig)
		officeService := service.NewOfficeService()
		archiveService := service.NewArchiveService()
		dispatchService := service.NewDispatchService(pdfService, officeService, archiveService, ocrService)

		fileName := filepath.Base(filePath)
		format := service.DetectFormat(fileName, content)
		docs := dispatchService.Process(fileName, content)
		result := types.NewExtractionResult(fileName, format, docs)

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", outputPath, err)
		}
		log.Printf("Extracted %d document(s) to %s", result.TotalDocuments, outputPath)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("file", "f", "", "Path to the file or archive to extract")
	extractCmd.Flags().StringP("output", "o", "extracted_data.json", "Output JSON file")
}
