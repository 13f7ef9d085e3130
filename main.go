/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/docextract-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; config falls back to defaults and process env.
	_ = godotenv.Load()
}
