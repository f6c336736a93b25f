package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"approval-matrix-service/internal/cli"
	"approval-matrix-service/internal/config"
	"approval-matrix-service/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	// MATRIX_CONFIG_PATH applies here as it does for the server
	matrix, err := config.LoadMatrix(config.Load())
	if err != nil {
		return fmt.Errorf("loading approval matrix: %w", err)
	}

	app := &cli.App{Service: services.NewApprovalMatrixService(matrix)}
	return cli.NewRootCmd(app).Execute()
}
