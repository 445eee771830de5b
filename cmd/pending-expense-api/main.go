// pending-expense-api is the AWS Lambda (or Netlify function) entry point for the pending
// expense API. Configuration is taken from the environment and, optionally, the file named
// by PENDING_EXPENSE_CONFIG.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/pending-expense/pending-expense-app/api"
	"github.com/pending-expense/pending-expense-app/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	defer logger.Sync()

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	h := api.NewHandler(cfg, api.Connect, logger)

	lambda.Start(h.Lambda)
}
