package main

import (
	"invoices/internal/cli"
	"os"

	"github.com/sirupsen/logrus"
)

// @title Invoices API
// @version 1.0
// @description CRUD over invoices with on-demand currency conversion.
// @BasePath /api/v1
func main() {
	if err := cli.Execute(); err != nil {
		logrus.WithError(err).Error("invoices exited with error")
		os.Exit(1)
	}
}
