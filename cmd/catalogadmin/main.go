// Package main is the entry point for the catalog admin service and editor.
//
// @title Catalog Admin API
// @version 1.0
// @description Product and category endpoints backing the catalog admin editor.
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init --parseInternal -d ../../ -g cmd/catalogadmin/main.go -o ../../docs --outputTypes go

import "github.com/yourorg/catalogadmin/cmd/catalogadmin/cmd"

func main() {
	cmd.Execute()
}
