package handlers

// @title Serverless CRUD API
// @version 1.0
// @description Users and products CRUD served from AWS Lambda or a local gin server

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name users
// @tag.description User management operations

// @tag.name products
// @tag.description Product catalog operations

// @tag.name admin
// @tag.description Schema administration
