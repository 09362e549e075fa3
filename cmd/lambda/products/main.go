package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/handlers"
	"serverless-crud-api/internal/response"
	"serverless-crud-api/pkg/lambda"
)

func init() {
	// Warm the container during the init phase; failures are retried per invocation
	if _, err := lambda.GetConnectionManager().GetContainer(context.Background()); err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := lambda.FromAPIGateway(event)
	if err != nil {
		return lambda.ToAPIGateway(response.BadRequest("Invalid request body encoding")), nil
	}

	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Container unavailable")
		return lambda.ToAPIGateway(response.Error(response.InternalErrorMessage, http.StatusInternalServerError)), nil
	}

	productHandler := handlers.NewProductHandler(container.ProductService, container.Logger)
	resp, err := productHandler.Dispatch(ctx, req)
	if err != nil {
		container.Logger.WithError(err).Error("Unhandled error")
		resp = response.Error(response.InternalErrorMessage, http.StatusInternalServerError)
	}

	return lambda.ToAPIGateway(resp), nil
}

func main() {
	awslambda.Start(handler)
}
