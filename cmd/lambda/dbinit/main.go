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

// handler runs the schema initializer. It accepts any event so it can be
// invoked directly or through API Gateway.
func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Container unavailable")
		return lambda.ToAPIGateway(response.Error(err.Error(), http.StatusInternalServerError)), nil
	}

	databaseHandler := handlers.NewDatabaseHandler(container.Initializer, container.Logger)
	resp, err := databaseHandler.HandleInitialize(ctx, &lambda.Request{
		Method:    event.HTTPMethod,
		Path:      event.Path,
		RequestID: event.RequestContext.RequestID,
	})
	if err != nil {
		resp = response.Error(err.Error(), http.StatusInternalServerError)
	}

	return lambda.ToAPIGateway(resp), nil
}

func main() {
	awslambda.Start(handler)
}
