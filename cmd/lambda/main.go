package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/mindpop-lambda/internal/config"
	"github.com/saulo-duarte/mindpop-lambda/internal/container"
)

var adapter *httpadapter.HandlerAdapter

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	ctx := context.Background()

	c, err := container.New(ctx)
	if err != nil {
		config.Logger.WithError(err).Fatal("Falha ao iniciar")
	}
	c.Run(ctx)

	adapter = httpadapter.New(c.Handler())
	lambda.Start(handler)
}
