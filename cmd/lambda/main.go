package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"demo/foodorders/internal/app"
	"demo/foodorders/internal/config"
	"demo/foodorders/internal/httpapi"
	"demo/foodorders/internal/telemetry"
)

func main() {
	cfg, err := config.Load(config.BackendDynamoDB)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := telemetry.NewLogger(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	if _, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTelEndpoint); err != nil {
		logger.Error("tracer setup failed", "error", err)
		os.Exit(1)
	}

	// Built once per cold start and reused across invocations.
	root, err := app.NewCompositionRoot(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}

	lambda.Start(withFlush(httpapi.LambdaHandler(root.Handler()), telemetry.ForceFlush, logger))
}

// withFlush exports buffered spans before each invocation returns; the
// execution environment may be frozen right after.
func withFlush(next httpapi.LambdaFunc, flush func(context.Context) error, logger *slog.Logger) httpapi.LambdaFunc {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := next(ctx, req)
		if ferr := flush(context.WithoutCancel(ctx)); ferr != nil {
			logger.WarnContext(ctx, "trace flush failed", "error", ferr)
		}
		return resp, err
	}
}
