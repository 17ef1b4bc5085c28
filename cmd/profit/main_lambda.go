//go:build lambda

// This file provides an alternate entrypoint for deploying the solver behind
// an AWS Lambda Function URL: the handler takes the task JSON as the request
// body and returns the solution JSON as the response body, reusing the same
// taskio/solver pipeline the CLI drives.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/profit-solver/profit/internal/solver"
	"github.com/profit-solver/profit/internal/taskio"
)

func main() {
	lambda.Start(handleRequest)
}

// handleRequest is the Lambda Function URL handler. It leaves roughly a
// second of the configured Lambda timeout unaccounted for as request/response
// marshalling overhead by letting solver.LoadConfig's deadline safety margin
// absorb it, rather than reading the remaining context deadline directly —
// Function URL invocations do not reliably set one.
func handleRequest(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	task, err := taskio.Parse([]byte(req.Body))
	if err != nil {
		return errorResponse(400, err)
	}

	cfg, err := solver.LoadConfig("")
	if err != nil {
		return errorResponse(500, err)
	}

	sol := solver.Run(task.Map, task.Products, task.Turns, solver.Options{
		TimeBudget: time.Duration(task.TimeBudget * float64(time.Second)),
		Cores:      runtime.NumCPU(),
		Seed:       rand.Int63(),
		Config:     cfg,
	})

	body, err := json.Marshal(taskio.FormatSolution(sol.Map, task.BaseObjectCount))
	if err != nil {
		return errorResponse(500, err)
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func errorResponse(status int, err error) (events.LambdaFunctionURLResponse, error) {
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       fmt.Sprintf(`{"error":%q}`, err.Error()),
	}, nil
}
