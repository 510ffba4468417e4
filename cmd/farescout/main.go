// Command farescout is the interactive fare evaluator: it prompts for trip
// details, searches the direct route, derives the protected baseline, sweeps
// the hub candidates, and saves the result file.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dharmasatrya/farescout/internal/connection"
	"github.com/dharmasatrya/farescout/internal/engine"
	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/orchestrator"
	"github.com/dharmasatrya/farescout/internal/provider"
	"github.com/dharmasatrya/farescout/internal/ratelimit"
	"github.com/dharmasatrya/farescout/internal/report"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Hello! I hope you're ready to book some flights!")

	req, err := askUserForFlightDetails(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read trip details: %v", err)
	}

	searchProvider, err := provider.NewFixtureProvider()
	if err != nil {
		log.Fatalf("Failed to initialize search provider: %v", err)
	}

	orch := orchestrator.New(searchProvider, orchestrator.Config{
		MaxAttempts: 3,
		RetryDelay:  5 * time.Second,
		Timeout:     30 * time.Second,
		RateLimiter: ratelimit.NewRouteLimiterWithDefaults(),
	})
	evaluator := connection.New(orch, connection.Config{})
	reporter := report.NewReporter(getEnv("RESULTS_DIR", "./results"))
	eng := engine.New(orch, evaluator, reporter, engine.Config{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	evaluation, err := eng.Evaluate(ctx, req)
	if err != nil {
		fmt.Printf("Error during flight search: %v\n", err)
		return
	}

	printSummary(evaluation)
}

func askUserForFlightDetails(in *os.File) (*models.SearchRequest, error) {
	reader := bufio.NewReader(in)

	ticketType, err := prompt(reader, "Will you be flying One-Way or Round-Trip? (Answer with an \"O\" or \"R\") --> ")
	if err != nil {
		return nil, err
	}

	origin, err := prompt(reader, "Which airport will you be flying from today? Please enter the airport's 3-letter code (e.g. \"LAX\") --> ")
	if err != nil {
		return nil, err
	}

	destination, err := prompt(reader, "Which airport will you be flying to today? Please enter the airport's 3-letter code (e.g. \"ORD\") --> ")
	if err != nil {
		return nil, err
	}

	departureDate, err := prompt(reader, "What is your departure date? Please enter in this format: \"Thursday, January 23,\" --> ")
	if err != nil {
		return nil, err
	}

	req := &models.SearchRequest{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
	}

	if strings.EqualFold(ticketType, "R") {
		returnDate, err := prompt(reader, "What is your return date? Please enter in this format: \"Sunday, January 26,\" --> ")
		if err != nil {
			return nil, err
		}
		req.ReturnDate = &returnDate
	}

	return req, nil
}

func prompt(reader *bufio.Reader, question string) (string, error) {
	fmt.Print(question)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printSummary(evaluation *engine.Evaluation) {
	if len(evaluation.DirectOffers) == 0 {
		fmt.Println("No flights found.")
	} else {
		fmt.Printf("Successfully found %d flights\n", len(evaluation.DirectOffers))
		fmt.Printf("Protected baseline: %s (from %d offers)\n",
			evaluation.Baseline.Amount.Format(), evaluation.Baseline.SampleSize)
	}

	accepted := evaluation.Accepted()
	if len(accepted) == 0 {
		fmt.Println("No connecting itineraries flagged.")
	} else {
		for _, c := range accepted {
			fmt.Printf("Hub %s: %s + %s = %s (flagged)\n",
				c.Hub, c.FirstLegPrice.Format(), c.SecondLegPrice.Format(), c.TotalPrice.Format())
		}
	}

	if evaluation.ResultPath != "" {
		fmt.Printf("Results saved to %s\n", evaluation.ResultPath)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
