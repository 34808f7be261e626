// Command quotes fetches the quote listing once and prints it as indented JSON.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/recordkit/recordsvc/internal/config"
	"github.com/recordkit/recordsvc/internal/quotes"
	"github.com/recordkit/recordsvc/pkg/logger"
)

func main() {
	cfg, level := config.LoadQuotesConfig()
	logger.Init(level)

	url := flag.String("url", cfg.URL, "quote listing endpoint")
	timeout := flag.Duration("timeout", cfg.Timeout, "request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raw, err := quotes.NewClient(*url, *timeout).Fetch(ctx)
	if err != nil {
		logger.Fatalf("error fetching data: %v", err)
	}
	out, err := quotes.Indent(raw)
	if err != nil {
		logger.Fatalf("error parsing JSON: %v", err)
	}
	_, _ = os.Stdout.Write(append(out, '\n'))
}
