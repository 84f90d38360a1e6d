package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx := context.Background()

	fs := flag.NewFlagSet("shopmate", flag.ExitOnError)
	catalogFlag := fs.String("catalog", "", "Path to the product database (default: <config dir>/catalog.sqlite)")
	faqFlag := fs.String("faq", "", "Path to the FAQ CSV (default: <config dir>/faq_data.csv)")
	watchFlag := fs.Bool("watch", false, "Reload FAQ data when the CSV changes")
	verboseFlag := fs.Bool("verbose", false, "Log agent events")
	resumeFlag := fs.Bool("resume", false, "Continue the most recent session")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	env, err := prepareRuntimeEnv(ctx, envOptions{
		CatalogPath: *catalogFlag,
		FAQPath:     *faqFlag,
		WatchFAQ:    *watchFlag,
		Verbose:     *verboseFlag,
		Resume:      *resumeFlag,
	})
	if err != nil {
		log.Fatalf("failed to prepare runtime environment: %v", err)
	}
	defer env.Close()

	runChat(ctx, env)
}

func runChat(ctx context.Context, env *runtimeEnv) {
	log.Println("🛍️  Shopmate ready (type 'exit' to quit)")

	s := bufio.NewScanner(os.Stdin)
	for {
		if needs := env.Bot.PendingClarification(); len(needs) > 0 {
			fmt.Printf("you (missing: %s)> ", strings.Join(needs, ", "))
		} else {
			fmt.Print("you> ")
		}
		if !s.Scan() {
			break
		}

		query := strings.TrimSpace(s.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		reply := env.Bot.Ask(ctx, query)
		fmt.Printf("bot> %s\n\n", reply)
	}

	if err := s.Err(); err != nil {
		log.Printf("⚠️  Input error: %v", err)
	}

	env.Bot.Finish(ctx)
}
