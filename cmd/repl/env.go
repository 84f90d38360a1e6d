package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/shopmate-ai/shopmate/internal/agent"
	"github.com/shopmate-ai/shopmate/internal/bot"
	"github.com/shopmate-ai/shopmate/internal/catalog"
	"github.com/shopmate-ai/shopmate/internal/config"
	"github.com/shopmate-ai/shopmate/internal/faq"
	"github.com/shopmate-ai/shopmate/internal/memory"
	"github.com/shopmate-ai/shopmate/internal/providers"
	"github.com/shopmate-ai/shopmate/internal/session"
	"github.com/shopmate-ai/shopmate/internal/smalltalk"
	"github.com/shopmate-ai/shopmate/internal/tools"
)

type envOptions struct {
	CatalogPath string
	FAQPath     string
	WatchFAQ    bool
	Verbose     bool
	Resume      bool
}

type runtimeEnv struct {
	Bot *bot.Bot

	store   *catalog.Store
	index   *faq.Index
	watcher *faq.Watcher
}

func (r *runtimeEnv) Close() {
	if r.watcher != nil {
		if err := r.watcher.Stop(); err != nil {
			log.Printf("⚠️  Failed to stop FAQ watcher: %v", err)
		}
	}
	if r.index != nil {
		r.index.Close()
	}
	if r.store != nil {
		r.store.Close()
	}
}

func prepareRuntimeEnv(ctx context.Context, opts envOptions) (*runtimeEnv, error) {
	cfgManager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}

	userConfig, err := cfgManager.Load()
	if err != nil {
		log.Printf("⚠️  Failed to load user config: %v", err)
		userConfig = &config.Config{}
	} else if cfgManager.Exists() {
		log.Printf("User config loaded from: %s", cfgManager.GetConfigPath())
	}

	applyConfigToEnv(userConfig)

	dataDir := cfgManager.Dir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	llm, modelName, err := providers.NewClientFromEnv()
	if err != nil {
		return nil, err
	}
	log.Printf("🤖 LLM ready (model: %s)", modelName)

	env := &runtimeEnv{}

	catalogPath := firstNonEmpty(opts.CatalogPath, userConfig.CatalogPath, filepath.Join(dataDir, "catalog.sqlite"))
	env.store, err = catalog.Open(ctx, catalogPath)
	if err != nil {
		return nil, err
	}
	if err := seedCatalogIfEmpty(ctx, env.store); err != nil {
		env.Close()
		return nil, err
	}

	env.index, err = faq.NewIndex(filepath.Join(dataDir, "faq.bleve"))
	if err != nil {
		env.Close()
		return nil, err
	}

	faqPath := firstNonEmpty(opts.FAQPath, userConfig.FAQPath, filepath.Join(dataDir, "faq_data.csv"))
	if _, err := os.Stat(faqPath); err == nil {
		n, err := env.index.IngestCSV(faqPath)
		if err != nil {
			env.Close()
			return nil, err
		}
		log.Printf("✅ FAQ data ingested (%d entries)", n)

		if opts.WatchFAQ || userConfig.WatchFAQ {
			env.watcher, err = faq.NewWatcher(faqPath, env.index)
			if err != nil {
				env.Close()
				return nil, err
			}
			if err := env.watcher.Start(); err != nil {
				env.Close()
				return nil, err
			}
			log.Printf("👀 Watching %s for changes", faqPath)
		}
	} else {
		log.Printf("⚠️  FAQ file not found at %s (FAQ answers will be empty)", faqPath)
	}

	registry, err := tools.NewToolRegistry(tools.Deps{
		FAQ:     env.index,
		Catalog: env.store,
		LLM:     llm,
	}, tools.DefaultToolSet())
	if err != nil {
		env.Close()
		return nil, err
	}

	ag, err := agent.NewBuilder().
		WithTools(registry).
		WithHooks(&agent.LogHook{Verbose: opts.Verbose}).
		Build()
	if err != nil {
		env.Close()
		return nil, err
	}

	mem, err := memory.NewStore(filepath.Join(dataDir, "memory.json"))
	if err != nil {
		env.Close()
		return nil, err
	}

	sessions := session.NewStore(dataDir)

	var resumed *session.Session
	if opts.Resume {
		resumed = loadLatestSession(sessions)
	}

	env.Bot = bot.New(bot.Options{
		Agent:      ag,
		SmallTalk:  smalltalk.New(llm),
		Memory:     mem,
		Sessions:   sessions,
		Summarizer: session.NewSummarizer(llm),
		Resume:     resumed,
	})

	return env, nil
}

// loadLatestSession picks the most recently updated session, if any.
func loadLatestSession(sessions *session.Store) *session.Session {
	metas, err := sessions.List()
	if err != nil {
		log.Printf("⚠️  Failed to list sessions: %v", err)
		return nil
	}
	if len(metas) == 0 {
		log.Println("No previous sessions to resume, starting fresh")
		return nil
	}

	sess, err := sessions.Load(metas[0].ID)
	if err != nil {
		log.Printf("⚠️  Failed to load session %s: %v", metas[0].ID, err)
		return nil
	}

	log.Printf("⏪ Resuming session %q (%d turns)", sess.Title, len(sess.Turns))
	if sess.Summary != "" {
		log.Printf("Previously: %s", sess.Summary)
	}
	return sess
}

// applyConfigToEnv populates provider environment variables from the
// saved config, letting the setup in config.json win over stale shell
// variables.
func applyConfigToEnv(userConfig *config.Config) {
	if userConfig.LLMProvider != "" {
		os.Setenv("LLM_PROVIDER", userConfig.LLMProvider)
	}
	if userConfig.APIKey == "" {
		return
	}
	switch userConfig.LLMProvider {
	case "openai":
		os.Setenv("OPENAI_API_KEY", userConfig.APIKey)
		if userConfig.Model != "" {
			os.Setenv("OPENAI_MODEL", userConfig.Model)
		}
		if userConfig.BaseURL != "" {
			os.Setenv("OPENAI_BASE_URL", userConfig.BaseURL)
		}
	case "anthropic":
		os.Setenv("ANTHROPIC_API_KEY", userConfig.APIKey)
		if userConfig.Model != "" {
			os.Setenv("ANTHROPIC_MODEL", userConfig.Model)
		}
	case "groq":
		os.Setenv("GROQ_API_KEY", userConfig.APIKey)
		if userConfig.Model != "" {
			os.Setenv("GROQ_MODEL", userConfig.Model)
		}
	}
}

// seedCatalogIfEmpty gives a fresh install something to query.
func seedCatalogIfEmpty(ctx context.Context, store *catalog.Store) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("📦 Seeding sample product catalog")
	return store.Seed(ctx, []catalog.Product{
		{ProductLink: "https://example.com/p/puma-runner", Title: "Puma Runner", Brand: "Puma", Price: 2499, Discount: 0.1, AvgRating: 4.2, TotalRatings: 310},
		{ProductLink: "https://example.com/p/puma-flex", Title: "Puma Flex Trainer", Brand: "Puma", Price: 2899, Discount: 0.25, AvgRating: 4.0, TotalRatings: 152},
		{ProductLink: "https://example.com/p/nike-air-zoom", Title: "Nike Air Zoom", Brand: "Nike", Price: 5299, Discount: 0.2, AvgRating: 4.5, TotalRatings: 875},
		{ProductLink: "https://example.com/p/nike-revolution", Title: "Nike Revolution 6", Brand: "Nike", Price: 3499, Discount: 0.15, AvgRating: 4.3, TotalRatings: 640},
		{ProductLink: "https://example.com/p/adidas-duramo", Title: "Adidas Duramo SL", Brand: "Adidas", Price: 1999, Discount: 0.3, AvgRating: 3.9, TotalRatings: 120},
		{ProductLink: "https://example.com/p/reebok-energen", Title: "Reebok Energen Lite", Brand: "Reebok", Price: 1799, Discount: 0.35, AvgRating: 3.8, TotalRatings: 98},
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
