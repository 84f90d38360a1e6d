// Package bot ties the router, agent, memory, and session layers into
// one conversational surface.
package bot

import (
	"context"
	"log"
	"strings"

	"github.com/shopmate-ai/shopmate/internal/agent"
	"github.com/shopmate-ai/shopmate/internal/memory"
	"github.com/shopmate-ai/shopmate/internal/router"
	"github.com/shopmate-ai/shopmate/internal/session"
	"github.com/shopmate-ai/shopmate/internal/smalltalk"
)

// SmallTalker abstracts the casual-conversation handler.
type SmallTalker interface {
	Talk(ctx context.Context, query string) (string, error)
}

var _ SmallTalker = (*smalltalk.Responder)(nil)

// Summarizer abstracts session title and summary generation.
type Summarizer interface {
	GenerateTitle(ctx context.Context, turns []session.Turn) (string, error)
	GenerateSummary(ctx context.Context, turns []session.Turn) (string, error)
}

var _ Summarizer = (*session.Summarizer)(nil)

// Bot routes user queries and maintains conversation state.
type Bot struct {
	agent      *agent.Agent
	router     router.Router
	smallTalk  SmallTalker
	memory     *memory.Store
	sessions   *session.Store
	summarizer Summarizer

	sess         *session.Session
	pendingNeeds []string
}

// Options configures a Bot.
type Options struct {
	Agent      *agent.Agent
	Router     router.Router
	SmallTalk  SmallTalker
	Memory     *memory.Store
	Sessions   *session.Store   // Optional; nil disables transcript persistence
	Summarizer Summarizer       // Optional; nil disables titles and summaries
	Resume     *session.Session // Optional; continue an earlier transcript
}

// New creates a bot, resuming the given session or starting a fresh one.
func New(opts Options) *Bot {
	r := opts.Router
	if r == nil {
		r = router.NewKeywordRouter()
	}
	sess := opts.Resume
	if sess == nil {
		sess = session.New()
	}
	return &Bot{
		agent:      opts.Agent,
		router:     r,
		smallTalk:  opts.SmallTalk,
		memory:     opts.Memory,
		sessions:   opts.Sessions,
		summarizer: opts.Summarizer,
		sess:       sess,
	}
}

// PendingClarification returns the constraints the assistant is waiting
// on, or nil when none are pending.
func (b *Bot) PendingClarification() []string {
	return b.pendingNeeds
}

// Session returns the active session transcript.
func (b *Bot) Session() *session.Session {
	return b.sess
}

// Ask routes a query to the appropriate handler and returns the reply.
// Every failure is rendered into the reply text.
func (b *Bot) Ask(ctx context.Context, query string) string {
	b.sess.Append(session.RoleUser, query, "")

	var reply, trace string
	if b.router.Route(query) == router.RouteSmallTalk {
		b.pendingNeeds = nil
		reply, trace = b.askSmallTalk(ctx, query)
	} else {
		reply, trace = b.askAgent(ctx, query)
	}

	b.sess.Append(session.RoleAssistant, reply, trace)
	b.maybeTitle(ctx)
	b.persistSession()

	return reply + "\n" + trace
}

// Finish writes a context summary onto the session and persists it.
// Call it when the conversation ends.
func (b *Bot) Finish(ctx context.Context) {
	if b.summarizer == nil || len(b.sess.Turns) == 0 {
		return
	}
	summary, err := b.summarizer.GenerateSummary(ctx, b.sess.Turns)
	if err != nil {
		log.Printf("⚠️  Failed to generate session summary: %v", err)
		return
	}
	b.sess.Summary = summary
	b.persistSession()
}

// maybeTitle names the session after the first full exchange.
func (b *Bot) maybeTitle(ctx context.Context) {
	if b.summarizer == nil || b.sess.Title != session.DefaultTitle {
		return
	}
	title, err := b.summarizer.GenerateTitle(ctx, b.sess.Turns)
	if err != nil {
		log.Printf("⚠️  Failed to generate session title: %v", err)
		return
	}
	b.sess.Title = title
}

func (b *Bot) askSmallTalk(ctx context.Context, query string) (reply, trace string) {
	trace = "Trace: small_talk"
	text, err := b.smallTalk.Talk(ctx, query)
	if err != nil {
		return "Sorry, something went wrong: " + err.Error(), trace
	}
	return text, trace
}

func (b *Bot) askAgent(ctx context.Context, query string) (reply, trace string) {
	snapshot := b.memory.Get([]string{"brand", "price_ceiling"})
	result := b.agent.Run(ctx, query, snapshot)

	if len(result.MemoryUpdates) > 0 {
		if err := b.memory.Set(result.MemoryUpdates); err != nil {
			log.Printf("⚠️  Failed to persist memory updates: %v", err)
		}
	}

	if result.Plan != nil && len(result.Plan.Clarifications) > 0 {
		b.pendingNeeds = result.Plan.Clarifications
	} else {
		b.pendingNeeds = nil
	}

	return splitTrace(result.Text)
}

func (b *Bot) persistSession() {
	if b.sessions == nil {
		return
	}
	if err := b.sessions.Save(b.sess); err != nil {
		log.Printf("⚠️  Failed to save session: %v", err)
	}
}

// splitTrace separates the trailing trace line from the reply body.
func splitTrace(text string) (reply, trace string) {
	idx := strings.LastIndex(text, "\n")
	if idx < 0 || !strings.HasPrefix(text[idx+1:], "Trace: ") {
		return text, "Trace: none"
	}
	return text[:idx], text[idx+1:]
}
