package bot

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopmate-ai/shopmate/internal/agent"
	"github.com/shopmate-ai/shopmate/internal/memory"
	"github.com/shopmate-ai/shopmate/internal/session"
)

type stubTalker struct {
	reply string
	err   error
	calls int
}

func (s *stubTalker) Talk(ctx context.Context, query string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func stubRegistry() agent.ToolRegistry {
	return agent.ToolRegistry{
		agent.ToolKnowledgeSearch: {Name: agent.ToolKnowledgeSearch, Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"items": []agent.KnowledgeItem{{Question: "q", Answer: "30-day returns", Score: 1}}}, nil
		}},
		agent.ToolKnowledgeAnswer: {Name: agent.ToolKnowledgeAnswer, Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"text": "You can return items within 30 days."}, nil
		}},
		agent.ToolQueryGenerate: {Name: agent.ToolQueryGenerate, Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"wrapped": "<SQL>SELECT * FROM product</SQL>"}, nil
		}},
		agent.ToolQueryRun: {Name: agent.ToolQueryRun, Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"rows": []map[string]any{{"title": "Puma Runner"}}, "columns": []string{"title"}}, nil
		}},
		agent.ToolVerbalize: {Name: agent.ToolVerbalize, Fn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"text": "Found the Puma Runner for you."}, nil
		}},
	}
}

type stubSummarizer struct {
	title      string
	summary    string
	titleCalls int
}

func (s *stubSummarizer) GenerateTitle(ctx context.Context, turns []session.Turn) (string, error) {
	s.titleCalls++
	return s.title, nil
}

func (s *stubSummarizer) GenerateSummary(ctx context.Context, turns []session.Turn) (string, error) {
	return s.summary, nil
}

func testBot(t *testing.T, talker SmallTalker) (*Bot, *memory.Store) {
	t.Helper()

	ag, err := agent.New(stubRegistry())
	if err != nil {
		t.Fatal(err)
	}
	mem, err := memory.NewStore(filepath.Join(t.TempDir(), "memory.json"))
	if err != nil {
		t.Fatal(err)
	}
	b := New(Options{
		Agent:     ag,
		SmallTalk: talker,
		Memory:    mem,
	})
	return b, mem
}

func TestAskRoutesSmallTalk(t *testing.T) {
	talker := &stubTalker{reply: "Doing great, thanks for asking!"}
	b, _ := testBot(t, talker)

	got := b.Ask(context.Background(), "How are you?")

	if got != "Doing great, thanks for asking!\nTrace: small_talk" {
		t.Errorf("reply = %q", got)
	}
	if talker.calls != 1 {
		t.Errorf("talker calls = %d", talker.calls)
	}
	if turns := b.Session().Turns; len(turns) != 2 || turns[1].Trace != "Trace: small_talk" {
		t.Errorf("session turns = %+v", turns)
	}
}

func TestAskSmallTalkFailureIsRendered(t *testing.T) {
	b, _ := testBot(t, &stubTalker{err: errors.New("provider down")})

	got := b.Ask(context.Background(), "hello there")
	if !strings.HasPrefix(got, "Sorry, something went wrong: ") {
		t.Errorf("reply = %q", got)
	}
	if !strings.HasSuffix(got, "\nTrace: small_talk") {
		t.Errorf("trace line missing: %q", got)
	}
}

func TestAskDataQueryPersistsPreferences(t *testing.T) {
	b, mem := testBot(t, &stubTalker{})

	got := b.Ask(context.Background(), "Need Puma shoes under 3000")

	if !strings.Contains(got, "Found the Puma Runner for you.") {
		t.Errorf("reply = %q", got)
	}
	if !strings.Contains(got, "Trace: query_generate -> query_run -> verbalize") {
		t.Errorf("trace = %q", got)
	}

	prefs := mem.Get([]string{"brand", "price_ceiling"})
	if prefs["brand"] != "Puma" {
		t.Errorf("brand = %v", prefs["brand"])
	}
	if prefs["price_ceiling"] != 3000 {
		t.Errorf("price_ceiling = %v", prefs["price_ceiling"])
	}
}

func TestAskClarificationSetsPending(t *testing.T) {
	b, _ := testBot(t, &stubTalker{reply: "hi"})

	got := b.Ask(context.Background(), "show me something nice to buy")

	if !strings.Contains(got, "Could you share the") {
		t.Errorf("reply = %q", got)
	}
	if len(b.PendingClarification()) == 0 {
		t.Error("pending clarification not recorded")
	}

	// A small-talk turn clears the pending state.
	b.Ask(context.Background(), "how are you?")
	if b.PendingClarification() != nil {
		t.Errorf("pending = %v after small talk", b.PendingClarification())
	}
}

func TestAskPersistsSessionTranscript(t *testing.T) {
	ag, err := agent.New(stubRegistry())
	if err != nil {
		t.Fatal(err)
	}
	mem, err := memory.NewStore(filepath.Join(t.TempDir(), "memory.json"))
	if err != nil {
		t.Fatal(err)
	}
	store := session.NewStore(t.TempDir())
	b := New(Options{
		Agent:     ag,
		SmallTalk: &stubTalker{reply: "hello"},
		Memory:    mem,
		Sessions:  store,
	})

	b.Ask(context.Background(), "What is your return policy?")

	loaded, err := store.Load(b.Session().ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Turns) != 2 {
		t.Fatalf("turns = %d", len(loaded.Turns))
	}
	if loaded.Turns[1].Content != "You can return items within 30 days." {
		t.Errorf("assistant turn = %q", loaded.Turns[1].Content)
	}
}

func sessionTestBot(t *testing.T, store *session.Store, summ Summarizer, resume *session.Session) *Bot {
	t.Helper()

	ag, err := agent.New(stubRegistry())
	if err != nil {
		t.Fatal(err)
	}
	mem, err := memory.NewStore(filepath.Join(t.TempDir(), "memory.json"))
	if err != nil {
		t.Fatal(err)
	}
	return New(Options{
		Agent:      ag,
		SmallTalk:  &stubTalker{reply: "hello"},
		Memory:     mem,
		Sessions:   store,
		Summarizer: summ,
		Resume:     resume,
	})
}

func TestAskTitlesSessionAfterFirstExchange(t *testing.T) {
	store := session.NewStore(t.TempDir())
	summ := &stubSummarizer{title: "Return Policy Question"}
	b := sessionTestBot(t, store, summ, nil)

	b.Ask(context.Background(), "What is your return policy?")

	if b.Session().Title != "Return Policy Question" {
		t.Errorf("title = %q", b.Session().Title)
	}

	// A second exchange keeps the existing title.
	b.Ask(context.Background(), "How long does shipping take?")
	if summ.titleCalls != 1 {
		t.Errorf("title generated %d times, want 1", summ.titleCalls)
	}

	loaded, err := store.Load(b.Session().ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Title != "Return Policy Question" {
		t.Errorf("persisted title = %q", loaded.Title)
	}
}

func TestFinishPersistsSummary(t *testing.T) {
	store := session.NewStore(t.TempDir())
	summ := &stubSummarizer{title: "Puma Shoe Hunt", summary: "User wants Puma shoes under 3000."}
	b := sessionTestBot(t, store, summ, nil)

	b.Ask(context.Background(), "Need Puma shoes under 3000")
	b.Finish(context.Background())

	loaded, err := store.Load(b.Session().ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Summary != "User wants Puma shoes under 3000." {
		t.Errorf("persisted summary = %q", loaded.Summary)
	}
}

func TestFinishWithoutTurnsIsNoop(t *testing.T) {
	store := session.NewStore(t.TempDir())
	b := sessionTestBot(t, store, &stubSummarizer{summary: "nothing"}, nil)

	b.Finish(context.Background())

	if _, err := store.Load(b.Session().ID); err == nil {
		t.Error("empty session should not be persisted")
	}
}

func TestNewResumesExistingSession(t *testing.T) {
	prior := session.New()
	prior.Title = "Earlier Chat"
	prior.Append(session.RoleUser, "hi", "")
	prior.Append(session.RoleAssistant, "hello", "Trace: small_talk")

	store := session.NewStore(t.TempDir())
	summ := &stubSummarizer{title: "Should Not Apply"}
	b := sessionTestBot(t, store, summ, prior)

	b.Ask(context.Background(), "how are you?")

	if b.Session().ID != prior.ID {
		t.Errorf("session id = %q, want %q", b.Session().ID, prior.ID)
	}
	if len(b.Session().Turns) != 4 {
		t.Errorf("turns = %d, want 4", len(b.Session().Turns))
	}
	if b.Session().Title != "Earlier Chat" {
		t.Errorf("title = %q, resumed sessions keep their name", b.Session().Title)
	}
	if summ.titleCalls != 0 {
		t.Errorf("title regenerated %d times for a named session", summ.titleCalls)
	}
}
