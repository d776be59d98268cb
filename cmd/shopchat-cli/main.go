package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/leanlee/shopchat/internal/dialog"
	"github.com/leanlee/shopchat/internal/nlp"
	"github.com/leanlee/shopchat/internal/repository"
	"github.com/leanlee/shopchat/internal/service"
	"github.com/leanlee/shopchat/pkg/config"
	"github.com/leanlee/shopchat/pkg/logger"
	"github.com/leanlee/shopchat/pkg/postgres"

	"go.uber.org/zap"
)

var requiredTables = []string{
	"patterns", "answers", "products", "orders", "order_items", "feedback", "user_profile",
}

// emailSearchRe pulls an email out of a free-form "name email" line.
var emailSearchRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// endTriggerRe fires only when the whole input is an "I'm done" cue, which
// opens the confirm-before-exit flow outside the dialogue engine.
var endTriggerRe = regexp.MustCompile(`(?i)^\s*(?:quit|exit|bye|goodbye|ok(?:ay)?|can|done|got it|no more|nothing else|that'?s all|all good|i'?m good|im good|no thanks|no thank you|thanks)\s*[.!?]*\s*$`)

// console reads lines from stdin and prints bot output with a simulated
// typing pause. It implements service.Prompter for the interactive fallback
// menu.
type console struct {
	reader   *bufio.Reader
	minDelay time.Duration
	maxDelay time.Duration
}

func newConsole(minDelay, maxDelay time.Duration) *console {
	return &console{
		reader:   bufio.NewReader(os.Stdin),
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

func (c *console) Say(msg string) {
	fmt.Printf("Bot: %s\n", msg)
}

func (c *console) Prompt(msg string) (string, error) {
	fmt.Print(msg)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// send prints the reply after a typing animation, so the console feels like
// the web widget's "Bot is typing..." indicator.
func (c *console) send(msg string) {
	delay := c.minDelay
	if c.maxDelay > c.minDelay {
		delay += time.Duration(rand.Int63n(int64(c.maxDelay - c.minDelay)))
	}

	indicator := "Bot is typing..."
	fmt.Print(indicator)
	deadline := time.Now().Add(delay)
	dots := 0
	for time.Now().Before(deadline) {
		fmt.Printf("%s\r%s", strings.Repeat(".", dots%3+1), indicator)
		time.Sleep(200 * time.Millisecond)
		dots++
	}
	fmt.Printf("\r%s\r", strings.Repeat(" ", len(indicator)+3))
	c.Say(msg)
}

// captureProfile asks for name and email in one line, creating a profile for
// a new email and keeping the stored name for a known one.
func captureProfile(ctx context.Context, cons *console, users *repository.UserRepository) (*dialog.User, error) {
	for {
		raw, err := cons.Prompt("Hi! Please give me your name and email: ")
		if err != nil {
			return nil, err
		}

		email := emailSearchRe.FindString(raw)
		if email == "" {
			cons.Say("I couldn't find a valid email. Try again (e.g., Jane Doe jane@example.com).")
			continue
		}
		name := strings.Trim(strings.Replace(raw, email, "", 1), " ,;<>\"'")
		if name == "" {
			name, err = cons.Prompt("Got your email. What's your name? ")
			if err != nil {
				return nil, err
			}
			if name == "" {
				cons.Say("Name can't be empty.")
				continue
			}
		}

		profile, err := users.GetByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			profile, err = users.Create(ctx, name, email)
		}
		if err != nil {
			return nil, err
		}
		return &dialog.User{UserID: profile.ID, Name: profile.Name, Email: profile.Email}, nil
	}
}

// confirmBeforeEnd double-checks before closing. Returns the context for the
// next turn and whether the session should actually end.
func confirmBeforeEnd(cons *console, conv *dialog.Context) (*dialog.Context, bool) {
	for {
		reply, err := cons.Prompt("Bot: Is there anything else I can help you with before ending the session? (yes/no) ")
		if err != nil {
			return conv, true
		}
		switch strings.ToLower(reply) {
		case "y", "yes":
			cons.send("Sure — how else can I help you?")
			return conv.KeepUser(), false
		case "n", "no":
			cons.send("Goodbye!")
			return conv, true
		default:
			cons.Say("Please answer yes or no.")
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.CheckSchema(ctx, db, requiredTables...); err != nil {
		appLogger.Fatal("Schema check failed", zap.Error(err))
	}

	store := repository.NewStore(db, appLogger)

	normalizer, err := nlp.NewNormalizer()
	if err != nil {
		appLogger.Fatal("Failed to load lemmatizer dictionary", zap.Error(err))
	}
	scorer := nlp.NewScorer(normalizer, appLogger)
	chatService := service.NewChatService(store, scorer, &cfg.Chat, appLogger)

	cons := newConsole(cfg.Chat.TypingMinDelay, cfg.Chat.TypingMaxDelay)
	chatService.SetPrompter(cons)

	user, err := captureProfile(ctx, cons, store.Users)
	if err != nil {
		appLogger.Fatal("Failed to capture user profile", zap.Error(err))
	}

	fmt.Println("\n--- E-commerce Chatbot ---")
	cons.Say("Hello! How can I assist you today?")

	conv := &dialog.Context{User: user}

	for {
		input, err := cons.Prompt("You: ")
		if err != nil {
			break
		}

		if endTriggerRe.MatchString(input) {
			next, shouldEnd := confirmBeforeEnd(cons, conv)
			if shouldEnd {
				break
			}
			conv = next
			continue
		}

		reply, next, err := chatService.Respond(ctx, input, conv, true)
		if err != nil {
			appLogger.Error("Turn failed", zap.Error(err))
			cons.Say("Sorry, something went wrong on my side. Please try again.")
			continue
		}
		conv = next
		cons.send(reply)

		if conv.EndSession {
			next, shouldEnd := confirmBeforeEnd(cons, conv)
			if shouldEnd {
				break
			}
			conv = next
		}
	}
}
