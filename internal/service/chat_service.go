package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/leanlee/shopchat/internal/dialog"
	"github.com/leanlee/shopchat/internal/models"
	"github.com/leanlee/shopchat/internal/nlp"
	"github.com/leanlee/shopchat/internal/repository"
	"github.com/leanlee/shopchat/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// catalogVocab triggers the product menu even when the scorer disagrees;
// blockingVocab suppresses the override so damage and return requests are not
// hijacked into browsing.
var (
	catalogVocab  = []string{"product", "shop", "catalog", "browse"}
	blockingVocab = []string{"damage", "broken", "return", "refund", "complaint", "lost", "missing"}
)

const unknownAnswer = "Sorry, I couldn't understand your request. Please choose an option:"

// ChatService is the turn-based dialogue engine: a function of (input,
// context) to (reply, next context), with all data access behind Store.
type ChatService struct {
	store    Store
	scorer   *nlp.Scorer
	cfg      *config.ChatConfig
	logger   *zap.Logger
	prompter Prompter
}

func NewChatService(store Store, scorer *nlp.Scorer, cfg *config.ChatConfig, logger *zap.Logger) *ChatService {
	return &ChatService{
		store:  store,
		scorer: scorer,
		cfg:    cfg,
		logger: logger,
	}
}

// SetPrompter attaches the blocking console used by interactive turns.
func (s *ChatService) SetPrompter(p Prompter) {
	s.prompter = p
}

// Respond runs one conversation turn. It always produces a reply and a next
// context; malformed input becomes a re-prompt with the state unchanged. Only
// store failures surface as errors, and they abort the whole turn.
func (s *ChatService) Respond(ctx context.Context, input string, conv *dialog.Context, interactive bool) (string, *dialog.Context, error) {
	if conv == nil {
		conv = &dialog.Context{}
	}
	if !conv.WaitingFor.Valid() {
		// An unknown pending state from a stale client blob routes as a
		// fresh turn rather than failing.
		conv = conv.KeepUser()
	}

	switch conv.WaitingFor {
	case dialog.WaitingProductSection:
		return s.handleProductSection(ctx, input, conv)
	case dialog.WaitingProductItem:
		return s.handleProductItem(ctx, input, conv)
	case dialog.WaitingFallbackMenu:
		return s.handleFallbackMenu(ctx, input, conv)
	case dialog.WaitingOrderChoice:
		return s.handleOrderChoice(ctx, input, conv)
	case dialog.WaitingProvideEmail:
		return s.handleProvideEmail(ctx, input, conv)
	case dialog.WaitingConfirmEnd:
		return s.handleConfirmEnd(ctx, input, conv)
	case dialog.WaitingFeedbackChoice:
		return s.handleFeedbackChoice(ctx, input, conv)
	case dialog.WaitingFeedbackOther:
		return s.handleFeedbackOther(ctx, input, conv)
	}
	return s.handleFreeIntent(ctx, input, conv, interactive)
}

// --- free intent routing -------------------------------------------------

func (s *ChatService) handleFreeIntent(ctx context.Context, input string, conv *dialog.Context, interactive bool) (string, *dialog.Context, error) {
	patterns, err := s.store.ListPatterns(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	intent, entity := s.scorer.Score(input, patterns)
	s.logger.Debug("Intent scored",
		zap.String("intent", intent),
		zap.String("entity", entity),
	)

	// Lexical override: catalog vocabulary wins over the scorer unless the
	// message also carries damage/return/complaint terms.
	if wantsCatalog(input) {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingProductSection
		return productMenuText, next, nil
	}

	switch intent {
	case "product", "browse_products", "show_products":
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingProductSection
		return productMenuText, next, nil

	case "track_order":
		return s.startOrderTracking(ctx, conv)

	case "goodbye", "thanks", "affirm":
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingConfirmEnd
		return "Is there anything else I can help you with before we wrap up? (yes/no)", next, nil

	case nlp.FallbackIntent:
		return s.handleFallback(ctx, conv, interactive)
	}

	answer, err := s.answerFor(ctx, intent)
	if err != nil {
		return "", nil, err
	}
	return answer, conv.KeepUser(), nil
}

func wantsCatalog(input string) bool {
	text := strings.ToLower(input)
	for _, blocked := range blockingVocab {
		if strings.Contains(text, blocked) {
			return false
		}
	}
	for _, word := range catalogVocab {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// answerFor looks up the canned answer, substituting a safe prompt when the
// intent has no stored answer.
func (s *ChatService) answerFor(ctx context.Context, intent string) (string, error) {
	answer, err := s.store.GetAnswer(ctx, intent)
	if errors.Is(err, repository.ErrNotFound) {
		return unknownAnswer, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load answer for %q: %w", intent, err)
	}
	return answer, nil
}

// --- order tracking ------------------------------------------------------

func (s *ChatService) startOrderTracking(ctx context.Context, conv *dialog.Context) (string, *dialog.Context, error) {
	if conv.User == nil || conv.User.UserID == 0 {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingProvideEmail
		return "Happy to check on that. What's the email address you ordered with?", next, nil
	}
	return s.listOpenOrders(ctx, conv, conv.User.UserID)
}

func (s *ChatService) listOpenOrders(ctx context.Context, conv *dialog.Context, customerID int64) (string, *dialog.Context, error) {
	orders, err := s.store.ListOpenOrders(ctx, customerID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list open orders: %w", err)
	}

	if len(orders) > 0 {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingOrderChoice
		next.OrderChoiceIDs = make([]int64, len(orders))
		for i, o := range orders {
			next.OrderChoiceIDs[i] = o.ID
		}
		return formatOpenOrdersMenu(orders), next, nil
	}

	has, err := s.store.HasOrders(ctx, customerID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check order history: %w", err)
	}
	if !has {
		return "You don't have any orders with us yet. Please create an account and place your first order. Is there anything else I can help you with?",
			conv.KeepUser(), nil
	}
	return "You currently have no processing or in-transit orders.", conv.KeepUser(), nil
}

func (s *ChatService) handleOrderChoice(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	choice := strings.TrimSpace(input)
	idx, err := strconv.Atoi(choice)
	if err != nil {
		return "Please enter a valid number from the list (e.g., 1 or 2).", conv, nil
	}
	if idx < 1 || idx > len(conv.OrderChoiceIDs) {
		return "That number isn't in the list. Please try again.", conv, nil
	}

	order, items, err := s.store.GetOrderBundle(ctx, conv.OrderChoiceIDs[idx-1])
	if errors.Is(err, repository.ErrNotFound) {
		return "Sorry, I couldn't retrieve that order just now. Please try another one.", conv.KeepUser(), nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load order: %w", err)
	}
	return summarizeOrder(order, items), conv.KeepUser(), nil
}

func (s *ChatService) handleProvideEmail(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	email := strings.TrimSpace(input)
	if !emailRe.MatchString(email) {
		return "That doesn't look like a valid email address. Please try again (e.g., jane@example.com).", conv, nil
	}

	profile, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "I couldn't find an account under that email. You don't have any orders with us yet — please create an account and place your first order.",
			conv.KeepUser(), nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	next := conv.KeepUser()
	next.User = &dialog.User{UserID: profile.ID, Name: profile.Name, Email: profile.Email}
	return s.listOpenOrders(ctx, next, profile.ID)
}

// --- product browsing ----------------------------------------------------

func (s *ChatService) handleProductSection(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	choice := strings.ToLower(strings.TrimSpace(input))
	if choice == "menu" || choice == "back" {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingProductSection
		return productMenuText, next, nil
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		return "Please enter a number 1-6 (or type 'menu' to see the options again).", conv, nil
	}
	if n == 6 {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingFallbackMenu
		return mainMenuText(), next, nil
	}
	if n < 1 || n > 5 {
		return "Please enter a number 1-6 (or type 'menu' to see the options again).", conv, nil
	}

	section := models.ProductSection(n)
	products, err := s.store.ListSection(ctx, section, 1, s.cfg.PageSize)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list products: %w", err)
	}
	if len(products) == 0 {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingProductSection
		return "No products found in this section. Type 1-5 to pick another section, or 'menu' to see the options.", next, nil
	}

	next := conv.KeepUser()
	next.WaitingFor = dialog.WaitingProductItem
	next.LastChoice = n
	next.ProductChoiceIDs = make([]int64, len(products))
	for i, p := range products {
		next.ProductChoiceIDs[i] = p.ID
	}
	return formatProductList(products, sectionURL(s.cfg.ShopBaseURL, section)), next, nil
}

func (s *ChatService) handleProductItem(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	choice := strings.ToLower(strings.TrimSpace(input))
	if choice == "menu" || choice == "back" {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingProductSection
		return productMenuText, next, nil
	}

	idx, err := strconv.Atoi(choice)
	if err != nil {
		return "Please enter the item number from the list, or type 'menu' to go back.", conv, nil
	}
	if idx < 1 || idx > len(conv.ProductChoiceIDs) {
		return "That number isn't on the list. Try again, or type 'menu' to go back.", conv, nil
	}

	product, err := s.store.GetProduct(ctx, conv.ProductChoiceIDs[idx-1])
	if errors.Is(err, repository.ErrNotFound) {
		return "Sorry, I couldn't load that item. Type 'menu' to pick again.", conv.KeepUser(), nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load product: %w", err)
	}
	return formatProductAnswer(product, ""), conv.KeepUser(), nil
}

// --- main (fallback) menu ------------------------------------------------

func (s *ChatService) handleFallback(ctx context.Context, conv *dialog.Context, interactive bool) (string, *dialog.Context, error) {
	answer, err := s.answerFor(ctx, nlp.FallbackIntent)
	if err != nil {
		return "", nil, err
	}

	if !interactive || s.prompter == nil {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingFallbackMenu
		return answer + "\n" + mainMenuText(), next, nil
	}

	// Interactive console: show the menu and read the choice inline, three
	// attempts before handing off to a human.
	s.prompter.Say(answer)
	s.prompter.Say(mainMenuText())
	for attempts := 0; attempts < 3; attempts++ {
		choice, err := s.prompter.Prompt("Enter the number of your choice (1-6): ")
		if err != nil {
			break
		}
		if n, convErr := strconv.Atoi(strings.TrimSpace(choice)); convErr == nil {
			if slug := mainMenuSlug(n); slug != "" {
				return s.routeMenuSlug(ctx, slug, conv)
			}
		}
		s.prompter.Say("Invalid input. Please enter a number between 1 and 6.")
	}

	next := conv.KeepUser()
	next.EndSession = true
	return fmt.Sprintf("It seems you're having trouble. Please fill out this form and our team will assist you: %s", s.cfg.SupportFormURL),
		next, nil
}

func (s *ChatService) handleFallbackMenu(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	choice := strings.ToLower(strings.TrimSpace(input))
	if choice == "menu" || choice == "back" {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingFallbackMenu
		return mainMenuText(), next, nil
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		return "Please enter a valid number 1-6 from the main menu.", conv, nil
	}
	slug := mainMenuSlug(n)
	if slug == "" {
		return "Please enter a valid number 1-6 from the main menu.", conv, nil
	}
	return s.routeMenuSlug(ctx, slug, conv)
}

func (s *ChatService) routeMenuSlug(ctx context.Context, slug string, conv *dialog.Context) (string, *dialog.Context, error) {
	switch slug {
	case "track_order":
		return s.startOrderTracking(ctx, conv)
	case "contact_customer_support":
		return "You can reach us here: " + s.cfg.SupportFormURL, conv.KeepUser(), nil
	case "send_glink":
		next := conv.KeepUser()
		next.EndSession = true
		return fmt.Sprintf("I'm sorry I can't resolve that here. Please fill out this form and our support team will contact you: %s", s.cfg.SupportFormURL),
			next, nil
	}

	answer, err := s.answerFor(ctx, slug)
	if err != nil {
		return "", nil, err
	}
	return answer, conv.KeepUser(), nil
}

// --- session wrap-up -----------------------------------------------------

func (s *ChatService) handleConfirmEnd(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	patterns, err := s.store.ListPatterns(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	intent, _ := s.scorer.Score(input, patterns)

	switch intent {
	case "affirm":
		return "Sure — how else can I help you?", conv.KeepUser(), nil
	case "deny", "goodbye":
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingFeedbackChoice
		return feedbackMenuText, next, nil
	}
	return "Sorry, I didn't catch that — is there anything else I can help you with? (yes/no)", conv, nil
}

func (s *ChatService) handleFeedbackChoice(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	rating, category, ok := parseFeedbackChoice(input)
	if !ok {
		return "Please pick one of the options:\n" + feedbackMenuText, conv, nil
	}

	if rating == 4 {
		next := conv.KeepUser()
		next.WaitingFor = dialog.WaitingFeedbackOther
		return "Got it — tell me a bit more about your experience:", next, nil
	}

	if err := s.saveFeedback(ctx, conv, rating, category, nil); err != nil {
		return "", nil, err
	}
	next := conv.KeepUser()
	next.EndSession = true
	return "Thanks for your feedback — have a great day!", next, nil
}

func (s *ChatService) handleFeedbackOther(ctx context.Context, input string, conv *dialog.Context) (string, *dialog.Context, error) {
	comment := strings.TrimSpace(input)
	if comment == "" {
		return "Please type a few words about your experience.", conv, nil
	}

	if err := s.saveFeedback(ctx, conv, 4, "others", &comment); err != nil {
		return "", nil, err
	}
	next := conv.KeepUser()
	next.EndSession = true
	return "Thanks for your feedback — have a great day!", next, nil
}

func (s *ChatService) saveFeedback(ctx context.Context, conv *dialog.Context, rating int, category string, comment *string) error {
	fb := &models.Feedback{
		ID:        uuid.New(),
		Rating:    rating,
		Category:  category,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if conv.User != nil {
		if conv.User.UserID != 0 {
			userID := conv.User.UserID
			fb.UserID = &userID
		}
		fb.UserEmail = conv.User.Email
	}
	if err := s.store.CreateFeedback(ctx, fb); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}
