package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/leanlee/shopchat/internal/dialog"
	"github.com/leanlee/shopchat/internal/models"
	"github.com/leanlee/shopchat/internal/nlp"
	"github.com/leanlee/shopchat/internal/repository"
	"github.com/leanlee/shopchat/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- in-memory fake store -------------------------------------------------

type orderBundle struct {
	order models.Order
	items []models.OrderItem
}

type fakeStore struct {
	patterns    []models.Pattern
	patternsErr error
	answers     map[string]string
	products    map[int64]models.Product
	sections    map[models.ProductSection][]models.Product
	openOrders  map[int64][]models.Order
	bundles     map[int64]orderBundle
	hasOrders   map[int64]bool
	users       map[string]models.UserProfile
	feedback    []*models.Feedback
}

func (f *fakeStore) ListPatterns(_ context.Context) ([]models.Pattern, error) {
	return f.patterns, f.patternsErr
}

func (f *fakeStore) GetAnswer(_ context.Context, intent string) (string, error) {
	if a, ok := f.answers[intent]; ok {
		return a, nil
	}
	return "", repository.ErrNotFound
}

func (f *fakeStore) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) ListSection(_ context.Context, section models.ProductSection, _, _ int) ([]models.Product, error) {
	return f.sections[section], nil
}

func (f *fakeStore) ListOpenOrders(_ context.Context, customerID int64) ([]models.Order, error) {
	return f.openOrders[customerID], nil
}

func (f *fakeStore) GetOrderBundle(_ context.Context, id int64) (*models.Order, []models.OrderItem, error) {
	if b, ok := f.bundles[id]; ok {
		return &b.order, b.items, nil
	}
	return nil, nil, repository.ErrNotFound
}

func (f *fakeStore) HasOrders(_ context.Context, customerID int64) (bool, error) {
	return f.hasOrders[customerID], nil
}

func (f *fakeStore) CreateFeedback(_ context.Context, fb *models.Feedback) error {
	f.feedback = append(f.feedback, fb)
	return nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	if u, ok := f.users[email]; ok {
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, name, email string) (*models.UserProfile, error) {
	u := models.UserProfile{ID: int64(len(f.users) + 100), Name: name, Email: email, CreatedAt: time.Now()}
	f.users[email] = u
	return &u, nil
}

type fakePrompter struct {
	said    []string
	replies []string
}

func (p *fakePrompter) Say(msg string) {
	p.said = append(p.said, msg)
}

func (p *fakePrompter) Prompt(string) (string, error) {
	if len(p.replies) == 0 {
		return "", io.EOF
	}
	reply := p.replies[0]
	p.replies = p.replies[1:]
	return reply, nil
}

// --- fixtures -------------------------------------------------------------

func price(v float64) *float64 { return &v }

func newFakeStore() *fakeStore {
	eta := time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC)
	inTransit := models.Order{
		ID: 11, CustomerID: 7, OrderNumber: "184533",
		PlacedAt: eta.Add(-7 * 24 * time.Hour), Status: "in_transit",
		ShippingCarrier: "DHL", TrackingNumber: "DHLMY0012345", ETADate: &eta,
	}
	processing := models.Order{
		ID: 22, CustomerID: 7, OrderNumber: "184790",
		PlacedAt: eta.Add(-2 * 24 * time.Hour), Status: "processing",
	}
	tee := models.Product{
		ID: 1, SKU: "TS-001", Name: "Classic Tee", Category: "men",
		Price: price(49.90), SalePrice: price(39.90), IsTrending: true, IsOnSale: true,
		Sizes: "S, M, L", Colors: "Black, White", Material: "Cotton",
	}
	tote := models.Product{
		ID: 2, SKU: "AC-100", Name: "Canvas Tote", Category: "accessories",
		Price: price(35.00),
	}

	return &fakeStore{
		patterns: []models.Pattern{
			{Intent: "affirm", Kind: models.PatternKeyword, Pattern: "yes", Weight: 1},
			{Intent: "deny", Kind: models.PatternKeyword, Pattern: "no", Weight: 1},
			{Intent: "goodbye", Kind: models.PatternKeyword, Pattern: "bye", Weight: 1},
			{Intent: "greet", Kind: models.PatternKeyword, Pattern: "hello", Weight: 1},
			{Intent: "return_policy", Kind: models.PatternKeyword, Pattern: "return", Weight: 1.5},
			{Intent: "thanks", Kind: models.PatternKeyword, Pattern: "thank", Weight: 1},
			{Intent: "track_order", Kind: models.PatternKeyword, Pattern: "track order", Weight: 2},
			{Intent: "track_order", Kind: models.PatternRegex, Pattern: `\b(\d{5,})\b`, Weight: 1},
		},
		answers: map[string]string{
			"greet":         "Hello! How can I assist you today?",
			"fallback":      "Sorry, I couldn't understand your request. Please choose an option:",
			"return_policy": "You can return any item within 30 days of delivery.",
		},
		products: map[int64]models.Product{1: tee, 2: tote},
		sections: map[models.ProductSection][]models.Product{
			models.SectionTrending:    {tee},
			models.SectionAccessories: {tote},
		},
		openOrders: map[int64][]models.Order{7: {inTransit, processing}},
		bundles: map[int64]orderBundle{
			11: {inTransit, []models.OrderItem{{OrderID: 11, SKU: "TS-001", Name: "Classic Tee", Qty: 2}}},
			22: {processing, []models.OrderItem{{OrderID: 22, SKU: "AC-100", Name: "Canvas Tote", Qty: 1}}},
		},
		hasOrders: map[int64]bool{7: true, 9: true},
		users: map[string]models.UserProfile{
			"jane@example.com": {ID: 7, Name: "Jane", Email: "jane@example.com"},
			"mark@example.com": {ID: 9, Name: "Mark", Email: "mark@example.com"},
		},
	}
}

func newTestService(t *testing.T, store Store) *ChatService {
	t.Helper()
	normalizer, err := nlp.NewNormalizer()
	require.NoError(t, err)
	cfg := &config.ChatConfig{
		PageSize:       10,
		SupportFormURL: "https://example.com/support-form",
		ShopBaseURL:    "https://your.site/shop",
	}
	return NewChatService(store, nlp.NewScorer(normalizer, zap.NewNop()), cfg, zap.NewNop())
}

func userCtx(id int64) *dialog.Context {
	return &dialog.Context{User: &dialog.User{UserID: id, Email: "jane@example.com"}}
}

// --- free intent routing --------------------------------------------------

func TestGreetReturnsStoredAnswer(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	reply, next, err := svc.Respond(context.Background(), "hello!", &dialog.Context{}, false)
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I assist you today?", reply)
	assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
}

func TestCatalogOverride(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	t.Run("catalog vocabulary opens the product menu", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "i would like to browse products", &dialog.Context{}, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "What would you like to browse?")
		assert.Equal(t, dialog.WaitingProductSection, next.WaitingFor)
	})

	t.Run("blocking vocabulary suppresses the override", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "i want to return a product", &dialog.Context{}, false)
		require.NoError(t, err)
		assert.Equal(t, "You can return any item within 30 days of delivery.", reply)
		assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
	})
}

func TestTrackOrderShowsOpenOrders(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	reply, next, err := svc.Respond(context.Background(), "track order", userCtx(7), false)
	require.NoError(t, err)
	assert.Contains(t, reply, "1) #184533")
	assert.Contains(t, reply, "2) #184790")
	assert.Equal(t, dialog.WaitingOrderChoice, next.WaitingFor)
	assert.Equal(t, []int64{11, 22}, next.OrderChoiceIDs)
	require.NotNil(t, next.User)
	assert.Equal(t, int64(7), next.User.UserID)
}

func TestTrackOrderNoActiveOrders(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	t.Run("past orders but none active", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "track order", userCtx(9), false)
		require.NoError(t, err)
		assert.Contains(t, reply, "no processing or in-transit orders")
		assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
	})

	t.Run("no orders at all", func(t *testing.T) {
		reply, _, err := svc.Respond(context.Background(), "track order", userCtx(55), false)
		require.NoError(t, err)
		assert.Contains(t, reply, "don't have any orders with us yet")
	})
}

func TestTrackOrderWithoutIdentityAsksForEmail(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	reply, next, err := svc.Respond(context.Background(), "track order", &dialog.Context{}, false)
	require.NoError(t, err)
	assert.Contains(t, reply, "email address")
	assert.Equal(t, dialog.WaitingProvideEmail, next.WaitingFor)
}

// --- choose_order_to_track ------------------------------------------------

func TestOrderChoiceRoundTrip(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	conv := userCtx(7)
	conv.WaitingFor = dialog.WaitingOrderChoice
	conv.OrderChoiceIDs = []int64{11, 22}

	reply, next, err := svc.Respond(context.Background(), "2", conv, false)
	require.NoError(t, err)
	assert.Contains(t, reply, "Order #184790")
	assert.Contains(t, reply, "Canvas Tote")
	assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
	assert.Equal(t, int64(7), next.User.UserID)
}

func TestOrderChoiceReprompts(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	conv := userCtx(7)
	conv.WaitingFor = dialog.WaitingOrderChoice
	conv.OrderChoiceIDs = []int64{11, 22}

	for _, input := range []string{"zero", "0", "3"} {
		reply, next, err := svc.Respond(context.Background(), input, conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "number")
		assert.Equal(t, dialog.WaitingOrderChoice, next.WaitingFor)
		assert.Equal(t, []int64{11, 22}, next.OrderChoiceIDs)
	}
}

// --- provide_email --------------------------------------------------------

func TestProvideEmail(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	conv := &dialog.Context{WaitingFor: dialog.WaitingProvideEmail}

	t.Run("invalid email reprompts in state", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "not-an-email", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "valid email")
		assert.Equal(t, dialog.WaitingProvideEmail, next.WaitingFor)
	})

	t.Run("unknown email", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "ghost@example.com", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "couldn't find an account")
		assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
	})

	t.Run("known email resolves identity and lists orders", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), " jane@example.com ", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "#184533")
		assert.Equal(t, dialog.WaitingOrderChoice, next.WaitingFor)
		require.NotNil(t, next.User)
		assert.Equal(t, int64(7), next.User.UserID)
	})
}

// --- product browsing -----------------------------------------------------

func TestProductSection(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	conv := userCtx(7)
	conv.WaitingFor = dialog.WaitingProductSection

	t.Run("garbage input reprompts without state change", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "xyz123notanumber", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "1-6")
		assert.Equal(t, dialog.WaitingProductSection, next.WaitingFor)
	})

	t.Run("out of range reprompts", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "9", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "1-6")
		assert.Equal(t, dialog.WaitingProductSection, next.WaitingFor)
	})

	t.Run("section with products moves to item choice", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "1", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "Classic Tee")
		assert.Contains(t, reply, "RM39.90 (was RM49.90)")
		assert.Equal(t, dialog.WaitingProductItem, next.WaitingFor)
		assert.Equal(t, []int64{1}, next.ProductChoiceIDs)
		assert.Equal(t, 1, next.LastChoice)
		assert.Equal(t, int64(7), next.User.UserID)
	})

	t.Run("empty section stays in state", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "3", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "No products found")
		assert.Equal(t, dialog.WaitingProductSection, next.WaitingFor)
	})

	t.Run("option six exits to main menu", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "6", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "Main menu:")
		assert.Equal(t, dialog.WaitingFallbackMenu, next.WaitingFor)
	})
}

func TestProductItem(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	conv := userCtx(7)
	conv.WaitingFor = dialog.WaitingProductItem
	conv.ProductChoiceIDs = []int64{1, 2}

	t.Run("menu goes back to sections", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "menu", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "What would you like to browse?")
		assert.Equal(t, dialog.WaitingProductSection, next.WaitingFor)
	})

	t.Run("out of range reprompts", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "7", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "isn't on the list")
		assert.Equal(t, dialog.WaitingProductItem, next.WaitingFor)
	})

	t.Run("valid index shows details and clears state", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "1", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "Classic Tee")
		assert.Contains(t, reply, "Sizes: S, M, L")
		assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
		assert.Equal(t, int64(7), next.User.UserID)
	})
}

// --- fallback menu --------------------------------------------------------

func TestFallbackNonInteractive(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	reply, next, err := svc.Respond(context.Background(), "qwertyasdf", &dialog.Context{}, false)
	require.NoError(t, err)
	assert.Contains(t, reply, "Main menu:")
	assert.Contains(t, reply, "Track Your Order")
	assert.Equal(t, dialog.WaitingFallbackMenu, next.WaitingFor)
}

func TestFallbackMenuChoice(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	conv := userCtx(7)
	conv.WaitingFor = dialog.WaitingFallbackMenu

	t.Run("invalid input reprompts", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "abc", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "1-6")
		assert.Equal(t, dialog.WaitingFallbackMenu, next.WaitingFor)
	})

	t.Run("return policy answer", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "3", conv, false)
		require.NoError(t, err)
		assert.Equal(t, "You can return any item within 30 days of delivery.", reply)
		assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
	})

	t.Run("track order routes into order flow", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "1", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "#184533")
		assert.Equal(t, dialog.WaitingOrderChoice, next.WaitingFor)
	})

	t.Run("agent hand-off ends the session", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "6", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "https://example.com/support-form")
		assert.True(t, next.EndSession)
	})
}

func TestFallbackInteractive(t *testing.T) {
	t.Run("retries invalid choices then routes", func(t *testing.T) {
		svc := newTestService(t, newFakeStore())
		prompter := &fakePrompter{replies: []string{"abc", "9", "3"}}
		svc.SetPrompter(prompter)

		reply, next, err := svc.Respond(context.Background(), "qwertyasdf", userCtx(7), true)
		require.NoError(t, err)
		assert.Equal(t, "You can return any item within 30 days of delivery.", reply)
		assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
		assert.False(t, next.EndSession)
	})

	t.Run("three failures hand off and end", func(t *testing.T) {
		svc := newTestService(t, newFakeStore())
		prompter := &fakePrompter{replies: []string{"x", "y", "z"}}
		svc.SetPrompter(prompter)

		reply, next, err := svc.Respond(context.Background(), "qwertyasdf", userCtx(7), true)
		require.NoError(t, err)
		assert.Contains(t, reply, "fill out this form")
		assert.True(t, next.EndSession)
	})
}

// --- session wrap-up ------------------------------------------------------

func TestGoodbyeOpensConfirmEnd(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	reply, next, err := svc.Respond(context.Background(), "bye", userCtx(7), false)
	require.NoError(t, err)
	assert.Contains(t, reply, "anything else")
	assert.Equal(t, dialog.WaitingConfirmEnd, next.WaitingFor)
}

func TestConfirmEnd(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	conv := userCtx(7)
	conv.WaitingFor = dialog.WaitingConfirmEnd

	t.Run("affirm continues the session", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "yes", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "how else can I help")
		assert.Equal(t, dialog.WaitingNone, next.WaitingFor)
	})

	t.Run("deny moves to feedback", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "no", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "how was your experience")
		assert.Equal(t, dialog.WaitingFeedbackChoice, next.WaitingFor)
	})

	t.Run("ambiguous reply reprompts", func(t *testing.T) {
		reply, next, err := svc.Respond(context.Background(), "purple elephants", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "(yes/no)")
		assert.Equal(t, dialog.WaitingConfirmEnd, next.WaitingFor)
	})
}

func TestFeedbackFlow(t *testing.T) {
	t.Run("rating four collects free text", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(t, store)
		conv := userCtx(7)
		conv.WaitingFor = dialog.WaitingFeedbackChoice

		reply, next, err := svc.Respond(context.Background(), "4", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "tell me a bit more")
		assert.Equal(t, dialog.WaitingFeedbackOther, next.WaitingFor)
		assert.Empty(t, store.feedback)

		reply, next, err = svc.Respond(context.Background(), "too slow", next, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "Thanks for your feedback")
		assert.True(t, next.EndSession)

		require.Len(t, store.feedback, 1)
		fb := store.feedback[0]
		assert.Equal(t, 4, fb.Rating)
		assert.Equal(t, "others", fb.Category)
		require.NotNil(t, fb.Comment)
		assert.Equal(t, "too slow", *fb.Comment)
		require.NotNil(t, fb.UserID)
		assert.Equal(t, int64(7), *fb.UserID)
	})

	t.Run("ratings one to three persist immediately", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(t, store)
		conv := userCtx(7)
		conv.WaitingFor = dialog.WaitingFeedbackChoice

		_, next, err := svc.Respond(context.Background(), "2", conv, false)
		require.NoError(t, err)
		assert.True(t, next.EndSession)

		require.Len(t, store.feedback, 1)
		assert.Equal(t, 2, store.feedback[0].Rating)
		assert.Equal(t, "average", store.feedback[0].Category)
		assert.Nil(t, store.feedback[0].Comment)
	})

	t.Run("empty free text reprompts", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(t, store)
		conv := userCtx(7)
		conv.WaitingFor = dialog.WaitingFeedbackOther

		reply, next, err := svc.Respond(context.Background(), "   ", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "few words")
		assert.Equal(t, dialog.WaitingFeedbackOther, next.WaitingFor)
		assert.Empty(t, store.feedback)
	})

	t.Run("invalid rating reprompts", func(t *testing.T) {
		svc := newTestService(t, newFakeStore())
		conv := userCtx(7)
		conv.WaitingFor = dialog.WaitingFeedbackChoice

		reply, next, err := svc.Respond(context.Background(), "fantastic5", conv, false)
		require.NoError(t, err)
		assert.Contains(t, reply, "1-4")
		assert.Equal(t, dialog.WaitingFeedbackChoice, next.WaitingFor)
	})
}

// --- totality and invariants ----------------------------------------------

func TestRespondIsTotal(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	states := []dialog.Waiting{
		dialog.WaitingNone, dialog.WaitingProductSection, dialog.WaitingProductItem,
		dialog.WaitingFallbackMenu, dialog.WaitingOrderChoice, dialog.WaitingProvideEmail,
		dialog.WaitingConfirmEnd, dialog.WaitingFeedbackChoice, dialog.WaitingFeedbackOther,
		dialog.Waiting("order_number"), // stale state from an old client blob
	}
	inputs := []string{"", "  ", "huh?!", "999", "menu", "-1", "0x41"}

	for _, state := range states {
		for _, input := range inputs {
			conv := userCtx(7)
			conv.WaitingFor = state
			reply, next, err := svc.Respond(context.Background(), input, conv, false)
			require.NoError(t, err, "state=%s input=%q", state, input)
			assert.NotEmpty(t, reply, "state=%s input=%q", state, input)
			require.NotNil(t, next, "state=%s input=%q", state, input)
			assert.True(t, next.WaitingFor.Valid(), "state=%s input=%q left %q", state, input, next.WaitingFor)
			require.NotNil(t, next.User, "state=%s input=%q dropped user", state, input)
			assert.Equal(t, int64(7), next.User.UserID)
		}
	}
}

func TestNilContext(t *testing.T) {
	svc := newTestService(t, newFakeStore())

	reply, next, err := svc.Respond(context.Background(), "hello", nil, false)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	require.NotNil(t, next)
}

func TestStoreFailureAbortsTurn(t *testing.T) {
	store := newFakeStore()
	store.patternsErr = errors.New("connection refused")
	svc := newTestService(t, store)

	_, _, err := svc.Respond(context.Background(), "hello", &dialog.Context{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patterns")
}
