package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/domain/navigation"
	"github.com/rpggio/recipebox/internal/domain/recipe"
	"golang.org/x/text/message"
)

const unconfiguredMessage = "Recipe store is not configured."

// Controller owns the recipe record store and the navigation state. All
// state changes happen on the goroutine running Run; public methods hand
// work to it and wait for it to be applied.
type Controller struct {
	auth    Authenticator
	recipes RecipeService
	printer *message.Printer
	logger  *slog.Logger

	actions chan action
	stopped chan struct{}
	running atomic.Bool

	// Owned by the loop.
	state  State
	scope  string
	cmdCtx context.Context
	sub    *recipe.Subscription

	mu           sync.RWMutex
	published    State
	listeners    map[int]func(State)
	nextListener int
}

// NewController creates a controller. Call Run to start it.
func NewController(auth Authenticator, recipes RecipeService, printer *message.Printer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if printer == nil {
		printer = recipe.NewPrinter("")
	}
	state := initialState()
	return &Controller{
		auth:      auth,
		recipes:   recipes,
		printer:   printer,
		logger:    logger,
		actions:   make(chan action),
		stopped:   make(chan struct{}),
		state:     state,
		published: state.clone(),
		listeners: make(map[int]func(State)),
	}
}

// Run signs in, opens the recipe subscription and processes intents until
// ctx is cancelled. The subscription is closed on return.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(c.stopped)

	c.cmdCtx = context.WithoutCancel(ctx)
	go c.authenticate(ctx)

	for {
		var events <-chan recipe.SnapshotEvent
		if c.sub != nil {
			events = c.sub.Events()
		}

		select {
		case <-ctx.Done():
			c.closeSubscription()
			c.logger.Info("controller stopped")
			return nil
		case a := <-c.actions:
			err := a.fn()
			c.publish()
			if a.result != nil {
				a.result <- err
			}
			continue
		case ev := <-events:
			c.applySnapshot(ev)
		}
		c.publish()
	}
}

// State returns a copy of the latest state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.published.clone()
}

// Listen registers fn to receive the state after every change. fn runs on
// the controller goroutine and must not call back into the controller.
func (c *Controller) Listen(fn func(State)) (cancel func()) {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Navigate applies a navigation intent.
func (c *Controller) Navigate(ctx context.Context, intent navigation.Intent) error {
	return c.do(ctx, func() error { return c.navigate(intent) })
}

// NavigatePath applies the intent for a location path.
func (c *Controller) NavigatePath(ctx context.Context, path string) error {
	return c.Navigate(ctx, navigation.Parse(path))
}

func (c *Controller) GoHome(ctx context.Context) error {
	return c.Navigate(ctx, navigation.Home())
}

func (c *Controller) GoCreate(ctx context.Context) error {
	return c.Navigate(ctx, navigation.Create())
}

func (c *Controller) GoDetail(ctx context.Context, id string) error {
	return c.Navigate(ctx, navigation.Detail(id))
}

func (c *Controller) GoEdit(ctx context.Context, id string) error {
	return c.Navigate(ctx, navigation.Edit(id))
}

// SetField changes one field of the current form and clears its error.
func (c *Controller) SetField(ctx context.Context, field, value string) error {
	return c.do(ctx, func() error {
		if !c.onForm() {
			return ErrNoForm
		}
		draft, ok := c.state.Form.Draft.With(field, value)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		c.state.Form.Draft = draft
		delete(c.state.Form.Errors, field)
		return nil
	})
}

// Cancel leaves the current form. Create returns home, Edit returns to the
// record's detail screen.
func (c *Controller) Cancel(ctx context.Context) error {
	return c.do(ctx, func() error {
		switch c.state.Nav.Screen {
		case navigation.ScreenCreate:
			return c.navigate(navigation.Home())
		case navigation.ScreenEdit:
			return c.navigate(navigation.Detail(c.state.Nav.ResourceID))
		default:
			return ErrNoForm
		}
	})
}

// Submit validates the current form and dispatches create or update. It
// returns once the command is dispatched; completion arrives later.
func (c *Controller) Submit(ctx context.Context) error {
	return c.do(ctx, c.submit)
}

// Delete dispatches deletion of a recipe.
func (c *Controller) Delete(ctx context.Context, id string) error {
	return c.do(ctx, func() error { return c.remove(id) })
}

func (c *Controller) navigate(intent navigation.Intent) error {
	next, err := navigation.Apply(c.state.Nav, intent)
	if err != nil {
		return err
	}
	c.enter(next)
	c.resolve()
	return nil
}

// enter switches screens and resets the form for the new screen.
func (c *Controller) enter(next navigation.State) {
	c.logger.Debug("navigate", "from", c.state.Nav.Screen, "to", next.Screen, "id", next.ResourceID)
	c.state.Nav = next
	c.state.CommandError = ""
	switch next.Screen {
	case navigation.ScreenCreate:
		c.state.Form = Form{Draft: recipe.NewDraft()}
	default:
		c.state.Form = Form{}
	}
}

// resolve applies store-dependent redirects and fills a pending edit form.
func (c *Controller) resolve() {
	next := navigation.Resolve(c.state.Nav, c.exists, !c.state.Loading)
	if next != c.state.Nav {
		c.logger.Info("record not found, redirecting", "id", c.state.Nav.ResourceID)
		c.enter(next)
	}

	nav := c.state.Nav
	if nav.Screen == navigation.ScreenEdit && c.state.Form.RecordID != nav.ResourceID {
		if rec, ok := c.state.Recipe(nav.ResourceID); ok {
			c.state.Form = Form{RecordID: rec.ID, Draft: recipe.DraftFromRecipe(rec)}
		}
	}
}

func (c *Controller) exists(id string) bool {
	_, ok := c.state.Recipe(id)
	return ok
}

func (c *Controller) onForm() bool {
	return c.state.Nav.Screen == navigation.ScreenCreate || c.state.Nav.Screen == navigation.ScreenEdit
}

// ready reports whether CRUD commands may reach the store.
func (c *Controller) ready() bool {
	return c.state.Auth == identity.StatusAuthenticated && c.scope != "" && c.state.BlockingError == ""
}

func (c *Controller) submit() error {
	if !c.onForm() {
		return ErrNoForm
	}
	if !c.ready() {
		c.logger.Debug("submit ignored, store not ready", "auth", c.state.Auth)
		return nil
	}

	rec, errs := recipe.ValidateWith(c.printer, c.state.Form.Draft)
	if errs != nil {
		c.state.Form.Errors = errs
		return nil
	}
	c.state.Form.Errors = nil
	c.state.CommandError = ""

	origin := c.state.Nav
	ctx, scope := c.cmdCtx, c.scope
	c.state.InFlight++

	if origin.Screen == navigation.ScreenCreate {
		go func() {
			_, err := c.recipes.Create(ctx, scope, rec)
			c.post(func() { c.completeSave(origin, err) })
		}()
		return nil
	}

	fields := recipe.FieldsFromRecipe(rec)
	go func() {
		err := c.recipes.Update(ctx, scope, origin.ResourceID, fields)
		c.post(func() { c.completeSave(origin, err) })
	}()
	return nil
}

// completeSave returns home only if the user is still on the form that
// issued the command.
func (c *Controller) completeSave(origin navigation.State, err error) {
	c.state.InFlight--
	if err != nil {
		c.state.CommandError = err.Error()
		return
	}
	if c.state.Nav == origin {
		c.enter(navigation.Initial())
	}
}

func (c *Controller) remove(id string) error {
	if id == "" {
		return navigation.ErrMissingID
	}
	if !c.ready() {
		c.logger.Debug("delete ignored, store not ready", "auth", c.state.Auth)
		return nil
	}

	c.state.CommandError = ""
	ctx, scope := c.cmdCtx, c.scope
	c.state.InFlight++
	go func() {
		err := c.recipes.Delete(ctx, scope, id)
		c.post(func() { c.completeDelete(id, err) })
	}()
	return nil
}

// completeDelete returns home only if the deleted record is being viewed now.
func (c *Controller) completeDelete(id string, err error) {
	c.state.InFlight--
	if err != nil {
		c.state.CommandError = err.Error()
		return
	}
	if c.state.Nav.Is(navigation.ScreenDetail, id) {
		c.enter(navigation.Initial())
	}
}

func (c *Controller) authenticate(ctx context.Context) {
	id, err := c.auth.SignIn(ctx)
	status := c.auth.Status()
	c.post(func() { c.applyAuth(ctx, id, status, err) })
}

func (c *Controller) applyAuth(ctx context.Context, id *identity.Identity, status identity.AuthStatus, err error) {
	c.state.Auth = status
	switch {
	case errors.Is(err, identity.ErrUnconfigured):
		c.state.Loading = false
		c.state.BlockingError = unconfiguredMessage
		return
	case err != nil:
		c.state.Loading = false
		c.state.BlockingError = err.Error()
		return
	}

	c.state.Identity = id
	c.scope = recipe.ScopePath
	c.cmdCtx = identity.NewContext(c.cmdCtx, *id)
	c.openSubscription(identity.NewContext(ctx, *id), c.scope)
}

// openSubscription subscribes off the loop and swaps the result in, closing
// any prior subscription first.
func (c *Controller) openSubscription(ctx context.Context, scope string) {
	go func() {
		sub, err := c.recipes.Subscribe(ctx, scope)
		posted := c.post(func() {
			if err != nil {
				c.logger.Error("subscription failed", "scope", scope, "error", err)
				c.state.Loading = false
				c.state.BlockingError = err.Error()
				return
			}
			c.closeSubscription()
			c.sub = sub
		})
		if !posted && sub != nil {
			sub.Close()
		}
	}()
}

func (c *Controller) closeSubscription() {
	if c.sub != nil {
		c.sub.Close()
		c.sub = nil
	}
}

func (c *Controller) applySnapshot(ev recipe.SnapshotEvent) {
	if ev.Err != nil {
		c.logger.Error("subscription error", "error", ev.Err)
		c.state.Loading = false
		c.state.BlockingError = ev.Err.Error()
		c.closeSubscription()
		return
	}
	c.logger.Debug("snapshot", "count", len(ev.Recipes))
	c.state.Recipes = ev.Recipes
	c.state.Loading = false
	c.resolve()
}

func (c *Controller) publish() {
	snapshot := c.state.clone()

	c.mu.Lock()
	c.published = snapshot
	listeners := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.clone())
	}
}

// action is a unit of work for the loop. result, when set, receives the
// outcome after the new state is published.
type action struct {
	fn     func() error
	result chan error
}

// do runs fn on the loop and waits for its result.
func (c *Controller) do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	select {
	case c.actions <- action{fn: fn, result: result}:
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post hands fn to the loop without waiting for it to run. It reports false
// if the loop has stopped.
func (c *Controller) post(fn func()) bool {
	a := action{fn: func() error {
		fn()
		return nil
	}}
	select {
	case c.actions <- a:
		return true
	case <-c.stopped:
		return false
	}
}
