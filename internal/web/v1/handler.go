// Package v1 serves the HTML surface of the gateway: signup and login forms,
// the session-gated members area, and logout.
package v1

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ndhoang/authgate/internal/core/domain"
	logicv1 "github.com/ndhoang/authgate/internal/logic/v1"
	"github.com/ndhoang/authgate/middleware"
)

// Handler groups the HTTP handlers for the gateway pages.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth   *logicv1.AuthService
	cookie *CookieCodec
}

// NewHandler creates a new Handler with the given AuthService and cookie
// codec.
func NewHandler(auth *logicv1.AuthService, cookie *CookieCodec) *Handler {
	return &Handler{auth: auth, cookie: cookie}
}

// RegisterRoutes registers the page routes on the given engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Home)
	r.GET("/signup", h.SignupForm)
	r.POST("/signupSubmit", h.SignupSubmit)
	r.GET("/login", h.LoginForm)
	r.POST("/loginSubmit", h.LoginSubmit)
	r.GET("/members", h.Members)
	r.GET("/logout", h.Logout)
}

// Home greets an authenticated visitor by name; anonymous visitors get the
// signup/login choices.
func (h *Handler) Home(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.home", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	user, err := h.auth.CurrentUser(ctx, h.cookie.Read(c))
	if err != nil {
		h.serverError(c, err, "Session lookup failed")
		return
	}

	if user == nil {
		htmlPage(c, `
			<a href="/signup"><button>Sign Up</button></a>
			<a href="/login"><button>Log In</button></a>`)
		return
	}

	htmlPage(c, fmt.Sprintf(`
		<h1>Hello, %s!</h1>
		<a href="/members"><button>Go to Members Area</button></a>
		<a href="/logout"><button>Logout</button></a>`,
		html.EscapeString(user.Name)))
}

// SignupForm renders the signup form.
func (h *Handler) SignupForm(c *gin.Context) {
	htmlPage(c, `
		<h1>Sign Up</h1>
		<form action="/signupSubmit" method="post">
			<input name="name" type="text" placeholder="name"><br>
			<input name="email" type="email" placeholder="email"><br>
			<input name="password" type="password" placeholder="password"><br>
			<button type="submit">Submit</button>
		</form>`)
}

// SignupSubmit handles the signup form post. An empty field renders a
// message naming the field with a retry link; a schema failure redirects
// back to the form; success establishes the session and lands on /members.
func (h *Handler) SignupSubmit(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.signup_submit", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := middleware.LoggerFromContext(c)

	var req domain.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	}

	sessionID, err := h.auth.Signup(ctx, req)
	if err != nil {
		var verr *logicv1.ValidationError
		switch {
		case errors.As(err, &verr) && verr.Kind == logicv1.EmptyField:
			htmlPage(c, fmt.Sprintf(`
				<p>%s is required.</p>
				<a href="/signup">Try again</a>`,
				html.EscapeString(verr.Field)))
		case errors.As(err, &verr):
			c.Redirect(http.StatusSeeOther, "/signup")
		default:
			h.serverError(c, err, "Signup failed")
		}
		return
	}

	if err := h.cookie.Write(c, sessionID); err != nil {
		h.serverError(c, err, "Session cookie encode failed")
		return
	}

	logger.Info().Str("email", req.Email).Msg("Signup successful")
	c.Redirect(http.StatusSeeOther, "/members")
}

// LoginForm renders the login form.
func (h *Handler) LoginForm(c *gin.Context) {
	htmlPage(c, `
		<h1>Log In</h1>
		<form action="/loginSubmit" method="post">
			<input name="email" type="email" placeholder="email"><br>
			<input name="password" type="password" placeholder="password"><br>
			<button type="submit">Submit</button>
		</form>`)
}

// LoginSubmit handles the login form post. A malformed email renders a
// message; an unknown user renders a message; a wrong password redirects
// back to the form. None of those reveal more than the source did.
func (h *Handler) LoginSubmit(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.login_submit", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	logger := middleware.LoggerFromContext(c)

	var req domain.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		span.RecordError(err)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	sessionID, err := h.auth.Login(ctx, req)
	if err != nil {
		var verr *logicv1.ValidationError
		switch {
		case errors.As(err, &verr):
			htmlPage(c, `
				<p>Invalid email.</p>
				<a href="/login">Try again</a>`)
		case errors.Is(err, logicv1.ErrUserNotFound):
			htmlPage(c, `
				<p>User not found.</p>
				<a href="/login">Try again</a>`)
		case errors.Is(err, logicv1.ErrInvalidCredentials):
			c.Redirect(http.StatusSeeOther, "/login")
		default:
			h.serverError(c, err, "Login failed")
		}
		return
	}

	if err := h.cookie.Write(c, sessionID); err != nil {
		h.serverError(c, err, "Session cookie encode failed")
		return
	}

	logger.Info().Str("email", req.Email).Msg("Login successful")
	c.Redirect(http.StatusSeeOther, "/members")
}

// Members is the protected area. Anonymous visitors are sent back to the
// home page rather than being served the page.
func (h *Handler) Members(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.members", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	user, err := h.auth.CurrentUser(ctx, h.cookie.Read(c))
	if err != nil {
		h.serverError(c, err, "Session lookup failed")
		return
	}
	if user == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	htmlPage(c, fmt.Sprintf(`
		<h1>Welcome to the members area, %s!</h1>
		<a href="/logout"><button>Logout</button></a>`,
		html.EscapeString(user.Name)))
}

// Logout destroys the session and clears the cookie. Idempotent: logging
// out while anonymous renders the same confirmation.
func (h *Handler) Logout(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.logout", trace.WithAttributes(
		attribute.String("layer", "web"),
	))
	defer span.End()

	if err := h.auth.Logout(ctx, h.cookie.Read(c)); err != nil {
		h.serverError(c, err, "Logout failed")
		return
	}
	h.cookie.Clear(c)

	htmlPage(c, `<p>You are logged out, have a nice day!</p>`)
}

func (h *Handler) serverError(c *gin.Context, err error, msg string) {
	middleware.LoggerFromContext(c).Error().Err(err).Msg(msg)
	c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
		[]byte(`<p>Something went wrong. Please try again later.</p>`))
}

func htmlPage(c *gin.Context, body string) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}
