package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"courier-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	tokens   service.TokenService
	messages service.MessageService
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, tokens service.TokenService, messages service.MessageService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:    users,
		tokens:   tokens,
		messages: messages,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true
	router.Use(corsMiddleware())
	router.Use(secureHeaders())
	router.Use(requestLogger(h.logger))

	api := router.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", h.register)
		users.POST("/login", h.login)
		users.GET("/profile", RequireAuth(h.tokens), h.profile)

		messages := api.Group("/messages")
		messages.POST("/send", RequireAuth(h.tokens), h.sendMessage)
	}

	router.NoRoute(invalidEndpoint)
	router.NoMethod(invalidEndpoint)
}

func invalidEndpoint(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "invalid endpoint"})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Lock     string `json:"lock"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, email and lock are required"})
		return
	}

	_, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Lock:     req.Lock,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		h.renderRegisterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successful account creation"})
}

func (h *Handler) renderRegisterError(c *gin.Context, err error) {
	var policyErr *service.PolicyError
	if errors.As(err, &policyErr) {
		body := gin.H{"message": policyErr.Message}
		if len(policyErr.Missing) > 0 {
			body["missing"] = policyErr.Missing
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	switch {
	case errors.Is(err, service.ErrNameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrNameAndEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		h.logger.WithError(err).Error("register user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create account"})
	}
}

type loginRequest struct {
	User string `json:"user"`
	Lock string `json:"lock"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.User == "" || req.Lock == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email/name and/or lock is missing"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.User, req.Lock)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "could not find/verify user with passed credentials"})
			return
		}
		h.logger.WithError(err).Error("authenticate user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not log in"})
		return
	}

	token, expiresIn, err := h.tokens.Issue(c.Request.Context(), user)
	if err != nil {
		h.logger.WithError(err).Error("issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "successfully logged in",
		"token":     token,
		"expiresIn": expiresIn,
	})
}

func (h *Handler) profile(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	token, _ := tokenFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "bad token"})
		return
	}

	active, err := h.tokens.Active(c.Request.Context(), token)
	if err != nil {
		h.logger.WithError(err).Error("check token activity")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch profile"})
		return
	}
	if !active {
		c.JSON(http.StatusBadRequest, gin.H{"message": "token is inactive"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "successful profile fetch",
		"profile": claims,
	})
}

type sendMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "bad token"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.To == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "to and message are required"})
		return
	}

	if _, err := h.messages.Send(c.Request.Context(), claims.Name, req.To, req.Message); err != nil {
		if errors.Is(err, service.ErrRecipientNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "recipient not found"})
			return
		}
		h.logger.WithError(err).Error("send message")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message sent"})
}
