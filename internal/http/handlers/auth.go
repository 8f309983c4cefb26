package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voyplan/triphub/internal/auth"
	"github.com/voyplan/triphub/internal/config"
	"github.com/voyplan/triphub/internal/domain/user"
	"github.com/voyplan/triphub/internal/repo/postgres"
	"github.com/voyplan/triphub/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, email, passwordHash string) (user.User, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
	}
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req CredentialsRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.userWriter.Create(cctx, req.Email, hash)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			RespondBadRequest(ctx, "email_taken", "Email is already in use.", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	token, err := h.jwt.Generate(u.ID, u.Email)

	if err != nil {
		RespondInternal(ctx, "Could not generate session token")
		return
	}

	ctx.JSON(http.StatusOK, sessionResponse{
		Token: token,
		User:  u.Public(),
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req CredentialsRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		// unknown email and wrong password answer identically
		RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnauthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := h.jwt.Generate(foundUser.ID, foundUser.Email)

	if err != nil {
		RespondInternal(ctx, "Could not generate session token")
		return
	}

	ctx.JSON(http.StatusOK, sessionResponse{
		Token: token,
		User:  foundUser.Public(),
	})
}
