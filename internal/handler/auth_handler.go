/**
* Name: 			auth_handler.go
* Description: 		Gin 프레임워크의 HTTP 핸들러
* Workflow: 		회원가입, 로그인, 프로필 조회
 */
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StyleSense/internal/auth"
	"StyleSense/internal/middleware"
	"StyleSense/internal/models"
	"StyleSense/internal/storage"
)

// /signup 요청 바디
type SignupRequest struct {
	Username        string              `json:"username" binding:"required" example:"new_user"`
	Password        string              `json:"password" binding:"required" example:"password123"`
	ConfirmPassword string              `json:"confirm_password" binding:"required" example:"password123"`
	Profile         models.StyleProfile `json:"profile"`
}

// /login 요청 바디
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"my_user"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginSuccessResponse struct {
	Token    string              `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Username string              `json:"username" example:"my_user"`
	Profile  models.StyleProfile `json:"profile"`
}

// 프로필 조회 응답
type ProfileResponse struct {
	Username string              `json:"username" example:"gildong"`
	Profile  models.StyleProfile `json:"profile"`
}

const invalidCredentials = "Invalid username or password"

// Signup godoc
// @Summary      회원가입 (Signup)
// @Description  새로운 사용자 계정과 스타일 프로필을 생성합니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        X-Invite-Code header string false "초대 코드 (설정된 경우 필수)"
// @Param        request body handler.SignupRequest true "회원가입 요청 정보"
// @Success      201 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      403 {object} handler.ErrorResponse "초대 코드 불일치"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// " "으로 입력되는 케이스 방지
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and Password cannot be empty"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	hashed, err := h.Hasher.Hash(req.Password)
	if err != nil {
		h.Logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	err = h.Store.CreateUser(c.Request.Context(), models.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Profile:      req.Profile,
		Wardrobe:     []models.WardrobeItem{},
	})
	if err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		h.Logger.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user (database error)"})
		return
	}

	h.Logger.Info("user signed up", zap.String("username", req.Username))
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Account created! Please login."})
}

// Login godoc
// @Summary      로그인 (Login)
// @Description  사용자명과 비밀번호로 로그인하고 JWT 토큰을 발급받습니다.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "로그인 요청 정보"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      401 {object} handler.ErrorResponse "인증 실패 (자격 증명 오류)"
// @Failure      500 {object} handler.ErrorResponse "서버 내부 오류"
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.Store.GetUser(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
			return
		}
		h.Logger.Error("failed to load user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	tokenString, err := h.Tokens.GenerateToken(user.Username)
	if err != nil {
		h.Logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginSuccessResponse{Token: tokenString, Username: user.Username, Profile: user.Profile})
}

// Profile godoc
// @Summary      프로필 조회 (Profile)
// @Description  인증된 사용자의 스타일 프로필을 조회합니다. (JWT 필요)
// @Tags         API (Protected)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.ProfileResponse
// @Failure      401 {object} handler.ErrorResponse "인증 토큰 누락 또는 만료"
// @Router       /api/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{Username: middleware.Username(c), Profile: user.Profile})
}
