// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/user/domain/entity"
	"auth_backend/internal/feature/user/transport/http/dto"
	"auth_backend/internal/feature/user/usecase"
	"auth_backend/internal/platform/http/binding"
	jwtmw "auth_backend/internal/platform/jwt"
)

// UserUsecase はユーザー操作のユースケースを定義します。
type UserUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.User, error)
	Update(ctx context.Context, in usecase.UpdateInput) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
}

// UserHandler はユーザーCRUDのHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Create はユーザー登録を処理します。成功時は201を返却します。
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create user validation failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(binding.Translate(err, "Error creating user"))
		return
	}
	user, err := h.users.Create(c.Request.Context(), usecase.CreateInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DocumentID:  req.DocumentID,
	})
	if err != nil {
		slog.Warn("create user failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user created", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageRes{Message: "User created successfully", Status: http.StatusCreated})
}

// Update は認証済みユーザー自身の情報を部分更新します。
// bodyのidは省略可能ですが、指定する場合は呼び出し元と一致する必要があります。
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(binding.Translate(err, "Error updating user"))
		return
	}

	id, _ := jwtmw.UserIDFrom(c)
	if req.ID != nil && *req.ID != id {
		slog.Warn("update of another user refused", "caller_id", id, "target_id", *req.ID, "remote_addr", c.ClientIP())
		_ = c.Error(usecase.ErrNotOwner)
		return
	}

	user, err := h.users.Update(c.Request.Context(), usecase.UpdateInput{
		ID:          id,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DocumentID:  req.DocumentID,
		IsActive:    req.IsActive,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("user updated", "user_id", user.ID, "remote_addr", c.ClientIP())

	res := dto.UpdateUserRes{Message: "User updated successfully", Status: http.StatusOK}
	if body, err := dto.NewUserRes(user); err == nil {
		res.User = body
	}
	c.JSON(http.StatusOK, res)
}

// List は有効なユーザーの一覧を返します。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]*dto.UserRes, 0, len(users))
	for _, u := range users {
		body, err := dto.NewUserRes(u)
		if err != nil {
			_ = c.Error(err)
			return
		}
		out = append(out, body)
	}
	c.JSON(http.StatusOK, out)
}

// Detail は?id=で指定されたユーザー、省略時は認証済みユーザーを返します。
func (h *UserHandler) Detail(c *gin.Context) {
	var id uint
	if raw := c.Query("id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 0)
		if err != nil || parsed == 0 {
			_ = c.Error(usecase.ErrMissingID)
			return
		}
		id = uint(parsed)
	} else if caller, ok := jwtmw.UserIDFrom(c); ok {
		id = caller
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	body, err := dto.NewUserRes(user)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, body)
}
