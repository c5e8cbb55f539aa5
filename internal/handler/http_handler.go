package handler

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleksMarkov/LumenTask-server/internal/domain"
	"github.com/AleksMarkov/LumenTask-server/internal/middleware"
	"github.com/AleksMarkov/LumenTask-server/internal/service"
	"github.com/AleksMarkov/LumenTask-server/pkg/apperr"
	"github.com/AleksMarkov/LumenTask-server/pkg/response"
)

// Handler handles HTTP requests.
type Handler struct {
	userService    service.UserService
	boardService   service.BoardService
	supportService service.SupportService
	authMiddleware *middleware.AuthMiddleware
	uploadDir      string
}

// NewHandler creates a new HTTP handler. uploadDir is where multipart files
// are spooled before the avatar pipeline consumes them; empty means the
// system temp directory.
func NewHandler(
	userService service.UserService,
	boardService service.BoardService,
	supportService service.SupportService,
	authMiddleware *middleware.AuthMiddleware,
	uploadDir string,
) *Handler {
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &Handler{
		userService:    userService,
		boardService:   boardService,
		supportService: supportService,
		authMiddleware: authMiddleware,
		uploadDir:      uploadDir,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(h.authMiddleware.RequireAuth())
	{
		users := api.Group("/users")
		{
			users.GET("/me", response.Wrap(h.GetMe))
			users.PUT("/me", response.Wrap(h.UpdateProfile))
			users.PATCH("/me/theme", response.Wrap(h.UpdateTheme))
			users.PATCH("/me/avatar", response.Wrap(h.UpdateAvatar))
		}

		boards := api.Group("/boards")
		{
			boards.POST("", response.Wrap(h.CreateBoard))
			boards.GET("", response.Wrap(h.ListBoards))
			boards.GET("/:id", response.Wrap(h.GetBoard))
			boards.PUT("/:id", response.Wrap(h.UpdateBoard))
			boards.DELETE("/:id", response.Wrap(h.DeleteBoard))
		}

		api.POST("/help", response.Wrap(h.SendHelpEmail))
	}
}

// GetMe returns the current user.
func (h *Handler) GetMe(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	user, err := h.userService.GetMe(c.Request.Context(), ident.UserID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"user": user})
	return nil
}

// UpdateProfile updates the caller's name and/or password.
func (h *Handler) UpdateProfile(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return apperr.BadRequest(err.Error())
	}

	result, err := h.userService.UpdateProfile(c.Request.Context(), ident.Email, &req)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"user": result})
	return nil
}

// UpdateTheme changes the caller's theme preference.
func (h *Handler) UpdateTheme(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	var req domain.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return apperr.BadRequest(err.Error())
	}

	theme, err := h.userService.UpdateTheme(c.Request.Context(), ident.Email, req.Theme)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"user": gin.H{"theme": theme}})
	return nil
}

// UpdateAvatar accepts a multipart avatar upload, spools it to a temp file,
// and runs the avatar pipeline. Without a file the request fails with 400
// before anything else happens.
func (h *Handler) UpdateAvatar(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return apperr.BadRequest("please attach the avatar file")
	}

	tmpPath := filepath.Join(h.uploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		// A failed spool can leave a partial file behind.
		os.Remove(tmpPath)
		return apperr.Internal("failed to store uploaded file", err)
	}

	avatarURL, err := h.userService.UpdateAvatar(c.Request.Context(), ident.UserID, tmpPath)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"avatar": avatarURL})
	return nil
}

// CreateBoard creates a board owned by the caller.
func (h *Handler) CreateBoard(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	var req domain.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return apperr.BadRequest(err.Error())
	}

	board, err := h.boardService.CreateBoard(c.Request.Context(), ident.UserID, &req)
	if err != nil {
		return err
	}

	response.Created(c, gin.H{"board": board})
	return nil
}

// ListBoards returns the caller's boards.
func (h *Handler) ListBoards(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	boards, err := h.boardService.ListBoards(c.Request.Context(), ident.UserID)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"boards": boards})
	return nil
}

// GetBoard returns one of the caller's boards.
func (h *Handler) GetBoard(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	board, err := h.boardService.GetBoard(c.Request.Context(), ident.UserID, c.Param("id"))
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"board": board})
	return nil
}

// UpdateBoard applies a partial update to one of the caller's boards.
func (h *Handler) UpdateBoard(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	var req domain.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return apperr.BadRequest(err.Error())
	}

	board, err := h.boardService.UpdateBoard(c.Request.Context(), ident.UserID, c.Param("id"), &req)
	if err != nil {
		return err
	}

	response.Success(c, gin.H{"board": board})
	return nil
}

// DeleteBoard removes one of the caller's boards.
func (h *Handler) DeleteBoard(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	if err := h.boardService.DeleteBoard(c.Request.Context(), ident.UserID, c.Param("id")); err != nil {
		return err
	}

	response.Success(c, gin.H{"message": "Board deleted successfully"})
	return nil
}

// SendHelpEmail sends the support acknowledgement and notification emails.
func (h *Handler) SendHelpEmail(c *gin.Context) error {
	ident := middleware.GetIdentity(c)

	var req domain.HelpEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return apperr.BadRequest(err.Error())
	}

	if err := h.supportService.SendHelpEmail(c.Request.Context(), ident.DisplayName, req.Email, req.Comment); err != nil {
		return err
	}

	response.Success(c, gin.H{"message": "Email sent successfully"})
	return nil
}
