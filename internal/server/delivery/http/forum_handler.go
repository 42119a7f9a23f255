package http

import (
	"net/http"

	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/internal/server/service"
	"stock-impact-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForumHandler handles forum post and comment routes.
type ForumHandler struct {
	forumService service.ForumService
	logger       *logger.Logger
}

// NewForumHandler creates a new ForumHandler.
func NewForumHandler(forumService service.ForumService, logger *logger.Logger) *ForumHandler {
	return &ForumHandler{forumService: forumService, logger: logger}
}

// RegisterRoutes registers the forum routes on the API group.
func (h *ForumHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/forum/posts", h.GetPosts)
	g.POST("/forum/posts", h.CreatePost, auth)
	g.GET("/forum/posts/:id", h.GetPost)
	g.GET("/forum/posts/:id/comments", h.GetComments)
	g.POST("/forum/posts/:id/comments", h.AddComment, auth)
	g.POST("/forum/posts/:id/upvote", h.UpvotePost, auth)
}

// GetPosts godoc
// @Summary List forum posts
// @Tags forum
// @Produce json
// @Param limit query int false "Maximum items" default(20)
// @Param skip query int false "Offset" default(0)
// @Success 200 {array} entity.ForumPost
// @Router /forum/posts [get]
func (h *ForumHandler) GetPosts(c echo.Context) error {
	limit := queryInt(c, "limit", 20)
	skip := queryInt(c, "skip", 0)

	posts, err := h.forumService.GetPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Create a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body dto.CreatePostRequest true "Post to create"
// @Success 200 {object} entity.ForumPost
// @Failure 400 {object} dto.ErrorResponse
// @Router /forum/posts [post]
func (h *ForumHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var req dto.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "title is required"})
	}

	post, err := h.forumService.CreatePost(c.Request().Context(), user, req.Title, req.Content, req.Stocks)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPost godoc
// @Summary Get a forum post
// @Tags forum
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} entity.ForumPost
// @Failure 404 {object} dto.ErrorResponse
// @Router /forum/posts/{id} [get]
func (h *ForumHandler) GetPost(c echo.Context) error {
	post, err := h.forumService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// AddComment godoc
// @Summary Comment on a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param comment body dto.CreateCommentRequest true "Comment to create"
// @Success 200 {object} entity.Comment
// @Failure 404 {object} dto.ErrorResponse
// @Router /forum/posts/{id}/comments [post]
func (h *ForumHandler) AddComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}

	var req dto.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "content is required"})
	}

	comment, err := h.forumService.AddComment(c.Request().Context(), user, c.Param("id"), req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// GetComments godoc
// @Summary List a post's comments in creation order
// @Tags forum
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {array} entity.Comment
// @Failure 404 {object} dto.ErrorResponse
// @Router /forum/posts/{id}/comments [get]
func (h *ForumHandler) GetComments(c echo.Context) error {
	comments, err := h.forumService.GetComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}

// UpvotePost godoc
// @Summary Upvote a forum post
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /forum/posts/{id}/upvote [post]
func (h *ForumHandler) UpvotePost(c echo.Context) error {
	if err := h.forumService.UpvotePost(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Post upvoted successfully"})
}
