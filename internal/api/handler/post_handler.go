package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pintunes/pintunes-api/internal/api/middleware"
	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

// PostHandler handles the feed endpoints.
type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type listPostsResponse struct {
	Success bool          `json:"success"`
	Posts   []domain.Post `json:"posts"`
}

type createPostResponse struct {
	Success bool        `json:"success"`
	Post    domain.Post `json:"post"`
}

// List returns all well-formed posts in store order.
//
// @Summary      List feed posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  listPostsResponse
// @Failure      502  {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "Failed to fetch posts"})
	}
	return c.JSON(http.StatusOK, listPostsResponse{Success: true, Posts: posts})
}

// Create publishes a post from a multipart form. Author identity comes from
// the session when one is present, otherwise from the submitted form fields.
//
// @Summary      Publish a post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        content      formData  string  true   "Post text"
// @Param        author_name  formData  string  false  "Display name for anonymous posts"
// @Param        image        formData  file    false  "Optional image"
// @Success      201  {object}  createPostResponse
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	content := c.FormValue("content")

	session := middleware.CtxSession(c)
	authorName := session.Username
	if session.Anonymous() {
		authorName = c.FormValue("author_name")
	}

	input := ports.CreatePostInput{
		AuthorCID:  session.CID,
		AuthorName: authorName,
		Content:    content,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid image upload"})
		}
		defer src.Close()
		input.Image = src
		input.ImageFilename = file.Filename
	}

	post, err := h.posts.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Post content is required"})
		}
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "Failed to create post"})
	}

	return c.JSON(http.StatusCreated, createPostResponse{Success: true, Post: *post})
}
