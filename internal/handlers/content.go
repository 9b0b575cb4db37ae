package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mintfeed/mintfeed/internal/content"
	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/logger"
	"github.com/mintfeed/mintfeed/internal/models"
	"github.com/mintfeed/mintfeed/internal/storage"
)

// GetPosts returns all posts in the collection, newest first.
func (h *Handlers) GetPosts(c *gin.Context) {
	posts, err := h.content.Posts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// GetPost returns a single post with its replies, oldest reply first.
func (h *Handlers) GetPost(c *gin.Context) {
	id := c.Param("id")

	post, err := h.content.Post(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	replies, err := h.content.Replies(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post, "replies": replies})
}

// GetReplies returns a post's replies, oldest first.
func (h *Handlers) GetReplies(c *gin.Context) {
	replies, err := h.content.Replies(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replies": replies, "count": len(replies)})
}

// GetUserPosts returns every post by one author, newest first.
func (h *Handlers) GetUserPosts(c *gin.Context) {
	posts, err := h.content.PostsByAuthor(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// GetProfile returns the profile owned by a wallet address.
func (h *Handlers) GetProfile(c *gin.Context) {
	profile, err := h.content.Profile(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		respondError(c, errors.NotFound("profile"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// CreateContent mints a new profile, post, or reply from a multipart form.
// Fields: kind, content, username, bio, parent_post, and an optional
// image file.
func (h *Handlers) CreateContent(c *gin.Context) {
	req := content.CreateRequest{
		Kind:       models.ContentKind(c.PostForm("kind")),
		Content:    c.PostForm("content"),
		Username:   c.PostForm("username"),
		Bio:        c.PostForm("bio"),
		ParentPost: c.PostForm("parent_post"),
	}

	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, storage.MaxImageBytes+1))
		if readErr != nil {
			respondError(c, errors.BadRequest("could not read image upload"))
			return
		}
		req.Image = data
		req.ImageMime = header.Header.Get("Content-Type")
		if req.ImageMime == "" || req.ImageMime == "application/octet-stream" {
			req.ImageMime = http.DetectContentType(data)
		}
	}

	entity, err := h.content.Create(c.Request.Context(), req, func(phase content.Phase) {
		logger.Log.Debug("Create phase",
			zap.String("kind", string(req.Kind)),
			zap.String("phase", string(phase)),
		)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"content": entity, "kind": entity.Kind()})
}
