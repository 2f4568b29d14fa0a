package controllers

import (
	"net/http"
	"time"

	"github.com/farmly/farm-market-api/config"
	"github.com/farmly/farm-market-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateCommentRequest represents the request body for posting a comment
type CreateCommentRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Text  string `json:"text" binding:"required"`
}

// CreateReplyRequest represents the request body for replying to a comment
type CreateReplyRequest struct {
	Name string `json:"name" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// CreateComment handles POST /api/v1/posts/:postId/comments. Comments are
// auto-approved on creation; there is no pending state.
func CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	comment := models.Comment{
		ID:      uuid.NewString(),
		PostID:  c.Param("postId"),
		Name:    req.Name,
		Email:   req.Email,
		Text:    req.Text,
		Status:  models.CommentApproved,
		Replies: []models.Reply{},
	}

	db := config.GetDB()
	if err := db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create comment",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    comment,
	})
}

// ListComments handles GET /api/v1/posts/:postId/comments - approved comments
// for a post, oldest first
func ListComments(c *gin.Context) {
	db := config.GetDB()

	var comments []models.Comment
	if err := db.Where("post_id = ? AND status = ?", c.Param("postId"), models.CommentApproved).
		Preload("Replies").
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch comments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comments,
	})
}

// ListAllComments handles GET /api/v1/moderation/comments - every comment
// including spam, for the moderation console
func ListAllComments(c *gin.Context) {
	db := config.GetDB()

	query := db.Preload("Replies").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch comments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comments,
	})
}

// setCommentStatus flips a comment between approved and spam
func setCommentStatus(c *gin.Context, status string) {
	db := config.GetDB()

	var comment models.Comment
	if err := db.Preload("Replies").First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMMENT_NOT_FOUND",
				"message": "Comment not found",
			},
		})
		return
	}

	if err := db.Model(&comment).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update comment",
			},
		})
		return
	}

	comment.Status = status

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comment,
	})
}

// MarkCommentSpam handles POST /api/v1/moderation/comments/:id/spam
func MarkCommentSpam(c *gin.Context) {
	setCommentStatus(c, models.CommentSpam)
}

// RestoreComment handles POST /api/v1/moderation/comments/:id/restore
func RestoreComment(c *gin.Context) {
	setCommentStatus(c, models.CommentApproved)
}

// CreateReply handles POST /api/v1/moderation/comments/:id/replies
func CreateReply(c *gin.Context) {
	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var comment models.Comment
	if err := db.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMMENT_NOT_FOUND",
				"message": "Comment not found",
			},
		})
		return
	}

	reply := models.Reply{
		ID:        uuid.NewString(),
		CommentID: comment.ID,
		Name:      req.Name,
		Text:      req.Text,
		Date:      time.Now(),
	}

	if err := db.Create(&reply).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create reply",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    reply,
	})
}

// DeleteReply handles DELETE /api/v1/moderation/comments/:id/replies/:replyId
func DeleteReply(c *gin.Context) {
	db := config.GetDB()

	result := db.Where("id = ? AND comment_id = ?", c.Param("replyId"), c.Param("id")).
		Delete(&models.Reply{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete reply",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REPLY_NOT_FOUND",
				"message": "Reply not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
