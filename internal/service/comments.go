package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/cinepick/internal/domain"
)

const maxRating = 10

// spoilerKeywords flag a comment as a spoiler when any appears in its text
var spoilerKeywords = []string{"스포일러", "스포", "결말", "반전", "끝", "마지막"}

// CommentInput is a comment as submitted by the user
type CommentInput struct {
	TitleID  int
	UserID   string
	UserName string
	Text     string
	Rating   float64 // 0 means no rating
}

// CommentService validates and stores title comments
type CommentService struct {
	repo   domain.CommentRepository
	logger *slog.Logger
}

// NewCommentService creates a comment service. A nil repository makes
// every call fail with domain.ErrDocStoreUnavailable.
func NewCommentService(repo domain.CommentRepository, logger *slog.Logger) *CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentService{repo: repo, logger: logger}
}

// Add validates the input and stores it. Comments mentioning a spoiler
// keyword are flagged.
func (s *CommentService) Add(ctx context.Context, in CommentInput) (domain.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if in.Rating < 0 || in.Rating > maxRating {
		return domain.Comment{}, domain.ErrInvalidRating
	}
	if s.repo == nil {
		return domain.Comment{}, domain.ErrDocStoreUnavailable
	}

	c, err := s.repo.AddComment(ctx, domain.Comment{
		TitleID:   in.TitleID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Text:      text,
		Rating:    in.Rating,
		IsSpoiler: IsSpoiler(text),
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to add comment: %w", err)
	}
	s.logger.Info("added comment", "titleID", c.TitleID, "commentID", c.ID, "spoiler", c.IsSpoiler)
	return c, nil
}

// List returns a title's comments, newest first
func (s *CommentService) List(ctx context.Context, titleID int) ([]domain.Comment, error) {
	if s.repo == nil {
		return nil, domain.ErrDocStoreUnavailable
	}
	comments, err := s.repo.ListComments(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// IsSpoiler reports whether text mentions a spoiler keyword
func IsSpoiler(text string) bool {
	for _, kw := range spoilerKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
