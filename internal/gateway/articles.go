package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
)

type articleWire struct {
	ID           string     `json:"id" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Content      string     `json:"content"`
	UniversityID string     `json:"universityId"`
	Status       string     `json:"status" validate:"required"`
	CreatedAt    time.Time  `json:"createdAt"`
	PublishedAt  *time.Time `json:"publishedAt"`
}

type articlePageWire struct {
	PageInfo
	Items []articleWire `json:"items"`
}

func (c *Client) articleFromWire(w articleWire) (*models.Article, error) {
	if err := c.checkWire(w); err != nil {
		return nil, err
	}
	status, err := articleStatusFromWire(w.Status)
	if err != nil {
		return nil, err
	}
	return &models.Article{
		ID:           w.ID,
		Title:        w.Title,
		Content:      w.Content,
		UniversityID: w.UniversityID,
		Status:       status,
		CreatedAt:    w.CreatedAt,
		PublishedAt:  w.PublishedAt,
	}, nil
}

// ListArticles fetches one page of articles in the given status.
func (c *Client) ListArticles(ctx context.Context, sess Session, status models.ContentStatus, page, pageSize int) ([]models.Article, PageInfo, error) {
	var wire articlePageWire
	if err := c.call(ctx, sess, http.MethodGet, "/articles/"+string(status), pageQuery(page, pageSize), nil, &wire); err != nil {
		return nil, PageInfo{}, err
	}
	articles := make([]models.Article, 0, len(wire.Items))
	for _, item := range wire.Items {
		article, err := c.articleFromWire(item)
		if err != nil {
			return nil, PageInfo{}, err
		}
		articles = append(articles, *article)
	}
	return articles, wire.PageInfo, nil
}

// GetArticle fetches a single article by id.
func (c *Client) GetArticle(ctx context.Context, sess Session, id string) (*models.Article, error) {
	var wire articleWire
	if err := c.call(ctx, sess, http.MethodGet, "/articles/by-id/"+id, nil, nil, &wire); err != nil {
		return nil, err
	}
	return c.articleFromWire(wire)
}

// CreateArticleInput is the create payload forwarded to the gateway.
type CreateArticleInput struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	UniversityID string `json:"universityId,omitempty"`
}

// CreateArticle creates a draft article and returns the assigned id.
func (c *Client) CreateArticle(ctx context.Context, sess Session, in CreateArticleInput) (string, error) {
	var created struct {
		ID string `json:"id" validate:"required"`
	}
	if err := c.call(ctx, sess, http.MethodPost, "/articles", nil, in, &created); err != nil {
		return "", err
	}
	if err := c.checkWire(created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// UpdateArticleInput is the patch payload for a draft article.
type UpdateArticleInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateArticle updates a draft article in place.
func (c *Client) UpdateArticle(ctx context.Context, sess Session, id string, in UpdateArticleInput) error {
	return c.call(ctx, sess, http.MethodPut, "/articles/"+id, nil, in, nil)
}

// SubmitArticle moves a draft to the admin review queue.
func (c *Client) SubmitArticle(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/articles/submit/"+id, nil, nil, nil)
}

// ApproveArticle publishes a pending article.
func (c *Client) ApproveArticle(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/articles/approve/"+id, nil, nil, nil)
}

// RejectArticle returns a pending article to its owner as a draft.
func (c *Client) RejectArticle(ctx context.Context, sess Session, id string) error {
	return c.call(ctx, sess, http.MethodPut, "/articles/reject/"+id, nil, nil, nil)
}
