package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/service"
)

// SavePost stores a post and its detected categories in one transaction and
// sets post.ID. A zero CreatedAt is set to the current time.
func (s *SQLiteStorage) SavePost(ctx context.Context, post *model.Post) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePost(post); err != nil {
		return err
	}

	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO posts (content, primary_category, primary_confidence, method, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			post.Content, post.PrimaryCategory, post.PrimaryConfidence, string(post.Method), createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get post id: %w", err)
		}

		for rank, c := range post.Categories {
			categoryID, err := ensureCategory(ctx, tx, c.Name)
			if err != nil {
				return err
			}
			score := c.Score
			if score == 0 {
				score = c.Confidence
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO post_categories (post_id, category_id, confidence, score, rank)
				VALUES (?, ?, ?, ?, ?)`,
				id, categoryID, c.Confidence, score, rank); err != nil {
				return fmt.Errorf("failed to link category %q: %w", c.Name, err)
			}
		}

		post.ID = id
		post.CreatedAt = createdAt
		return nil
	})
}

// GetPost returns the post with the given id, or an error wrapping
// common.ErrNotFound.
func (s *SQLiteStorage) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var post model.Post
	var method string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content, primary_category, primary_confidence, method, created_at
		FROM posts WHERE id = ?`, id).Scan(
		&post.ID, &post.Content, &post.PrimaryCategory, &post.PrimaryConfidence, &method, &post.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	post.Method = model.Method(method)

	cats, err := s.loadCategories(ctx, s.db, []int64{post.ID})
	if err != nil {
		return nil, err
	}
	post.Categories = cats[post.ID]

	return &post, nil
}

// ListPosts returns posts newest first. A category filter matches posts that
// detected the category at any rank.
func (s *SQLiteStorage) ListPosts(ctx context.Context, filter service.PostFilter) ([]model.Post, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT p.id, p.content, p.primary_category, p.primary_confidence, p.method, p.created_at
		FROM posts p`
	var args []any

	if filter.Category != "" {
		query += `
		WHERE EXISTS (
			SELECT 1 FROM post_categories pc
			JOIN categories c ON c.id = pc.category_id
			WHERE pc.post_id = p.id AND c.name = ?
		)`
		args = append(args, filter.Category)
	}

	query += ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, max(filter.Offset, 0))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []model.Post
	for rows.Next() {
		var post model.Post
		var method string
		if err := rows.Scan(&post.ID, &post.Content, &post.PrimaryCategory, &post.PrimaryConfidence, &method, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Method = model.Method(method)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	cats, err := s.loadCategories(ctx, s.db, lo.Map(posts, func(p model.Post, _ int) int64 { return p.ID }))
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Categories = cats[posts[i].ID]
	}

	return posts, nil
}

// categoryQueryBatch bounds the IDs bound into one IN clause, well under
// SQLite's host parameter limit.
var categoryQueryBatch = 500

// loadCategories returns the detected categories of each post in rank order.
func (s *SQLiteStorage) loadCategories(ctx context.Context, q queryable, postIDs []int64) (map[int64][]model.DetectedCategory, error) {
	out := make(map[int64][]model.DetectedCategory, len(postIDs))
	for _, batch := range lo.Chunk(postIDs, categoryQueryBatch) {
		if err := loadCategoryBatch(ctx, q, batch, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func loadCategoryBatch(ctx context.Context, q queryable, postIDs []int64, out map[int64][]model.DetectedCategory) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(postIDs)), ",")
	args := lo.Map(postIDs, func(id int64, _ int) any { return id })

	rows, err := q.QueryContext(ctx, `
		SELECT pc.post_id, c.name, pc.confidence, pc.score
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id IN (`+placeholders+`)
		ORDER BY pc.post_id, pc.rank`, args...)
	if err != nil {
		return fmt.Errorf("failed to query post categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			postID int64
			c      model.DetectedCategory
		)
		if err := rows.Scan(&postID, &c.Name, &c.Confidence, &c.Score); err != nil {
			return fmt.Errorf("failed to scan post category: %w", err)
		}
		out[postID] = append(out[postID], c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating post categories: %w", err)
	}
	return nil
}
