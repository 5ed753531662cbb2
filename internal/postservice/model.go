package postservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("record not found")

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

func (m *PostModel) insert(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (id, title, slug, excerpt, content, category, author, cover_image, read_time, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	args := []any{post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.Category, post.Author, post.CoverImage, post.ReadTime, post.Published}

	return m.db.QueryRowContext(ctx, query, args...).Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (m *PostModel) getPostById(ctx context.Context, id string) (*Post, error) {
	query := `
		SELECT id, title, slug, excerpt, content, category, author, cover_image, read_time, published, created_at, updated_at
		FROM posts
		WHERE id = $1`

	row := m.db.QueryRowContext(ctx, query, id)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.Category, &post.Author, &post.CoverImage, &post.ReadTime, &post.Published, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

// getPostBySlug resolves duplicate slugs to the oldest post so repeated
// lookups always return the same record.
func (m *PostModel) getPostBySlug(ctx context.Context, slug string) (*Post, error) {
	query := `
		SELECT id, title, slug, excerpt, content, category, author, cover_image, read_time, published, created_at, updated_at
		FROM posts
		WHERE slug = $1
		ORDER BY created_at ASC, id ASC
		LIMIT 1`

	row := m.db.QueryRowContext(ctx, query, slug)

	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.Category, &post.Author, &post.CoverImage, &post.ReadTime, &post.Published, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

// update replaces every mutable field; id and created_at are preserved.
func (m *PostModel) update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $1, slug = $2, excerpt = $3, content = $4, category = $5, author = $6, cover_image = $7, read_time = $8, published = $9, updated_at = now()
		WHERE id = $10
		RETURNING created_at, updated_at`

	args := []any{post.Title, post.Slug, post.Excerpt, post.Content, post.Category, post.Author, post.CoverImage, post.ReadTime, post.Published, post.ID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM posts
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getPosts returns every post, newest first. An empty category means no
// filter.
func (m *PostModel) getPosts(ctx context.Context, category string) ([]Post, error) {
	query := `
		SELECT id, title, slug, excerpt, content, category, author, cover_image, read_time, published, created_at, updated_at
		FROM posts
		WHERE (category = $1 OR $1 = '')
		ORDER BY created_at DESC`

	rows, err := m.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.Category, &post.Author, &post.CoverImage, &post.ReadTime, &post.Published, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// getLatestPosts returns the newest published posts for the public site.
func (m *PostModel) getLatestPosts(ctx context.Context, limit int) ([]Post, error) {
	query := `
		SELECT id, title, slug, excerpt, content, category, author, cover_image, read_time, published, created_at, updated_at
		FROM posts
		WHERE published = true
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.Category, &post.Author, &post.CoverImage, &post.ReadTime, &post.Published, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
