package postservice

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deverhart/folio/internal/common"
)

func setupTestEnvironment(t *testing.T) (*PostService, *sql.DB, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM posts")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewPostService(db, cache), db, cleanup
}

func createRandomPost(db *sql.DB, title string) (*string, error) {
	query := `
		INSERT INTO posts (id, title, slug, excerpt, content, category, author, read_time, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id string
	err := db.QueryRow(query, uuid.NewString(), title, Slugify(title), "An excerpt.", "Some content.", "Technology", "Test Author", "1 min read", true).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func TestCreatePost(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		req         *CreatePostRequest
		expectedErr error
	}{
		{
			name: "valid post",
			req: &CreatePostRequest{
				Title:    "Test Post",
				Excerpt:  "A short excerpt.",
				Content:  "This is a test post.",
				Category: "Technology",
				Author:   "Test Author",
			},
			expectedErr: nil,
		},
		{
			name: "empty title",
			req: &CreatePostRequest{
				Excerpt:  "A short excerpt.",
				Content:  "This is a test post.",
				Category: "Technology",
				Author:   "Test Author",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "empty excerpt",
			req: &CreatePostRequest{
				Title:    "Test Post",
				Content:  "This is a test post.",
				Category: "Technology",
				Author:   "Test Author",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"excerpt": "must be provided"}},
		},
		{
			name: "empty content",
			req: &CreatePostRequest{
				Title:    "Test Post",
				Excerpt:  "A short excerpt.",
				Category: "Technology",
				Author:   "Test Author",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
		{
			name: "empty category",
			req: &CreatePostRequest{
				Title:   "Test Post",
				Excerpt: "A short excerpt.",
				Content: "This is a test post.",
				Author:  "Test Author",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"category": "must be provided"}},
		},
		{
			name: "unknown category",
			req: &CreatePostRequest{
				Title:    "Test Post",
				Excerpt:  "A short excerpt.",
				Content:  "This is a test post.",
				Category: "Gardening",
				Author:   "Test Author",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"category": "must be a valid category"}},
		},
		{
			name: "empty author",
			req: &CreatePostRequest{
				Title:    "Test Post",
				Excerpt:  "A short excerpt.",
				Content:  "This is a test post.",
				Category: "Technology",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"author": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := cleanup()
			require.NoError(t, err)

			post, err := s.CreatePost(context.Background(), tc.req)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, post)

				// nothing may be persisted on a failed create
				var count int
				err = db.QueryRow("SELECT count(*) FROM posts").Scan(&count)
				require.NoError(t, err)
				assert.Equal(t, 0, count)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, post.ID)
			assert.Equal(t, "test-post", post.Slug)
			assert.Equal(t, "1 min read", post.ReadTime)
			assert.Equal(t, DefaultCoverImage, post.CoverImage)
			assert.False(t, post.CreatedAt.IsZero())
		})
	}
}

func TestCreatePostKeepsSuppliedCoverImage(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	post, err := s.CreatePost(context.Background(), &CreatePostRequest{
		Title:      "Cover Post",
		Excerpt:    "A short excerpt.",
		Content:    "This is a test post.",
		Category:   "Design",
		Author:     "Test Author",
		CoverImage: "https://example.com/cover.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/cover.png", post.CoverImage)
}

func TestGetPostBySlug(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	created, err := s.CreatePost(context.Background(), &CreatePostRequest{
		Title:    "Hello, World!",
		Excerpt:  "A short excerpt.",
		Content:  "This is a test post.",
		Category: "News",
		Author:   "Test Author",
	})
	require.NoError(t, err)
	require.Equal(t, "hello-world", created.Slug)

	got, err := s.GetPostBySlug(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = s.GetPostBySlug(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetPostBySlugDuplicateSlugs(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	first, err := s.CreatePost(ctx, &CreatePostRequest{
		Title:    "Same Title",
		Excerpt:  "A short excerpt.",
		Content:  "This is the first post.",
		Category: "Other",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	// force a later created_at for the second post with the same slug
	_, err = db.Exec(`
		INSERT INTO posts (id, title, slug, excerpt, content, category, author, read_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now() + interval '1 hour', now() + interval '1 hour')`,
		uuid.NewString(), "Same, Title!", "same-title", "A short excerpt.", "This is the second post.", "Other", "Test Author", "1 min read")
	require.NoError(t, err)

	got, err := s.GetPostBySlug(ctx, "same-title")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestUpdatePost(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	created, err := s.CreatePost(ctx, &CreatePostRequest{
		Title:    "Original Title",
		Excerpt:  "A short excerpt.",
		Content:  "Short content.",
		Category: "Technology",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	updated, err := s.UpdatePost(ctx, created.ID, &UpdatePostRequest{
		Title:    "Updated Title",
		Excerpt:  "A new excerpt.",
		Content:  words(250),
		Category: "Tutorial",
		Author:   "Another Author",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "updated-title", updated.Slug)
	assert.Equal(t, "2 min read", updated.ReadTime)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	// the stored record reflects the replacement
	got, err := s.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", got.Title)
	assert.Equal(t, "Tutorial", got.Category)
}

func TestUpdatePostNotFound(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	_, err := s.UpdatePost(context.Background(), uuid.NewString(), &UpdatePostRequest{
		Title:    "Updated Title",
		Excerpt:  "A new excerpt.",
		Content:  "New content.",
		Category: "Tutorial",
		Author:   "Another Author",
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeletePost(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	id, err := createRandomPost(db, "Doomed Post")
	require.NoError(t, err)

	err = s.DeletePost(ctx, *id)
	require.NoError(t, err)

	_, err = s.GetPostByID(ctx, *id)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.GetPostBySlug(ctx, "doomed-post")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.DeletePost(ctx, *id)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetPosts(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	_, err := createRandomPost(db, "First Post")
	require.NoError(t, err)

	_, err = s.CreatePost(ctx, &CreatePostRequest{
		Title:    "Design Post",
		Excerpt:  "A short excerpt.",
		Content:  "This is a test post.",
		Category: "Design",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	all, err := s.GetPosts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	design, err := s.GetPosts(ctx, "Design")
	require.NoError(t, err)
	require.Len(t, design, 1)
	assert.Equal(t, "design-post", design[0].Slug)

	_, err = s.GetPosts(ctx, "Gardening")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"category": "must be a valid category"}}, err)
}

func TestGetLatestPosts(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	// one draft and four published posts with increasing timestamps
	_, err := s.CreatePost(ctx, &CreatePostRequest{
		Title:    "Draft Post",
		Excerpt:  "A short excerpt.",
		Content:  "This is a draft.",
		Category: "Other",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	titles := []string{"Post One", "Post Two", "Post Three", "Post Four"}
	for _, title := range titles {
		_, err := s.CreatePost(ctx, &CreatePostRequest{
			Title:     title,
			Excerpt:   "A short excerpt.",
			Content:   "This is a test post.",
			Category:  "News",
			Author:    "Test Author",
			Published: true,
		})
		require.NoError(t, err)
		time.Sleep(time.Second)
	}

	latest, err := s.GetLatestPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, latest, 3)

	for _, post := range latest {
		assert.True(t, post.Published)
		assert.NotEqual(t, "draft-post", post.Slug)
	}
	assert.Equal(t, "post-four", latest[0].Slug)
}

func TestUpdatePostInvalidatesCache(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	created, err := s.CreatePost(ctx, &CreatePostRequest{
		Title:    "Cached Post",
		Excerpt:  "A short excerpt.",
		Content:  "This is a test post.",
		Category: "Technology",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	// warm the id and slug cache entries
	_, err = s.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = s.GetPostBySlug(ctx, "cached-post")
	require.NoError(t, err)

	_, err = s.UpdatePost(ctx, created.ID, &UpdatePostRequest{
		Title:    "Fresh Title",
		Excerpt:  "A new excerpt.",
		Content:  "New content.",
		Category: "Technology",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	// the warmed entries must not serve the pre-update post
	got, err := s.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Title", got.Title)

	_, err = s.GetPostBySlug(ctx, "cached-post")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	bySlug, err := s.GetPostBySlug(ctx, "fresh-title")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
}

func TestDeletePostInvalidatesCache(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	created, err := s.CreatePost(ctx, &CreatePostRequest{
		Title:    "Cached Post",
		Excerpt:  "A short excerpt.",
		Content:  "This is a test post.",
		Category: "Technology",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	// warm the id and slug cache entries
	_, err = s.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = s.GetPostBySlug(ctx, "cached-post")
	require.NoError(t, err)

	err = s.DeletePost(ctx, created.ID)
	require.NoError(t, err)

	_, err = s.GetPostByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.GetPostBySlug(ctx, "cached-post")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCreatePostInvalidatesListCache(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	_, err := s.CreatePost(ctx, &CreatePostRequest{
		Title:    "First Post",
		Excerpt:  "A short excerpt.",
		Content:  "This is a test post.",
		Category: "News",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	// warm the list entry
	posts, err := s.GetPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	_, err = s.CreatePost(ctx, &CreatePostRequest{
		Title:    "Second Post",
		Excerpt:  "A short excerpt.",
		Content:  "This is a test post.",
		Category: "News",
		Author:   "Test Author",
	})
	require.NoError(t, err)

	posts, err = s.GetPosts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestCreateAndRetrieveScenario(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { cleanup() })

	ctx := context.Background()

	created, err := s.CreatePost(ctx, &CreatePostRequest{
		Title:    "My First Post",
		Excerpt:  "e",
		Content:  strings.Repeat("word ", 250),
		Category: "News",
		Author:   "A",
	})
	require.NoError(t, err)

	assert.Equal(t, "my-first-post", created.Slug)
	assert.Equal(t, "2 min read", created.ReadTime)

	byID, err := s.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := s.GetPostBySlug(ctx, "my-first-post")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
}
