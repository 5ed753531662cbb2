package postservice

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/deverhart/folio/internal/common"
)

func NewPostService(db *sql.DB, cache *common.Cache) *PostService {
	return &PostService{m: newPostModel(db), c: cache}
}

type CreatePostRequest struct {
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage"`
	Published  bool   `json:"published"`
}

type UpdatePostRequest struct {
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage"`
	Published  bool   `json:"published"`
}

func validateFields(v *common.Validator, title, excerpt, content, category, author string) {
	validateTitle(v, title)
	validateExcerpt(v, excerpt)
	validateContent(v, content)
	validateCategory(v, category)
	validateAuthor(v, author)
}

// CreatePost persists a new post. The slug and read time are derived from the
// supplied title and content, never taken from the caller.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateFields(v, req.Title, req.Excerpt, req.Content, req.Category, req.Author)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	coverImage := req.CoverImage
	if coverImage == "" {
		coverImage = DefaultCoverImage
	}

	post := &Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Slug:       Slugify(req.Title),
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Category:   req.Category,
		Author:     req.Author,
		CoverImage: coverImage,
		ReadTime:   EstimateReadTime(req.Content),
		Published:  req.Published,
	}

	if err := s.m.insert(ctx, post); err != nil {
		return nil, err
	}

	s.c.Flush()

	return post, nil
}

// GetPostByID returns a post by its ID.
func (s *PostService) GetPostByID(ctx context.Context, id string) (*Post, error) {
	v := common.NewValidator()
	validateID(v, id)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyPost(id)); ok {
		return cached.(*Post), nil
	}

	post, err := s.m.getPostById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPost(id), post)

	return post, nil
}

// GetPostBySlug returns the post addressed by slug. Duplicate slugs resolve
// to the oldest post.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyPostBySlug(slug)); ok {
		return cached.(*Post), nil
	}

	post, err := s.m.getPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPostBySlug(slug), post)

	return post, nil
}

// UpdatePost overwrites every mutable field of the referenced post and
// recomputes its slug and read time. The ID and creation timestamp are
// preserved.
func (s *PostService) UpdatePost(ctx context.Context, id string, req *UpdatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateID(v, id)
	validateFields(v, req.Title, req.Excerpt, req.Content, req.Category, req.Author)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	coverImage := req.CoverImage
	if coverImage == "" {
		coverImage = DefaultCoverImage
	}

	post := &Post{
		ID:         id,
		Title:      req.Title,
		Slug:       Slugify(req.Title),
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Category:   req.Category,
		Author:     req.Author,
		CoverImage: coverImage,
		ReadTime:   EstimateReadTime(req.Content),
		Published:  req.Published,
	}

	if err := s.m.update(ctx, post); err != nil {
		return nil, err
	}

	s.c.Flush()

	return post, nil
}

// DeletePost permanently removes a post.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	v := common.NewValidator()
	validateID(v, id)
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.delete(ctx, id); err != nil {
		return err
	}

	s.c.Flush()

	return nil
}

// GetPosts returns all posts, newest first. Pass an empty category for no
// filter.
func (s *PostService) GetPosts(ctx context.Context, category string) ([]Post, error) {
	if category != "" {
		v := common.NewValidator()
		validateCategory(v, category)
		if !v.Valid() {
			return nil, v.ValidationError()
		}
	}

	if cached, ok := s.c.Get(common.CacheKeyPosts(category)); ok {
		return cached.([]Post), nil
	}

	posts, err := s.m.getPosts(ctx, category)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPosts(category), posts)

	return posts, nil
}

// GetLatestPosts returns the newest published posts. Default limit is 3.
func (s *PostService) GetLatestPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit < 1 {
		limit = 3
	}

	if cached, ok := s.c.Get(common.CacheKeyLatestPosts(limit)); ok {
		return cached.([]Post), nil
	}

	posts, err := s.m.getLatestPosts(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyLatestPosts(limit), posts)

	return posts, nil
}
