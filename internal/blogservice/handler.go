package blogservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/folio/internal/common"
)

func NewBlogService(db *sql.DB, cache *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: cache}
}

// prepareContent converts HTML input to Markdown and strips script blocks.
func prepareContent(content, format string) string {
	if format == FormatHTML {
		content = HTMLToMarkdown(content)
	}
	return strings.TrimSpace(sanitizeMarkdown(content))
}

// CreateBlog creates a new blog post. The slug is derived from the title when
// not given, and the excerpt from the content.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateFormat(v, req.Format)
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	common.ValidateID(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:      strings.TrimSpace(req.Title),
		Slug:       req.Slug,
		Excerpt:    strings.TrimSpace(req.Excerpt),
		Content:    prepareContent(req.Content, req.Format),
		Tags:       normalizeTags(req.Tags),
		CoverImage: req.CoverImage,
		Published:  req.Published,
		Author:     Author{ID: req.UserID},
	}

	if blog.Slug == "" {
		blog.Slug = Slugify(blog.Title)
		if blog.Slug == "" {
			v.AddError("title", "must contain latin letters or digits unless a slug is provided")
			return nil, v.ValidationError()
		}
	}

	if blog.Excerpt == "" {
		blog.Excerpt = Excerpt(blog.Content, maxExcerptLength)
	}

	v = common.NewValidator()
	validateSlug(v, blog.Slug)
	validateContent(v, blog.Content)
	validateExcerpt(v, blog.Excerpt)
	validateTags(v, blog.Tags)
	validateCoverImage(v, blog.CoverImage)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.c.Flush()

	return s.m.getBlogById(ctx, blog.ID)
}

// GetBlogByID returns a blog post by its ID, drafts included. Posts written
// by someone else are forbidden unless by is an admin.
func (s *BlogService) GetBlogByID(ctx context.Context, id int, by Editor) (*Blog, error) {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	if !by.canEdit(blog) {
		return nil, common.ErrForbidden
	}

	return blog, nil
}

// GetPublishedBySlug returns a published post with its rendered HTML.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*Blog, error) {
	v := common.NewValidator()
	validateSlug(v, slug)
	if !v.Valid() {
		return nil, common.ErrRecordNotFound
	}

	key := common.CacheKeyBlogBySlug(slug)
	if cached, ok := common.Cached[*Blog](s.c, key); ok {
		return cached, nil
	}

	blog, err := s.m.getPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	blog.ContentHTML, err = RenderHTML(blog.Content)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, blog)

	return blog, nil
}

// UpdateBlog applies a partial update. The slug only changes when given
// explicitly, so published URLs stay stable across title edits.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, by Editor, req *UpdateBlogRequest) (*Blog, error) {
	blog, err := s.GetBlogByID(ctx, id, by)
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != blog.Version {
		return nil, common.ErrEditConflict
	}

	format := ""
	if req.Format != nil {
		format = *req.Format
	}

	if req.Title != nil {
		blog.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		blog.Slug = *req.Slug
	}
	if req.Content != nil {
		blog.Content = prepareContent(*req.Content, format)
		if req.Excerpt == nil {
			blog.Excerpt = ""
		}
	}
	if req.Excerpt != nil {
		blog.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Tags != nil {
		blog.Tags = normalizeTags(*req.Tags)
	}
	if req.CoverImage != nil {
		blog.CoverImage = *req.CoverImage
	}
	if req.Published != nil {
		blog.Published = *req.Published
	}

	if blog.Excerpt == "" {
		blog.Excerpt = Excerpt(blog.Content, maxExcerptLength)
	}
	blog.ReadingTime = ReadingTime(blog.Content)

	v := common.NewValidator()
	validateFormat(v, format)
	validateTitle(v, blog.Title)
	validateSlug(v, blog.Slug)
	validateContent(v, blog.Content)
	validateExcerpt(v, blog.Excerpt)
	validateTags(v, blog.Tags)
	validateCoverImage(v, blog.CoverImage)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog, by)
	if err != nil {
		return nil, err
	}

	s.c.Flush()

	return blog, nil
}

// DeleteBlog deletes a blog post together with its versions and comments.
func (s *BlogService) DeleteBlog(ctx context.Context, id int, by Editor) error {
	if _, err := s.GetBlogByID(ctx, id, by); err != nil {
		return err
	}

	err := s.m.deleteBlog(ctx, id, by)
	if err != nil {
		return err
	}

	s.c.Flush()

	return nil
}

// GetBlogs returns a page of published posts, optionally filtered by tag.
func (s *BlogService) GetBlogs(ctx context.Context, tag string, p common.Pagination) ([]Blog, common.Metadata, error) {
	type page struct {
		blogs []Blog
		total int
	}

	tag = normalizeTag(tag)
	key := common.CacheKeyBlogs(tag, p)
	if pg, ok := common.Cached[page](s.c, key); ok {
		return pg.blogs, p.Metadata(pg.total), nil
	}

	blogs, total, err := s.m.getBlogs(ctx, true, tag, 0, p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	s.c.Set(key, page{blogs: blogs, total: total})

	return blogs, p.Metadata(total), nil
}

// GetAllBlogs returns a page of posts, drafts included. Admins see every
// post, other editors only their own.
func (s *BlogService) GetAllBlogs(ctx context.Context, by Editor, p common.Pagination) ([]Blog, common.Metadata, error) {
	blogs, total, err := s.m.getBlogs(ctx, false, "", by.ownerFilter(), p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return blogs, p.Metadata(total), nil
}

// SearchBlogs matches published posts against q.
func (s *BlogService) SearchBlogs(ctx context.Context, q string, p common.Pagination) ([]Blog, common.Metadata, error) {
	v := common.NewValidator()
	v.Check(strings.TrimSpace(q) != "", "q", "must be provided")
	v.Check(v.CheckStringLength(q, 0, 100), "q", "must not be more than 100 characters long")
	if !v.Valid() {
		return nil, common.Metadata{}, v.ValidationError()
	}

	blogs, total, err := s.m.getBlogsByQuery(ctx, q, p)
	if err != nil {
		return nil, common.Metadata{}, err
	}

	return blogs, p.Metadata(total), nil
}

// GetRelatedBlogs returns up to limit published posts sharing tags with the
// post identified by slug.
func (s *BlogService) GetRelatedBlogs(ctx context.Context, slug string, limit int) ([]Blog, error) {
	if limit < 1 || limit > common.MaxPageSize {
		limit = DefaultRelatedLimit
	}

	key := common.CacheKeyRelated(slug, limit)
	if cached, ok := common.Cached[[]Blog](s.c, key); ok {
		return cached, nil
	}

	blog, err := s.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	related := []Blog{}
	if len(blog.Tags) > 0 {
		candidates, err := s.m.getRelatedCandidates(ctx, blog.ID, blog.Tags)
		if err != nil {
			return nil, err
		}
		related = rankRelated(blog.Tags, candidates, limit)
	}

	s.c.Set(key, related)

	return related, nil
}

// GetTags returns the tags of published posts with their post counts.
func (s *BlogService) GetTags(ctx context.Context) ([]TagCount, error) {
	if cached, ok := common.Cached[[]TagCount](s.c, common.CacheKeyTags()); ok {
		return cached, nil
	}

	tags, err := s.m.getTags(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyTags(), tags)

	return tags, nil
}

// GetVersions lists the saved versions of a blog, newest first.
func (s *BlogService) GetVersions(ctx context.Context, id int, by Editor) ([]BlogVersion, error) {
	if _, err := s.GetBlogByID(ctx, id, by); err != nil {
		return nil, err
	}

	return s.m.getVersions(ctx, id)
}

// RestoreVersion saves the content of an earlier version as a new version.
func (s *BlogService) RestoreVersion(ctx context.Context, id, version int, by Editor) (*Blog, error) {
	v := common.NewValidator()
	common.ValidateID(v, id, "id")
	common.ValidateID(v, version, "version")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if _, err := s.GetBlogByID(ctx, id, by); err != nil {
		return nil, err
	}

	old, err := s.m.getVersion(ctx, id, version)
	if err != nil {
		return nil, err
	}

	return s.UpdateBlog(ctx, id, by, &UpdateBlogRequest{
		Title:   &old.Title,
		Excerpt: &old.Excerpt,
		Content: &old.Content,
		Tags:    &old.Tags,
	})
}
