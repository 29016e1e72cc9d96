package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/main-blog/dto"
	"github.com/pllus/main-blog/internal/apperr"
	"github.com/pllus/main-blog/internal/models"
	"github.com/pllus/main-blog/internal/repository"
	"github.com/pllus/main-blog/internal/utils"
)

type BlogService struct {
	Posts repository.BlogRepository
	Users repository.UserRepository
	// Mask, when set, is applied to post and comment content before storage.
	Mask    *utils.ProfanityFilter
	Timeout time.Duration
}

func (s *BlogService) List(ctx context.Context) ([]models.BlogPost, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Posts.List(ctx)
}

// ListExpanded lists posts with author and commenter names filled in from a
// single batched user read. References to unknown users resolve to "".
func (s *BlogService) ListExpanded(ctx context.Context) ([]dto.BlogPostView, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	posts, err := s.Posts.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[bson.ObjectID]bool{}
	var ids []bson.ObjectID
	ref := func(id bson.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range posts {
		ref(p.Author)
		for _, c := range p.Comments {
			ref(c.User)
		}
	}

	users, err := s.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[bson.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	out := make([]dto.BlogPostView, 0, len(posts))
	for _, p := range posts {
		view := dto.BlogPostView{
			ID:         p.ID,
			Title:      p.Title,
			Content:    p.Content,
			Author:     p.Author,
			AuthorName: names[p.Author],
			Likes:      p.Likes,
			Comments:   make([]dto.CommentView, 0, len(p.Comments)),
			CreatedAt:  p.CreatedAt,
		}
		for _, c := range p.Comments {
			view.Comments = append(view.Comments, dto.CommentView{
				ID:       c.ID,
				Content:  c.Content,
				User:     c.User,
				UserName: names[c.User],
				Likes:    c.Likes,
			})
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *BlogService) Create(ctx context.Context, req dto.CreateBlogReq) (*models.BlogPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}
	if strings.TrimSpace(req.Author) == "" {
		return nil, apperr.Validation("author is required")
	}
	author, err := utils.Oid(req.Author, "author id")
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Posts.Create(ctx, models.BlogPost{
		Title:    title,
		Content:  s.Mask.Mask(req.Content),
		Author:   author,
		Likes:    0,
		Comments: []models.Comment{},
	})
}

// LikePost increments the post's like counter. Repeated calls keep counting.
func (s *BlogService) LikePost(ctx context.Context, postID string) (*models.BlogPost, error) {
	id, err := utils.Oid(postID, "blog post id")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Posts.IncLikes(ctx, id)
}

func (s *BlogService) AddComment(ctx context.Context, postID string, req dto.CreateCommentReq) (*models.BlogPost, error) {
	id, err := utils.Oid(postID, "blog post id")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperr.Validation("userId is required")
	}
	user, err := utils.Oid(req.UserID, "user id")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperr.Validation("content is required")
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Posts.AppendComment(ctx, id, models.Comment{
		ID:      bson.NewObjectID(),
		Content: s.Mask.Mask(req.Content),
		User:    user,
		Likes:   0,
	})
}

// LikeCommentAt likes the comment at a position in the post's comment list.
// Positions are only meaningful because comments are never removed or
// reordered; LikeComment addresses by id instead.
func (s *BlogService) LikeCommentAt(ctx context.Context, postID, index string) (*models.BlogPost, error) {
	id, err := utils.Oid(postID, "blog post id")
	if err != nil {
		return nil, err
	}
	i, err := strconv.Atoi(index)
	if errors.Is(err, strconv.ErrRange) {
		return nil, apperr.NotFound("comment index %s out of range", index)
	}
	if err != nil {
		return nil, apperr.Validation("invalid comment index: %q", index)
	}
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Posts.IncCommentLikesAt(ctx, id, i)
}

func (s *BlogService) LikeComment(ctx context.Context, postID, commentID string) (*models.BlogPost, error) {
	id, err := utils.Oid(postID, "blog post id")
	if err != nil {
		return nil, err
	}
	cid, err := utils.Oid(commentID, "comment id")
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return s.Posts.IncCommentLikes(ctx, id, cid)
}
