package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/main-blog/internal/apperr"
	"github.com/pllus/main-blog/internal/models"
)

// MemoryUserRepository keeps users in process memory. It backs the
// STORE_DRIVER=memory dev server and the tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
	byID  map[bson.ObjectID]int
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byID: map[bson.ObjectID]int{}}
}

func (r *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("user %s not found", id.Hex())
	}
	u := r.users[i]
	return &u, nil
}

func (r *MemoryUserRepository) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.User{}
	seen := map[bson.ObjectID]bool{}
	for _, id := range ids {
		if i, ok := r.byID[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, r.users[i])
		}
	}
	return out, nil
}

func (r *MemoryUserRepository) ListByUsername(_ context.Context, username string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.User{}
	for _, u := range r.users {
		if u.Username == username {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u models.User) (*models.User, error) {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = len(r.users)
	r.users = append(r.users, u)
	return &u, nil
}

type MemoryBlogRepository struct {
	mu    sync.RWMutex
	posts []models.BlogPost
	byID  map[bson.ObjectID]int
}

func NewMemoryBlogRepository() *MemoryBlogRepository {
	return &MemoryBlogRepository{byID: map[bson.ObjectID]int{}}
}

func (r *MemoryBlogRepository) List(_ context.Context) ([]models.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.BlogPost, len(r.posts))
	for i, p := range r.posts {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *MemoryBlogRepository) Create(_ context.Context, p models.BlogPost) (*models.BlogPost, error) {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p = p.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = len(r.posts)
	r.posts = append(r.posts, p)
	out := p.Clone()
	return &out, nil
}

func (r *MemoryBlogRepository) IncLikes(_ context.Context, id bson.ObjectID) (*models.BlogPost, error) {
	return r.mutate(id, func(p *models.BlogPost) error {
		p.Likes++
		return nil
	})
}

func (r *MemoryBlogRepository) AppendComment(_ context.Context, id bson.ObjectID, c models.Comment) (*models.BlogPost, error) {
	return r.mutate(id, func(p *models.BlogPost) error {
		p.Comments = append(p.Comments, c)
		return nil
	})
}

func (r *MemoryBlogRepository) IncCommentLikesAt(_ context.Context, id bson.ObjectID, index int) (*models.BlogPost, error) {
	return r.mutate(id, func(p *models.BlogPost) error {
		if index < 0 || index >= len(p.Comments) {
			return apperr.NotFound("comment index %d out of range", index)
		}
		p.Comments[index].Likes++
		return nil
	})
}

func (r *MemoryBlogRepository) IncCommentLikes(_ context.Context, id, commentID bson.ObjectID) (*models.BlogPost, error) {
	return r.mutate(id, func(p *models.BlogPost) error {
		for i := range p.Comments {
			if p.Comments[i].ID == commentID {
				p.Comments[i].Likes++
				return nil
			}
		}
		return apperr.NotFound("comment %s not found", commentID.Hex())
	})
}

func (r *MemoryBlogRepository) mutate(id bson.ObjectID, fn func(p *models.BlogPost) error) (*models.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("blog post %s not found", id.Hex())
	}
	if err := fn(&r.posts[i]); err != nil {
		return nil, err
	}
	out := r.posts[i].Clone()
	return &out, nil
}
