package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/pllus/main-blog/dto"
	"github.com/pllus/main-blog/internal/apperr"
	"github.com/pllus/main-blog/internal/models"
	"github.com/pllus/main-blog/internal/repository"
	"github.com/pllus/main-blog/internal/utils"
)

func newServices() (*UserService, *BlogService) {
	users := repository.NewMemoryUserRepository()
	posts := repository.NewMemoryBlogRepository()
	return &UserService{Users: users, HashCost: bcrypt.MinCost},
		&BlogService{Posts: posts, Users: users}
}

func mustCreateUser(t *testing.T, us *UserService, name, username, password string) *models.User {
	t.Helper()
	u, err := us.Create(context.Background(), dto.CreateUserReq{Name: name, Username: username, Password: password})
	if err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return u
}

func TestCreateThenGetUser(t *testing.T) {
	us, _ := newServices()
	ctx := context.Background()

	created := mustCreateUser(t, us, "Alice", "alice", "pw")
	if created.Password == "pw" || !strings.HasPrefix(created.Password, "$2") {
		t.Fatalf("password should be stored hashed, got %q", created.Password)
	}

	got, err := us.Get(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" || got.Username != "alice" {
		t.Fatalf("got %+v", got)
	}

	if _, err := us.Get(ctx, "not-an-id"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("malformed id err = %v", err)
	}
	if _, err := us.Get(ctx, bson.NewObjectID().Hex()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown id err = %v", err)
	}
}

func TestCreateUserRequiresFields(t *testing.T) {
	us, _ := newServices()
	for _, req := range []dto.CreateUserReq{
		{Username: "a", Password: "p"},
		{Name: "A", Password: "p"},
		{Name: "A", Username: "a"},
		{Name: "  ", Username: "a", Password: "p"},
		{Name: "A", Username: "a", Password: strings.Repeat("p", 73)},
	} {
		if _, err := us.Create(context.Background(), req); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Create(%+v) err = %v", req, err)
		}
	}
}

func TestListUsers(t *testing.T) {
	us, _ := newServices()
	mustCreateUser(t, us, "Alice", "alice", "pw")
	mustCreateUser(t, us, "Bob", "bob", "pw")

	users, err := us.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Alice" || users[1].Name != "Bob" {
		t.Fatalf("users = %+v", users)
	}
}

func TestLogin(t *testing.T) {
	us, _ := newServices()
	ctx := context.Background()
	alice := mustCreateUser(t, us, "Alice", "alice", "secret")

	got, err := us.Login(ctx, dto.LoginReq{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != alice.ID {
		t.Fatalf("logged in as %s, want %s", got.ID.Hex(), alice.ID.Hex())
	}

	if _, err := us.Login(ctx, dto.LoginReq{Username: "alice", Password: "wrong"}); !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := us.Login(ctx, dto.LoginReq{Username: "nobody", Password: "secret"}); !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("unknown user err = %v", err)
	}
	if _, err := us.Login(ctx, dto.LoginReq{}); !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("empty login err = %v", err)
	}
}

func TestLoginDuplicateUsernamePicksMatchingPassword(t *testing.T) {
	us, _ := newServices()
	mustCreateUser(t, us, "First", "sam", "one")
	second := mustCreateUser(t, us, "Second", "sam", "two")

	got, err := us.Login(context.Background(), dto.LoginReq{Username: "sam", Password: "two"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("logged in as %q", got.Name)
	}
}

func TestLoginLegacyPlaintextPassword(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	us := &UserService{Users: users}
	legacy, _ := users.Create(context.Background(), models.User{Name: "Old", Username: "old", Password: "plain"})

	got, err := us.Login(context.Background(), dto.LoginReq{Username: "old", Password: "plain"})
	if err != nil || got.ID != legacy.ID {
		t.Fatalf("legacy login = %+v, %v", got, err)
	}
	if _, err := us.Login(context.Background(), dto.LoginReq{Username: "old", Password: "plainx"}); !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("legacy mismatch err = %v", err)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "pw") || CheckPassword(hash, "PW") {
		t.Fatal("bcrypt comparison wrong")
	}
	if !CheckPassword("pw", "pw") || CheckPassword("pw", "") {
		t.Fatal("plaintext comparison wrong")
	}
}

func TestCreatePostInitialState(t *testing.T) {
	us, bs := newServices()
	alice := mustCreateUser(t, us, "Alice", "alice", "pw")

	post, err := bs.Create(context.Background(), dto.CreateBlogReq{Title: "Hello", Content: "World", Author: alice.ID.Hex()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Likes != 0 || post.Comments == nil || len(post.Comments) != 0 {
		t.Fatalf("post = %+v", post)
	}
	if post.Author != alice.ID || post.Title != "Hello" || post.Content != "World" {
		t.Fatalf("post = %+v", post)
	}
}

func TestCreatePostValidation(t *testing.T) {
	_, bs := newServices()
	for _, req := range []dto.CreateBlogReq{
		{Content: "c", Author: bson.NewObjectID().Hex()},
		{Title: "t", Content: "c"},
		{Title: "t", Content: "c", Author: "abc"},
	} {
		if _, err := bs.Create(context.Background(), req); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Create(%+v) err = %v", req, err)
		}
	}
}

func TestLikePostIsMonotonic(t *testing.T) {
	_, bs := newServices()
	ctx := context.Background()
	post, _ := bs.Create(ctx, dto.CreateBlogReq{Title: "t", Author: bson.NewObjectID().Hex()})

	const n = 7
	var err error
	for i := 0; i < n; i++ {
		if post, err = bs.LikePost(ctx, post.ID.Hex()); err != nil {
			t.Fatalf("like %d: %v", i, err)
		}
	}
	if post.Likes != n {
		t.Fatalf("likes = %d, want %d", post.Likes, n)
	}

	if _, err := bs.LikePost(ctx, bson.NewObjectID().Hex()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing post err = %v", err)
	}
	if _, err := bs.LikePost(ctx, "xyz"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("malformed id err = %v", err)
	}
}

func TestAddCommentAppends(t *testing.T) {
	_, bs := newServices()
	ctx := context.Background()
	user := bson.NewObjectID().Hex()
	post, _ := bs.Create(ctx, dto.CreateBlogReq{Title: "t", Author: user})

	for _, text := range []string{"c0", "c1", "C"} {
		var err error
		if post, err = bs.AddComment(ctx, post.ID.Hex(), dto.CreateCommentReq{Content: text, UserID: user}); err != nil {
			t.Fatalf("comment %s: %v", text, err)
		}
	}
	if len(post.Comments) != 3 {
		t.Fatalf("comments = %d", len(post.Comments))
	}
	for i, want := range []string{"c0", "c1", "C"} {
		c := post.Comments[i]
		if c.Content != want || c.Likes != 0 || c.ID.IsZero() || c.User.Hex() != user {
			t.Fatalf("comment %d = %+v", i, c)
		}
	}
	if post.Comments[0].ID == post.Comments[1].ID {
		t.Fatal("comment ids should be distinct")
	}
}

func TestAddCommentErrors(t *testing.T) {
	_, bs := newServices()
	ctx := context.Background()
	user := bson.NewObjectID().Hex()
	post, _ := bs.Create(ctx, dto.CreateBlogReq{Title: "t", Author: user})

	if _, err := bs.AddComment(ctx, bson.NewObjectID().Hex(), dto.CreateCommentReq{Content: "x", UserID: user}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing post err = %v", err)
	}
	for _, req := range []dto.CreateCommentReq{
		{Content: "x"},
		{Content: "x", UserID: "bad"},
		{Content: " ", UserID: user},
	} {
		if _, err := bs.AddComment(ctx, post.ID.Hex(), req); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("AddComment(%+v) err = %v", req, err)
		}
	}
}

func TestLikeCommentAt(t *testing.T) {
	_, bs := newServices()
	ctx := context.Background()
	user := bson.NewObjectID().Hex()
	post, _ := bs.Create(ctx, dto.CreateBlogReq{Title: "t", Author: user})
	bs.AddComment(ctx, post.ID.Hex(), dto.CreateCommentReq{Content: "a", UserID: user})
	bs.AddComment(ctx, post.ID.Hex(), dto.CreateCommentReq{Content: "b", UserID: user})

	post, err := bs.LikeCommentAt(ctx, post.ID.Hex(), "1")
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if post.Comments[0].Likes != 0 || post.Comments[1].Likes != 1 || post.Likes != 0 {
		t.Fatalf("likes = post %d, c0 %d, c1 %d", post.Likes, post.Comments[0].Likes, post.Comments[1].Likes)
	}

	for _, idx := range []string{"2", "-1", "99999999999999999999", "-99999999999999999999"} {
		if _, err := bs.LikeCommentAt(ctx, post.ID.Hex(), idx); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("index %s err = %v", idx, err)
		}
	}
	if _, err := bs.LikeCommentAt(ctx, post.ID.Hex(), "first"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("non-numeric index err = %v", err)
	}
	if _, err := bs.LikeCommentAt(ctx, bson.NewObjectID().Hex(), "0"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing post err = %v", err)
	}
}

func TestLikeCommentByID(t *testing.T) {
	_, bs := newServices()
	ctx := context.Background()
	user := bson.NewObjectID().Hex()
	post, _ := bs.Create(ctx, dto.CreateBlogReq{Title: "t", Author: user})
	post, _ = bs.AddComment(ctx, post.ID.Hex(), dto.CreateCommentReq{Content: "a", UserID: user})
	target := post.Comments[0].ID

	// a later comment must not change which comment the id addresses
	bs.AddComment(ctx, post.ID.Hex(), dto.CreateCommentReq{Content: "b", UserID: user})

	post, err := bs.LikeComment(ctx, post.ID.Hex(), target.Hex())
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if post.Comments[0].Likes != 1 || post.Comments[1].Likes != 0 {
		t.Fatalf("likes = %d %d", post.Comments[0].Likes, post.Comments[1].Likes)
	}
	if _, err := bs.LikeComment(ctx, post.ID.Hex(), bson.NewObjectID().Hex()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown comment err = %v", err)
	}
	if _, err := bs.LikeComment(ctx, post.ID.Hex(), "zz"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("malformed comment id err = %v", err)
	}
}

func TestListExpandedResolvesNames(t *testing.T) {
	us, bs := newServices()
	ctx := context.Background()
	alice := mustCreateUser(t, us, "Alice", "alice", "pw")
	bob := mustCreateUser(t, us, "Bob", "bob", "pw")
	ghost := bson.NewObjectID()

	p, _ := bs.Create(ctx, dto.CreateBlogReq{Title: "Hello", Content: "World", Author: alice.ID.Hex()})
	bs.AddComment(ctx, p.ID.Hex(), dto.CreateCommentReq{Content: "Nice post", UserID: bob.ID.Hex()})
	bs.AddComment(ctx, p.ID.Hex(), dto.CreateCommentReq{Content: "boo", UserID: ghost.Hex()})
	bs.Create(ctx, dto.CreateBlogReq{Title: "Second", Author: bob.ID.Hex()})

	views, err := bs.ListExpanded(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views = %d", len(views))
	}
	if views[0].AuthorName != "Alice" || views[1].AuthorName != "Bob" {
		t.Fatalf("authors = %q %q", views[0].AuthorName, views[1].AuthorName)
	}
	cs := views[0].Comments
	if len(cs) != 2 || cs[0].UserName != "Bob" || cs[0].Content != "Nice post" || cs[1].UserName != "" {
		t.Fatalf("comments = %+v", cs)
	}
	if views[1].Comments == nil {
		t.Fatal("comments should be an empty list, not nil")
	}

	// same names as resolving each reference one at a time
	for _, v := range views {
		u, err := us.Get(ctx, v.Author.Hex())
		if err != nil || u.Name != v.AuthorName {
			t.Fatalf("author %s: %v / %q", v.Author.Hex(), err, v.AuthorName)
		}
	}
}

func TestMaskAppliedWhenConfigured(t *testing.T) {
	_, bs := newServices()
	bs.Mask = utils.NewProfanityFilter()
	ctx := context.Background()
	user := bson.NewObjectID().Hex()

	post, err := bs.Create(ctx, dto.CreateBlogReq{Title: "t", Content: "what the shit", Author: user})
	if err != nil {
		t.Fatal(err)
	}
	if post.Content != "what the ****" {
		t.Fatalf("content = %q", post.Content)
	}
	post, _ = bs.AddComment(ctx, post.ID.Hex(), dto.CreateCommentReq{Content: "bullshit", UserID: user})
	if post.Comments[0].Content != "********" {
		t.Fatalf("comment = %q", post.Comments[0].Content)
	}
}

func TestTokenIssuer(t *testing.T) {
	if NewTokenIssuer("", time.Hour) != nil {
		t.Fatal("empty secret should disable tokens")
	}
	issuer := NewTokenIssuer("s3cret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-time.Minute) }
	uid := bson.NewObjectID()

	raw, err := issuer.Issue(uid)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil })
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}
	if claims["uid"] != uid.Hex() || claims["sub"] != uid.Hex() {
		t.Fatalf("claims = %v", claims)
	}
	if _, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte("other"), nil }); err == nil {
		t.Fatal("token should not verify with another secret")
	}
}
