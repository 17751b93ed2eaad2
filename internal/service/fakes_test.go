package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rayspace/blog-service/internal/model"
	"github.com/rayspace/blog-service/internal/repository"
	"github.com/rayspace/blog-service/internal/repository/filestore"
	"github.com/rayspace/blog-service/internal/repository/postgres"
	"github.com/rayspace/blog-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

var errBoom = errors.New("boom")

var (
	adminPrincipal = model.Principal{Kind: model.Administrator, UserID: "156246723", DisplayName: "ray"}
	userPrincipal  = model.Principal{Kind: model.Authenticated, UserID: "7", DisplayName: "guest"}
	anonPrincipal  = model.AnonymousPrincipal()
)

type fakePostRepo struct {
	mu           sync.Mutex
	posts        map[int64]*model.Post
	nextID       int64
	writes       int
	findAllCalls int

	// afterFindAll runs once the rows are read, outside the lock.
	afterFindAll func()

	createErr     error
	updateDateErr error
	deleteErr     error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*model.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, title string, publishedDate model.Date) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	post := &model.Post{ID: r.nextID, Title: title, PublishedDate: publishedDate}
	r.posts[post.ID] = post
	cp := *post
	return &cp, nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, postgres.ErrPostNotFound
	}
	cp := *post
	return &cp, nil
}

func (r *fakePostRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	r.mu.Lock()
	r.findAllCalls++
	posts := make([]*model.Post, 0, len(r.posts))
	for _, post := range r.posts {
		cp := *post
		posts = append(posts, &cp)
	}
	hook := r.afterFindAll
	r.mu.Unlock()

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	if hook != nil {
		hook()
	}
	return posts, nil
}

func (r *fakePostRepo) UpdateTitle(ctx context.Context, id int64, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	post, ok := r.posts[id]
	if !ok {
		return postgres.ErrPostNotFound
	}
	post.Title = title
	return nil
}

func (r *fakePostRepo) UpdatePublishedDate(ctx context.Context, id int64, date model.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.updateDateErr != nil {
		return r.updateDateErr
	}
	post, ok := r.posts[id]
	if !ok {
		return postgres.ErrPostNotFound
	}
	post.PublishedDate = date
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	_, ok := r.posts[id]
	delete(r.posts, id)
	return ok, nil
}

func (r *fakePostRepo) IncrViews(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post, ok := r.posts[id]; ok {
		post.Views++
	}
	return nil
}

type fakeContent struct {
	mu        sync.Mutex
	files     map[int64]string
	writes    int
	writeErr  error
	deleteErr error
}

func newFakeContent() *fakeContent {
	return &fakeContent{files: make(map[int64]string)}
}

func (c *fakeContent) Write(ctx context.Context, id int64, html string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.writeErr != nil {
		return c.writeErr
	}
	c.files[id] = html
	return nil
}

func (c *fakeContent) Read(ctx context.Context, id int64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	html, ok := c.files[id]
	if !ok {
		return "", filestore.ErrContentNotFound
	}
	return html, nil
}

func (c *fakeContent) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteErr != nil {
		return c.deleteErr
	}
	if _, ok := c.files[id]; !ok {
		return filestore.ErrContentNotFound
	}
	delete(c.files, id)
	return nil
}

func (c *fakeContent) Exists(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.files[id]
	return ok, nil
}

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (r *fakeRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := jsonString(value)
	if err != nil {
		return err
	}
	r.data[key] = data
	return nil
}

func (r *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return redis.NewStringResult("", r.getErr)
	}
	value, ok := r.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (r *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := r.data[key]; ok {
			delete(r.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (r *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := strconv.ParseInt(r.data[key], 10, 64)
	if err != nil && r.data[key] != "" {
		return redis.NewIntResult(0, err)
	}
	n++
	r.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func jsonString(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*model.Comment
	now      func() time.Time
	err      error
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	comment.ID = int64(len(r.comments) + 1)
	comment.Timestamp = r.now()
	r.comments = append(r.comments, &comment)
	cp := comment
	return &cp, nil
}

func (r *fakeCommentRepo) FindRecent(ctx context.Context, limit int) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sorted := make([]*model.Comment, len(r.comments))
	copy(sorted, r.comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *fakeCommentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.comments)
}

type fakes struct {
	posts    *fakePostRepo
	comments *fakeCommentRepo
	content  *fakeContent
	redis    *fakeRedis
	repo     *repository.Repository
}

func newFakes(now func() time.Time) *fakes {
	f := &fakes{
		posts:    newFakePostRepo(),
		comments: &fakeCommentRepo{now: now},
		content:  newFakeContent(),
		redis:    newFakeRedis(),
	}
	f.repo = &repository.Repository{
		Postgres: &postgres.PostgresRepository{Post: f.posts, Comment: f.comments},
		Redis:    &redisrepo.RedisRepository{Default: f.redis},
		Content:  f.content,
	}
	return f
}

// fakeClock is safe for concurrent use.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
