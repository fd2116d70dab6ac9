package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sentimind/internal/common"
	"github.com/Veraticus/sentimind/internal/model"
	"github.com/Veraticus/sentimind/internal/service"
)

// testPost builds a rule-based post detecting names in order.
func testPost(content string, names ...string) *model.Post {
	cats := make([]model.DetectedCategory, len(names))
	for i, name := range names {
		score := 0.9 - float64(i)*0.01
		cats[i] = model.DetectedCategory{Name: name, Confidence: model.Round2(score), Score: score}
	}
	return &model.Post{
		Content:           content,
		PrimaryCategory:   names[0],
		PrimaryConfidence: cats[0].Confidence,
		Method:            model.MethodRuleBased,
		Categories:        cats,
	}
}

func TestSavePost_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	post := testPost("Hoy estoy feliz pero algo triste", "Alegría", "Tristeza")
	post.Method = model.MethodRemoteAPI
	require.NoError(t, store.SavePost(ctx, post))
	assert.Positive(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Content, got.Content)
	assert.Equal(t, "Alegría", got.PrimaryCategory)
	assert.InDelta(t, 0.9, got.PrimaryConfidence, 1e-9)
	assert.Equal(t, model.MethodRemoteAPI, got.Method)
	assert.WithinDuration(t, post.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.Equal(t, post.Categories, got.Categories)
}

func TestSavePost_CreatesUnknownCategories(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SyncCategories(ctx, []string{"Alegría"}))
	require.NoError(t, store.SavePost(ctx, testPost("texto", "Nostalgia")))

	names, err := store.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alegría", "Nostalgia"}, names)
}

func TestSavePost_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		post *model.Post
		name string
	}{
		{name: "nil post", post: nil},
		{name: "empty content", post: func() *model.Post { p := testPost("x", "Alegría"); p.Content = " "; return p }()},
		{name: "unknown method", post: func() *model.Post { p := testPost("x", "Alegría"); p.Method = "guess"; return p }()},
		{name: "no categories", post: func() *model.Post { p := testPost("x", "Alegría"); p.Categories = nil; return p }()},
		{name: "primary mismatch", post: func() *model.Post { p := testPost("x", "Alegría"); p.PrimaryCategory = "Enojo"; return p }()},
		{name: "duplicate category", post: testPost("x", "Alegría", "Alegría")},
		{name: "confidence out of range", post: func() *model.Post {
			p := testPost("x", "Alegría")
			p.Categories[0].Confidence = 1.5
			return p
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, store.SavePost(ctx, tt.post))
		})
	}

	posts, err := store.ListPosts(ctx, service.PostFilter{})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGetPost_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetPost(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListPosts(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []*model.Post{
		testPost("primero", "Alegría"),
		testPost("segundo", "Tristeza", "Alegría"),
		testPost("tercero", "Enojo"),
	}
	for i, p := range fixtures {
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.SavePost(ctx, p))
	}

	contents := func(posts []model.Post) []string {
		out := make([]string, len(posts))
		for i, p := range posts {
			out[i] = p.Content
		}
		return out
	}

	t.Run("newest first", func(t *testing.T) {
		posts, err := store.ListPosts(ctx, service.PostFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"tercero", "segundo", "primero"}, contents(posts))
		assert.Len(t, posts[1].Categories, 2)
		assert.Equal(t, "Tristeza", posts[1].Categories[0].Name)
	})

	t.Run("category matches any rank", func(t *testing.T) {
		posts, err := store.ListPosts(ctx, service.PostFilter{Category: "Alegría"})
		require.NoError(t, err)
		assert.Equal(t, []string{"segundo", "primero"}, contents(posts))
	})

	t.Run("limit and offset", func(t *testing.T) {
		posts, err := store.ListPosts(ctx, service.PostFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"segundo"}, contents(posts))
	})

	t.Run("unknown category", func(t *testing.T) {
		posts, err := store.ListPosts(ctx, service.PostFilter{Category: "Terror"})
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestListPosts_CategoriesAcrossBatches(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	prev := categoryQueryBatch
	categoryQueryBatch = 2
	t.Cleanup(func() { categoryQueryBatch = prev })

	names := []string{"Alegría", "Tristeza", "Enojo", "Miedo", "Sorpresa"}
	for _, name := range names {
		require.NoError(t, store.SavePost(ctx, testPost("texto "+name, name, "Reflexión")))
	}

	posts, err := store.ListPosts(ctx, service.PostFilter{})
	require.NoError(t, err)
	require.Len(t, posts, len(names))
	for _, p := range posts {
		require.Len(t, p.Categories, 2, p.Content)
		assert.Equal(t, p.PrimaryCategory, p.Categories[0].Name)
		assert.Equal(t, "Reflexión", p.Categories[1].Name)
	}
}

func TestNilContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // nil context is the point of this test
	_, err := store.GetCategories(nil)
	assert.ErrorIs(t, err, ErrNilContext)
}
