package comment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/foodmate/pkg/apperr"
)

type fakeStore struct {
	liveGroups map[int64]bool
	comments   map[int64]*Comment
	replies    map[int64]*Reply
	nextID     int64
}

func newFakeStore(liveGroupIDs ...int64) *fakeStore {
	f := &fakeStore{
		liveGroups: make(map[int64]bool),
		comments:   make(map[int64]*Comment),
		replies:    make(map[int64]*Reply),
	}
	for _, id := range liveGroupIDs {
		f.liveGroups[id] = true
	}
	return f
}

func (f *fakeStore) GroupLive(_ context.Context, groupID int64) error {
	if !f.liveGroups[groupID] {
		return apperr.ErrGroupNotFound
	}
	return nil
}

func (f *fakeStore) CreateComment(_ context.Context, groupID, memberID int64, content string) (*Comment, error) {
	f.nextID++
	c := &Comment{ID: f.nextID, GroupID: groupID, MemberID: memberID, Content: content, CreatedAt: time.Now()}
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeStore) GetComment(_ context.Context, commentID int64) (*Comment, error) {
	return f.comments[commentID], nil
}

func (f *fakeStore) UpdateComment(_ context.Context, commentID int64, content string) (*Comment, error) {
	c := f.comments[commentID]
	c.Content = content
	c.UpdatedAt = time.Now()
	return c, nil
}

func (f *fakeStore) DeleteComment(_ context.Context, commentID int64) error {
	for id, r := range f.replies {
		if r.CommentID == commentID {
			delete(f.replies, id)
		}
	}
	delete(f.comments, commentID)
	return nil
}

func (f *fakeStore) CreateReply(_ context.Context, commentID, memberID int64, content string) (*Reply, error) {
	f.nextID++
	r := &Reply{ID: f.nextID, CommentID: commentID, MemberID: memberID, Content: content, CreatedAt: time.Now()}
	f.replies[r.ID] = r
	return r, nil
}

func (f *fakeStore) GetReply(_ context.Context, replyID int64) (*Reply, error) {
	return f.replies[replyID], nil
}

func (f *fakeStore) UpdateReply(_ context.Context, replyID int64, content string) (*Reply, error) {
	r := f.replies[replyID]
	r.Content = content
	r.UpdatedAt = time.Now()
	return r, nil
}

func (f *fakeStore) DeleteReply(_ context.Context, replyID int64) error {
	delete(f.replies, replyID)
	return nil
}

func (f *fakeStore) ListByGroup(_ context.Context, groupID int64, limit, offset int) ([]*Comment, int, error) {
	var out []*Comment
	for _, c := range f.comments {
		if c.GroupID == groupID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("on a live group", func(t *testing.T) {
		svc := NewService(newFakeStore(1))
		c, err := svc.AddComment(ctx, 1, 10, &Request{Content: "looks fun"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), c.GroupID)
		assert.Equal(t, "looks fun", c.Content)
	})

	t.Run("on a missing group", func(t *testing.T) {
		svc := NewService(newFakeStore())
		_, err := svc.AddComment(ctx, 1, 10, &Request{Content: "looks fun"})
		assert.ErrorIs(t, err, apperr.ErrGroupNotFound)
	})
}

func TestAddReply(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1, 2)
	svc := NewService(store)

	c, err := svc.AddComment(ctx, 1, 10, &Request{Content: "looks fun"})
	require.NoError(t, err)

	t.Run("under the comment's group", func(t *testing.T) {
		r, err := svc.AddReply(ctx, 1, c.ID, 11, &Request{Content: "agreed"})
		require.NoError(t, err)
		assert.Equal(t, c.ID, r.CommentID)
	})

	t.Run("comment addressed through the wrong group", func(t *testing.T) {
		_, err := svc.AddReply(ctx, 2, c.ID, 11, &Request{Content: "agreed"})
		assert.ErrorIs(t, err, apperr.ErrInvalidAddress)
	})

	t.Run("unknown comment", func(t *testing.T) {
		_, err := svc.AddReply(ctx, 1, 999, 11, &Request{Content: "agreed"})
		assert.ErrorIs(t, err, apperr.ErrCommentNotFound)
	})
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	svc := NewService(store)

	c, err := svc.AddComment(ctx, 1, 10, &Request{Content: "original"})
	require.NoError(t, err)

	t.Run("author edits", func(t *testing.T) {
		got, err := svc.UpdateComment(ctx, 1, c.ID, 10, &Request{Content: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
	})

	t.Run("non-author is refused", func(t *testing.T) {
		_, err := svc.UpdateComment(ctx, 1, c.ID, 99, &Request{Content: "vandalism"})
		assert.ErrorIs(t, err, apperr.ErrNoModifyPermissionComment)
		assert.Equal(t, "edited", store.comments[c.ID].Content)
	})
}

func TestUpdateReply(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	svc := NewService(store)

	c, err := svc.AddComment(ctx, 1, 10, &Request{Content: "parent"})
	require.NoError(t, err)
	other, err := svc.AddComment(ctx, 1, 10, &Request{Content: "other parent"})
	require.NoError(t, err)
	r, err := svc.AddReply(ctx, 1, c.ID, 11, &Request{Content: "original"})
	require.NoError(t, err)

	t.Run("author edits", func(t *testing.T) {
		got, err := svc.UpdateReply(ctx, 1, c.ID, r.ID, 11, &Request{Content: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
	})

	t.Run("non-author is refused", func(t *testing.T) {
		_, err := svc.UpdateReply(ctx, 1, c.ID, r.ID, 99, &Request{Content: "vandalism"})
		assert.ErrorIs(t, err, apperr.ErrNoModifyPermissionReply)
	})

	t.Run("reply addressed through the wrong comment", func(t *testing.T) {
		_, err := svc.UpdateReply(ctx, 1, other.ID, r.ID, 11, &Request{Content: "edited"})
		assert.ErrorIs(t, err, apperr.ErrInvalidAddress)
	})

	t.Run("unknown reply", func(t *testing.T) {
		_, err := svc.UpdateReply(ctx, 1, c.ID, 999, 11, &Request{Content: "edited"})
		assert.ErrorIs(t, err, apperr.ErrReplyNotFound)
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	svc := NewService(store)

	c, err := svc.AddComment(ctx, 1, 10, &Request{Content: "parent"})
	require.NoError(t, err)
	r1, err := svc.AddReply(ctx, 1, c.ID, 11, &Request{Content: "first"})
	require.NoError(t, err)
	r2, err := svc.AddReply(ctx, 1, c.ID, 12, &Request{Content: "second"})
	require.NoError(t, err)

	t.Run("non-author is refused", func(t *testing.T) {
		err := svc.DeleteComment(ctx, 1, c.ID, 99)
		assert.ErrorIs(t, err, apperr.ErrNoDeletePermissionComment)
	})

	t.Run("author deletes comment and replies together", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, 1, c.ID, 10))
		assert.NotContains(t, store.comments, c.ID)
		assert.NotContains(t, store.replies, r1.ID)
		assert.NotContains(t, store.replies, r2.ID)
	})
}

func TestDeleteReply(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	svc := NewService(store)

	c, err := svc.AddComment(ctx, 1, 10, &Request{Content: "parent"})
	require.NoError(t, err)
	r, err := svc.AddReply(ctx, 1, c.ID, 11, &Request{Content: "mine"})
	require.NoError(t, err)

	t.Run("non-author is refused", func(t *testing.T) {
		err := svc.DeleteReply(ctx, 1, c.ID, r.ID, 99)
		assert.ErrorIs(t, err, apperr.ErrNoDeletePermissionReply)
	})

	t.Run("author deletes only the reply", func(t *testing.T) {
		require.NoError(t, svc.DeleteReply(ctx, 1, c.ID, r.ID, 11))
		assert.NotContains(t, store.replies, r.ID)
		assert.Contains(t, store.comments, c.ID)
	})
}
