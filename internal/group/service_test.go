package group

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/foodmate/internal/chat"
	"github.com/fkhayef/foodmate/internal/food"
	"github.com/fkhayef/foodmate/pkg/apperr"
	"github.com/fkhayef/foodmate/pkg/geo"
)

type fakeStore struct {
	groups map[int64]*Group
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{groups: make(map[int64]*Group)}
}

func (f *fakeStore) Create(_ context.Context, g *Group) (*Group, error) {
	f.nextID++
	g.ID = f.nextID
	g.CreatedAt = time.Now()
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (f *fakeStore) Update(_ context.Context, g *Group) (*Group, error) {
	stored, ok := f.groups[g.ID]
	if !ok {
		return nil, apperr.ErrGroupNotFound
	}
	if stored.Status == StatusDeleted {
		return nil, apperr.ErrGroupDeleted
	}
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeStore) SoftDelete(_ context.Context, groupID, memberID int64) error {
	g, ok := f.groups[groupID]
	if !ok {
		return apperr.ErrGroupNotFound
	}
	if g.Status == StatusDeleted {
		return apperr.ErrGroupDeleted
	}
	if g.MemberID != memberID {
		return apperr.ErrNoDeletePermissionGroup
	}
	now := time.Now()
	g.Status = StatusDeleted
	g.DeletedAt = &now
	return nil
}

func (f *fakeStore) Search(_ context.Context, keyword string, limit, offset int) ([]*Group, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) ListToday(_ context.Context, limit, offset int) ([]*Group, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) ListAll(_ context.Context, limit, offset int) ([]*Group, int, error) {
	return nil, 0, nil
}

func (f *fakeStore) ListNearby(_ context.Context, point geo.Point, limit, offset int) ([]*Group, int, error) {
	var out []*Group
	for _, g := range f.groups {
		if g.Status == StatusActive {
			out = append(out, g)
		}
	}
	return out, len(out), nil
}

type fakeFoods struct{}

func (fakeFoods) GetByType(_ context.Context, foodType string) (*food.Food, error) {
	known := map[string]int64{"korean": 1, "chinese": 2, "pizza": 3}
	id, ok := known[foodType]
	if !ok {
		return nil, nil
	}
	return &food.Food{ID: id, Type: foodType}, nil
}

type fakeCounter struct {
	accepted int
}

func (f *fakeCounter) CountAccepted(_ context.Context, _ int64) (int, error) {
	return f.accepted, nil
}

type fakeRooms struct {
	rooms map[int64]*chat.Room

	// onLookup, when set, runs before the lookup. Tests use it to commit a
	// competing write between the service's reads.
	onLookup func(groupID int64)
}

func (f *fakeRooms) GetByGroupID(_ context.Context, groupID int64) (*chat.Room, error) {
	if f.onLookup != nil {
		f.onLookup(groupID)
	}
	return f.rooms[groupID], nil
}

func newService() (*Service, *fakeStore, *fakeCounter, *fakeRooms) {
	store := newFakeStore()
	counter := &fakeCounter{}
	rooms := &fakeRooms{rooms: make(map[int64]*chat.Room)}
	return NewService(store, fakeFoods{}, counter, rooms), store, counter, rooms
}

func validRequest(when time.Time) *Request {
	return &Request{
		Title:        "Friday dinner",
		Name:         "Pasta night",
		Content:      "Casual dinner, bring an appetite.",
		Food:         "korean",
		Date:         when.Format("2006-01-02"),
		Time:         when.Format("15:04"),
		Maximum:      4,
		StoreName:    "Mama Kim",
		StoreAddress: "12 Main St",
		Latitude:     "37.5665",
		Longitude:    "126.9780",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid draft", func(t *testing.T) {
		svc, store, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, StatusActive, g.Status)
		assert.Equal(t, int64(1), g.MemberID)
		assert.Equal(t, "korean", g.FoodType)
		assert.Len(t, store.groups, 1)
	})

	t.Run("unknown food category", func(t *testing.T) {
		svc, _, _, _ := newService()
		req := validRequest(time.Now().Add(2 * time.Hour))
		req.Food = "martian"
		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, apperr.ErrFoodNotFound)
	})

	t.Run("scheduling window", func(t *testing.T) {
		tests := []struct {
			name    string
			when    time.Time
			wantErr error
		}{
			{"thirty minutes out is too soon", time.Now().Add(30 * time.Minute), apperr.ErrOutOfDateRange},
			{"forty days out is too far", time.Now().Add(40 * 24 * time.Hour), apperr.ErrOutOfDateRange},
			{"two hours out is fine", time.Now().Add(2 * time.Hour), nil},
			{"three weeks out is fine", time.Now().Add(21 * 24 * time.Hour), nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _, _, _ := newService()
				_, err := svc.Create(ctx, 1, validRequest(tt.when))
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("bad coordinates", func(t *testing.T) {
		svc, _, _, _ := newService()
		req := validRequest(time.Now().Add(2 * time.Hour))
		req.Latitude = "not-a-number"
		_, err := svc.Create(ctx, 1, req)
		assert.Error(t, err)
	})
}

func TestGetDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("headcount is accepted plus owner", func(t *testing.T) {
		svc, _, counter, rooms := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)
		rooms.rooms[g.ID] = &chat.Room{ID: 7, GroupID: g.ID}
		counter.accepted = 2

		got, room, current, err := svc.GetDetail(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, g.ID, got.ID)
		assert.Equal(t, int64(7), room.ID)
		assert.Equal(t, 3, current)
	})

	t.Run("missing group", func(t *testing.T) {
		svc, _, _, _ := newService()
		_, _, _, err := svc.GetDetail(ctx, 99)
		assert.ErrorIs(t, err, apperr.ErrGroupNotFound)
	})

	t.Run("deleted group", func(t *testing.T) {
		svc, _, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, g.ID, 1))

		_, _, _, err = svc.GetDetail(ctx, g.ID)
		assert.ErrorIs(t, err, apperr.ErrGroupDeleted)
	})

	t.Run("missing chat room is reported", func(t *testing.T) {
		svc, _, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)

		_, _, _, err = svc.GetDetail(ctx, g.ID)
		assert.ErrorIs(t, err, apperr.ErrChatroomNotFound)
	})

	t.Run("delete committing between reads is reported as the deletion", func(t *testing.T) {
		// The group read sees a live group, then the delete cascade commits
		// and takes the chat room with it before the room read runs.
		svc, store, _, rooms := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)
		rooms.rooms[g.ID] = &chat.Room{ID: 7, GroupID: g.ID}

		rooms.onLookup = func(groupID int64) {
			require.NoError(t, store.SoftDelete(ctx, groupID, 1))
			delete(rooms.rooms, groupID)
		}

		_, _, _, err = svc.GetDetail(ctx, g.ID)
		assert.ErrorIs(t, err, apperr.ErrGroupDeleted)
	})
}

func TestListNearby(t *testing.T) {
	ctx := context.Background()

	svc, _, _, _ := newService()
	g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
	require.NoError(t, err)

	groups, total, err := svc.ListNearby(ctx, geo.Point{Latitude: 37.5665, Longitude: 126.9780}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, groups, 1)
	assert.Equal(t, g.ID, groups[0].ID)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates fields", func(t *testing.T) {
		svc, store, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)

		req := validRequest(time.Now().Add(3 * time.Hour))
		req.Title = "Saturday brunch"
		req.Food = "pizza"
		updated, err := svc.Update(ctx, g.ID, 1, req)
		require.NoError(t, err)
		assert.Equal(t, "Saturday brunch", updated.Title)
		assert.Equal(t, "pizza", updated.FoodType)
		assert.Equal(t, "Saturday brunch", store.groups[g.ID].Title)
	})

	t.Run("non-owner is refused and nothing changes", func(t *testing.T) {
		svc, store, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)

		req := validRequest(time.Now().Add(3 * time.Hour))
		req.Title = "Hijacked"
		_, err = svc.Update(ctx, g.ID, 2, req)
		assert.ErrorIs(t, err, apperr.ErrNoModifyPermissionGroup)
		assert.Equal(t, "Friday dinner", store.groups[g.ID].Title)
	})

	t.Run("deleted group cannot be updated", func(t *testing.T) {
		svc, _, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, g.ID, 1))

		_, err = svc.Update(ctx, g.ID, 1, validRequest(time.Now().Add(3*time.Hour)))
		assert.ErrorIs(t, err, apperr.ErrGroupDeleted)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		svc, store, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, g.ID, 1))
		assert.Equal(t, StatusDeleted, store.groups[g.ID].Status)
		assert.NotNil(t, store.groups[g.ID].DeletedAt)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		svc, store, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)

		err = svc.Delete(ctx, g.ID, 2)
		assert.ErrorIs(t, err, apperr.ErrNoDeletePermissionGroup)
		assert.Equal(t, StatusActive, store.groups[g.ID].Status)
	})

	t.Run("double delete", func(t *testing.T) {
		svc, _, _, _ := newService()
		g, err := svc.Create(ctx, 1, validRequest(time.Now().Add(2*time.Hour)))
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, g.ID, 1))
		assert.ErrorIs(t, svc.Delete(ctx, g.ID, 1), apperr.ErrGroupDeleted)
	})
}
