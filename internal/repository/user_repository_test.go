package repository_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devmatch/devmatch/internal/db"
	"github.com/devmatch/devmatch/internal/repository"
)

func TestEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewUserRepository(gdb)

	require.NoError(t, repo.Create(ctx, &db.User{
		FirstName: "Alice", LastName: "Test", Email: "dup@test.com",
		PasswordHash: "x", InterestedIn: "All",
	}))

	err := repo.Create(ctx, &db.User{
		FirstName: "Alicia", LastName: "Test", Email: "dup@test.com",
		PasswordHash: "x", InterestedIn: "All",
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFindByEmail(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewUserRepository(gdb)

	u := seedUser(t, gdb, "Alice", "alice@test.com", "Female", "Male")

	got, err := repo.FindByEmail(ctx, "alice@test.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.FindByEmail(ctx, "nobody@test.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFeedExcludesSelfAndCounterparts(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	users := repository.NewUserRepository(gdb)
	reqs := repository.NewRequestRepository(gdb)

	viewer := seedUser(t, gdb, "Viewer", "v@test.com", "Male", "All")
	sentTo := seedUser(t, gdb, "SentTo", "s@test.com", "Female", "All")
	ignored := seedUser(t, gdb, "Ignored", "i@test.com", "Female", "All")
	sender := seedUser(t, gdb, "Sender", "r@test.com", "Female", "All")
	fresh := seedUser(t, gdb, "Fresh", "f@test.com", "Female", "All")

	require.NoError(t, reqs.Create(ctx, &db.ConnectionRequest{FromUserID: viewer.ID, ToUserID: sentTo.ID, Status: db.StatusAccepted}))
	require.NoError(t, reqs.Create(ctx, &db.ConnectionRequest{FromUserID: viewer.ID, ToUserID: ignored.ID, Status: db.StatusIgnored}))
	require.NoError(t, reqs.Create(ctx, &db.ConnectionRequest{FromUserID: sender.ID, ToUserID: viewer.ID, Status: db.StatusInterested}))

	feed, err := users.Feed(ctx, viewer.ID, "", 0, 50)
	require.NoError(t, err)

	// only the user with no relationship record remains
	require.Len(t, feed, 1)
	assert.Equal(t, fresh.ID, feed[0].ID)

	for _, u := range feed {
		assert.NotEqual(t, viewer.ID, u.ID)
		assert.Empty(t, u.Email, "feed must project public columns only")
		assert.Empty(t, u.PasswordHash)
	}
}

func TestFeedGenderFilter(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	users := repository.NewUserRepository(gdb)

	viewer := seedUser(t, gdb, "Viewer", "v@test.com", "Male", "Female")
	seedUser(t, gdb, "Fiona", "f@test.com", "Female", "Male")
	seedUser(t, gdb, "Mark", "m@test.com", "Male", "Female")
	seedUser(t, gdb, "Faye", "f2@test.com", "female", "Male") // stored lowercase

	feed, err := users.Feed(ctx, viewer.ID, "Female", 0, 50)
	require.NoError(t, err)

	require.Len(t, feed, 2, "filter is case-insensitive")
	for _, u := range feed {
		assert.True(t, strings.EqualFold(u.Gender, "Female"))
	}
}

func TestFeedPaginationStable(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	users := repository.NewUserRepository(gdb)

	viewer := seedUser(t, gdb, "Viewer", "v@test.com", "Male", "All")
	for i := 0; i < 7; i++ {
		seedUser(t, gdb, "Cand", string(rune('a'+i))+"@test.com", "Female", "All")
	}

	first, err := users.Feed(ctx, viewer.ID, "", 0, 3)
	require.NoError(t, err)
	again, err := users.Feed(ctx, viewer.ID, "", 0, 3)
	require.NoError(t, err)
	require.Equal(t, idsOf(first), idsOf(again), "same page twice with no writes is identical")

	second, err := users.Feed(ctx, viewer.ID, "", 3, 3)
	require.NoError(t, err)
	for _, id := range idsOf(second) {
		assert.NotContains(t, idsOf(first), id, "pages must not overlap")
	}

	// newest first: id DESC
	ids := idsOf(first)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i-1], ids[i])
	}
}

func idsOf(users []db.User) []uint64 {
	out := make([]uint64, 0, len(users))
	for i := range users {
		out = append(out, users[i].ID)
	}
	return out
}
