package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/devmatch/devmatch/internal/db"
	"github.com/devmatch/devmatch/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(&db.User{}, &db.ConnectionRequest{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func seedUser(t *testing.T, gdb *gorm.DB, first, email, gender, interest string) *db.User {
	t.Helper()
	u := &db.User{
		FirstName:    first,
		LastName:     "Test",
		Email:        email,
		PasswordHash: "x",
		Gender:       gender,
		InterestedIn: interest,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func TestCreateAndPairUniqueness(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewRequestRepository(gdb)

	a := seedUser(t, gdb, "Alice", "a@test.com", "Female", "Male")
	b := seedUser(t, gdb, "Bob", "b@test.com", "Male", "Female")

	err := repo.Create(ctx, &db.ConnectionRequest{FromUserID: a.ID, ToUserID: b.ID, Status: db.StatusInterested})
	require.NoError(t, err)

	// same ordered pair again hits the unique index
	err = repo.Create(ctx, &db.ConnectionRequest{FromUserID: a.ID, ToUserID: b.ID, Status: db.StatusIgnored})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestExistsForPairBothOrderings(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewRequestRepository(gdb)

	a := seedUser(t, gdb, "Alice", "a@test.com", "Female", "Male")
	b := seedUser(t, gdb, "Bob", "b@test.com", "Male", "Female")
	c := seedUser(t, gdb, "Cara", "c@test.com", "Female", "Male")

	require.NoError(t, repo.Create(ctx, &db.ConnectionRequest{FromUserID: a.ID, ToUserID: b.ID, Status: db.StatusRejected}))

	exists, err := repo.ExistsForPair(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// reverse direction also counts; a pair only ever gets one record
	exists, err = repo.ExistsForPair(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForPair(ctx, a.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPendingReceivedUsesSingleStatusLiteral(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewRequestRepository(gdb)

	a := seedUser(t, gdb, "Alice", "a@test.com", "Female", "Male")
	b := seedUser(t, gdb, "Bob", "b@test.com", "Male", "Female")
	c := seedUser(t, gdb, "Cara", "c@test.com", "Female", "All")

	// what send writes is exactly what the inbox reads
	require.NoError(t, repo.Create(ctx, &db.ConnectionRequest{FromUserID: a.ID, ToUserID: b.ID, Status: db.StatusInterested}))
	require.NoError(t, repo.Create(ctx, &db.ConnectionRequest{FromUserID: c.ID, ToUserID: b.ID, Status: db.StatusIgnored}))

	reqs, err := repo.PendingReceived(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, a.ID, reqs[0].FromUserID)
	require.NotNil(t, reqs[0].FromUser)
	assert.Equal(t, "Alice", reqs[0].FromUser.FirstName)
	assert.Empty(t, reqs[0].FromUser.Email, "preload must project public columns only")

	count, err := repo.CountPendingReceived(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAcceptedForUserEitherSide(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewRequestRepository(gdb)

	a := seedUser(t, gdb, "Alice", "a@test.com", "Female", "Male")
	b := seedUser(t, gdb, "Bob", "b@test.com", "Male", "Female")
	c := seedUser(t, gdb, "Cara", "c@test.com", "Female", "Male")

	require.NoError(t, repo.Create(ctx, &db.ConnectionRequest{FromUserID: a.ID, ToUserID: b.ID, Status: db.StatusAccepted}))
	require.NoError(t, repo.Create(ctx, &db.ConnectionRequest{FromUserID: b.ID, ToUserID: c.ID, Status: db.StatusAccepted}))
	require.NoError(t, repo.Create(ctx, &db.ConnectionRequest{FromUserID: c.ID, ToUserID: a.ID, Status: db.StatusRejected}))

	conns, err := repo.AcceptedForUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, conns, 2)

	conns, err = repo.AcceptedForUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	require.NotNil(t, conns[0].FromUser)
	require.NotNil(t, conns[0].ToUser)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewRequestRepository(gdb)

	a := seedUser(t, gdb, "Alice", "a@test.com", "Female", "Male")
	b := seedUser(t, gdb, "Bob", "b@test.com", "Male", "Female")

	req := &db.ConnectionRequest{FromUserID: a.ID, ToUserID: b.ID, Status: db.StatusInterested}
	require.NoError(t, repo.Create(ctx, req))

	require.NoError(t, repo.UpdateStatus(ctx, req.ID, db.StatusAccepted))

	got, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, db.StatusAccepted, got.Status)
}

func TestFindByIDMissing(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	repo := repository.NewRequestRepository(gdb)

	got, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}
