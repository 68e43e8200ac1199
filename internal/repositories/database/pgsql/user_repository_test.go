package pgsql_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vidtube_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/vidtube_backend/pkg/database"
)

const postgresPort = "5432/tcp"

// UserRepositoryTestSuite runs the user queries against a real Postgres with
// the service migrations applied.
type UserRepositoryTestSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      portsrepo.UserRepositoryFacade
	now       time.Time
}

func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     "vidtube",
			"POSTGRES_PASSWORD": "vidtube",
			"POSTGRES_DB":       "vidtube",
		},
		// Postgres restarts once after init, so the ready line shows up twice.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(90*time.Second),
			wait.ForListeningPort(postgresPort),
		),
	}
	container, err := testcontainers.GenericContainer(suite.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(suite.ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(suite.ctx, postgresPort)
	suite.Require().NoError(err)
	dsn := fmt.Sprintf("postgres://vidtube:vidtube@%s:%s/vidtube?sslmode=disable", host, port.Port())

	migrationsDir, err := filepath.Abs("../../../../migrations")
	suite.Require().NoError(err)
	m, err := migrate.New("file://"+migrationsDir, dsn)
	suite.Require().NoError(err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		suite.Require().NoError(err)
	}
	srcErr, dbErr := m.Close()
	suite.Require().NoError(srcErr)
	suite.Require().NoError(dbErr)

	suite.pool, err = database.NewPgxPool(suite.ctx, dsn, true)
	suite.Require().NoError(err)
	suite.repo = pgsql.NewRepositoryProvider(suite.pool).UserRepo
	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *UserRepositoryTestSuite) TearDownSuite() {
	database.ClosePgxPool(suite.pool)
	if suite.container != nil {
		if err := suite.container.Terminate(context.Background()); err != nil {
			suite.T().Logf("failed to terminate postgres container: %v", err)
		}
	}
}

func (suite *UserRepositoryTestSuite) SetupTest() {
	_, err := suite.pool.Exec(suite.ctx, `TRUNCATE users, videos, subscriptions;`)
	suite.Require().NoError(err)
}

// --- fixtures ---
func (suite *UserRepositoryTestSuite) saveUser(username string, watchHistory ...string) domain.User {
	if watchHistory == nil {
		watchHistory = []string{}
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Full " + username,
		Avatar:       "https://cdn.example.com/" + username + ".png",
		PasswordHash: "$2a$04$not-a-real-hash",
		WatchHistory: watchHistory,
		AuditFields:  domain.AuditFields{CreatedAt: suite.now, UpdatedAt: suite.now},
	}
	suite.Require().NoError(suite.repo.SaveUser(suite.ctx, user))
	return user
}

func (suite *UserRepositoryTestSuite) subscribe(subscriber, channel domain.User) {
	_, err := suite.pool.Exec(suite.ctx,
		`INSERT INTO subscriptions (id, subscriber_id, channel_id) VALUES ($1, $2, $3);`,
		uuid.New(), uuid.MustParse(subscriber.UserID), uuid.MustParse(channel.UserID))
	suite.Require().NoError(err)
}

func (suite *UserRepositoryTestSuite) saveVideo(title, ownerID string) string {
	id := uuid.New()
	_, err := suite.pool.Exec(suite.ctx,
		`INSERT INTO videos (id, video_file, thumbnail, title, description, duration, views, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		id, "https://cdn.example.com/"+id.String()+".mp4", "https://cdn.example.com/"+id.String()+".jpg",
		title, "about "+title, 12.5, int64(3), uuid.MustParse(ownerID))
	suite.Require().NoError(err)
	return id.String()
}

// --- Channel profile ---
func (suite *UserRepositoryTestSuite) TestFindChannelProfile_CountsAndSubscription() {
	bob := suite.saveUser("bob")
	alice := suite.saveUser("alice")
	carol := suite.saveUser("carol")
	dave := suite.saveUser("dave")
	suite.subscribe(alice, bob)
	suite.subscribe(carol, bob)
	suite.subscribe(bob, dave)

	profile, err := suite.repo.FindChannelProfile(suite.ctx, "bob", alice.UserID)
	suite.Require().NoError(err)
	suite.Equal(domain.ChannelProfile{
		UserID:                    bob.UserID,
		FullName:                  bob.FullName,
		Username:                  "bob",
		Email:                     bob.Email,
		Avatar:                    bob.Avatar,
		CoverImage:                "",
		SubscribersCount:          2,
		ChannelsSubscribedToCount: 1,
		IsSubscribed:              true,
	}, *profile)

	profile, err = suite.repo.FindChannelProfile(suite.ctx, "bob", dave.UserID)
	suite.Require().NoError(err)
	suite.False(profile.IsSubscribed, "dave is subscribed to by bob, not the other way round")

	profile, err = suite.repo.FindChannelProfile(suite.ctx, "bob", "")
	suite.Require().NoError(err)
	suite.False(profile.IsSubscribed)
	suite.EqualValues(2, profile.SubscribersCount)
}

func (suite *UserRepositoryTestSuite) TestFindChannelProfile_NoSubscriptions() {
	suite.saveUser("erin")

	profile, err := suite.repo.FindChannelProfile(suite.ctx, "erin", "")

	suite.Require().NoError(err)
	suite.Zero(profile.SubscribersCount)
	suite.Zero(profile.ChannelsSubscribedToCount)
}

func (suite *UserRepositoryTestSuite) TestFindChannelProfile_Unknown() {
	_, err := suite.repo.FindChannelProfile(suite.ctx, "ghost", "")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Watch history ---
func (suite *UserRepositoryTestSuite) TestFindWatchHistory_OrderAndOwner() {
	bob := suite.saveUser("bob")
	first := suite.saveVideo("first", bob.UserID)
	orphan := suite.saveVideo("orphan", uuid.NewString())
	third := suite.saveVideo("third", bob.UserID)
	missing := uuid.NewString()

	alice := suite.saveUser("alice", third, orphan, missing, first)

	videos, err := suite.repo.FindWatchHistory(suite.ctx, alice.UserID)
	suite.Require().NoError(err)
	suite.Require().Len(videos, 3, "ids without a video are dropped")

	suite.Equal(third, videos[0].VideoID)
	suite.Equal(orphan, videos[1].VideoID)
	suite.Equal(first, videos[2].VideoID)

	suite.Equal(&domain.VideoOwner{FullName: bob.FullName, Username: "bob", Avatar: bob.Avatar}, videos[0].Owner)
	suite.Nil(videos[1].Owner, "a video whose owner is gone has no owner")
	suite.Equal("third", videos[0].Title)
	suite.Equal(12.5, videos[0].Duration)
	suite.EqualValues(3, videos[0].Views)
	suite.True(videos[0].IsPublished)
}

func (suite *UserRepositoryTestSuite) TestFindWatchHistory_Empty() {
	alice := suite.saveUser("alice")

	videos, err := suite.repo.FindWatchHistory(suite.ctx, alice.UserID)

	suite.Require().NoError(err)
	suite.NotNil(videos)
	suite.Empty(videos)
}

func (suite *UserRepositoryTestSuite) TestFindWatchHistory_UnknownUser() {
	_, err := suite.repo.FindWatchHistory(suite.ctx, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.repo.FindWatchHistory(suite.ctx, "not-a-uuid")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Writes ---
func (suite *UserRepositoryTestSuite) TestSaveUser_DuplicateUsernameOrEmail() {
	alice := suite.saveUser("alice")

	sameUsername := alice
	sameUsername.UserID = uuid.NewString()
	sameUsername.Email = "other@example.com"
	err := suite.repo.SaveUser(suite.ctx, sameUsername)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(http.StatusConflict, apperrors.StatusCodeOf(err))

	sameEmail := alice
	sameEmail.UserID = uuid.NewString()
	sameEmail.Username = "alice2"
	err = suite.repo.SaveUser(suite.ctx, sameEmail)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserRepositoryTestSuite) TestUpdateAccountDetails_DuplicateEmail() {
	alice := suite.saveUser("alice")
	bob := suite.saveUser("bob")

	err := suite.repo.UpdateAccountDetails(suite.ctx, alice.UserID, "Alice", bob.Email, suite.now)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(http.StatusConflict, apperrors.StatusCodeOf(err))
}

func (suite *UserRepositoryTestSuite) TestFindUserByUsernameOrEmail() {
	alice := suite.saveUser("alice")

	byUsername, err := suite.repo.FindUserByUsernameOrEmail(suite.ctx, "alice", "")
	suite.Require().NoError(err)
	suite.Equal(alice.UserID, byUsername.UserID)

	byEmail, err := suite.repo.FindUserByUsernameOrEmail(suite.ctx, "", alice.Email)
	suite.Require().NoError(err)
	suite.Equal(alice.UserID, byEmail.UserID)

	_, err = suite.repo.FindUserByUsernameOrEmail(suite.ctx, "", "")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserRepositoryTestSuite) TestRefreshTokenDigestRoundTrip() {
	alice := suite.saveUser("alice")

	suite.Require().NoError(suite.repo.UpdateRefreshToken(suite.ctx, alice.UserID, "digest-1"))
	stored, err := suite.repo.FindUserByID(suite.ctx, alice.UserID)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.RefreshTokenHash)
	suite.Equal("digest-1", *stored.RefreshTokenHash)

	suite.Require().NoError(suite.repo.ClearRefreshToken(suite.ctx, alice.UserID))
	stored, err = suite.repo.FindUserByID(suite.ctx, alice.UserID)
	suite.Require().NoError(err)
	suite.Nil(stored.RefreshTokenHash)

	err = suite.repo.UpdateRefreshToken(suite.ctx, uuid.NewString(), "digest-2")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}
