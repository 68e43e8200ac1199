package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	"github.com/SscSPs/vidtube_backend/internal/models"
	"github.com/SscSPs/vidtube_backend/internal/utils/mapping"
)

const userColumns = `id::text, username, email, full_name, avatar, cover_image, password_hash,
		watch_history::text[], refresh_token_hash, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.Email,
		&m.FullName,
		&m.Avatar,
		&m.CoverImage,
		&m.PasswordHash,
		&m.WatchHistory,
		&m.RefreshTokenHash,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	id, err := uuid.Parse(m.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", m.UserID, err)
	}
	query := `
		INSERT INTO users (id, username, email, full_name, avatar, cover_image, password_hash,
			watch_history, refresh_token_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text[]::uuid[], $9, $10, $11);
	`
	_, err = r.Pool.Exec(ctx, query,
		id,
		m.Username,
		m.Email,
		m.FullName,
		m.Avatar,
		m.CoverImage,
		m.PasswordHash,
		m.WatchHistory,
		m.RefreshTokenHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s/%s already exists: %w", m.Username, m.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`

	user, err := scanUser(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

// FindUserByUsernameOrEmail matches either identifier. Callers pass normalized
// values; an empty identifier matches nothing.
func (r *PgxUserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (username = $1 AND $1 <> '') OR (email = $2 AND $2 <> '')
		ORDER BY created_at
		LIMIT 1;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, username, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username or email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error) {
	// A NULL viewer never matches a subscriber, so anonymous viewers are not subscribed.
	var viewer any
	if id, err := parseID(viewerID); err == nil {
		viewer = id
	}

	query := `
		SELECT u.id::text, u.full_name, u.username, u.email, u.avatar, u.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channels_subscribed_to_count,
			EXISTS (
				SELECT 1 FROM subscriptions s
				WHERE s.channel_id = u.id AND s.subscriber_id = $2::uuid
			) AS is_subscribed
		FROM users u
		WHERE u.username = $1;
	`
	var m models.ChannelProfileRow
	err := r.Pool.QueryRow(ctx, query, username, viewer).Scan(
		&m.UserID,
		&m.FullName,
		&m.Username,
		&m.Email,
		&m.Avatar,
		&m.CoverImage,
		&m.SubscribersCount,
		&m.ChannelsSubscribedToCount,
		&m.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load channel profile for %s: %w", username, err)
	}
	profile := mapping.ToDomainChannelProfile(m)
	return &profile, nil
}

// FindWatchHistory returns the watched videos in stored order, each with its owner.
// Ids whose video no longer exists are skipped.
func (r *PgxUserRepository) FindWatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1);`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check user %s: %w", userID, err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	query := `
		SELECT v.id::text, v.video_file, v.thumbnail, v.title, v.description, v.duration,
			v.views, v.is_published, v.created_at, v.updated_at,
			o.full_name, o.username, o.avatar
		FROM users u
		CROSS JOIN LATERAL unnest(u.watch_history) WITH ORDINALITY AS h(video_id, position)
		JOIN videos v ON v.id = h.video_id
		LEFT JOIN LATERAL (
			SELECT ou.full_name, ou.username, ou.avatar
			FROM users ou
			WHERE ou.id = v.owner_id
			LIMIT 1
		) o ON TRUE
		WHERE u.id = $1
		ORDER BY h.position;
	`
	rows, err := tx.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	modelRows := []models.WatchHistoryRow{}
	for rows.Next() {
		var m models.WatchHistoryRow
		err := rows.Scan(
			&m.VideoID,
			&m.VideoFile,
			&m.Thumbnail,
			&m.Title,
			&m.Description,
			&m.Duration,
			&m.Views,
			&m.IsPublished,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.OwnerFullName,
			&m.OwnerUsername,
			&m.OwnerAvatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch history row: %w", err)
		}
		modelRows = append(modelRows, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating watch history rows: %w", rows.Err())
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return mapping.ToDomainVideoSlice(modelRows), nil
}

func (r *PgxUserRepository) UpdateAccountDetails(ctx context.Context, userID, fullName, email string, updatedAt time.Time) error {
	query := `UPDATE users SET full_name = $1, email = $2, updated_at = $3 WHERE id = $4;`
	err := r.execUserUpdate(ctx, userID, query, fullName, email, updatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s is taken: %w", email, apperrors.ErrDuplicate)
	}
	return err
}

func (r *PgxUserRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string, updatedAt time.Time) error {
	query := `UPDATE users SET avatar = $1, updated_at = $2 WHERE id = $3;`
	return r.execUserUpdate(ctx, userID, query, avatarURL, updatedAt)
}

func (r *PgxUserRepository) UpdateCoverImage(ctx context.Context, userID, coverImageURL string, updatedAt time.Time) error {
	query := `UPDATE users SET cover_image = $1, updated_at = $2 WHERE id = $3;`
	return r.execUserUpdate(ctx, userID, query, coverImageURL, updatedAt)
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3;`
	return r.execUserUpdate(ctx, userID, query, passwordHash, updatedAt)
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string) error {
	query := `UPDATE users SET refresh_token_hash = $1 WHERE id = $2;`
	return r.execUserUpdate(ctx, userID, query, refreshTokenHash)
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL WHERE id = $1;`
	return r.execUserUpdate(ctx, userID, query)
}

// execUserUpdate runs an UPDATE whose last placeholder is the user id.
func (r *PgxUserRepository) execUserUpdate(ctx context.Context, userID, query string, args ...any) error {
	id, err := parseID(userID)
	if err != nil {
		return err
	}
	cmdTag, err := r.Pool.Exec(ctx, query, append(args, id)...)
	if err != nil {
		if isUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
