package db

import (
	"context"
	"errors"

	"agrocore/models"

	"github.com/jmoiron/sqlx"
)

// ErrInvalidState is returned when a guarded status transition matched no row
// (the entity is no longer in the state the transition requires).
var ErrInvalidState = errors.New("entity is not in a state that allows this transition")

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Users

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	query := `
        INSERT INTO users (name, email, password_hash, profile_type, company, phone)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.ProfileType, u.Company, u.Phone).
		Scan(&u.ID, &u.CreatedAt)
}

func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := `SELECT * FROM users WHERE id=$1`
	err := s.db.GetContext(ctx, u, query, id)
	return u, err
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT * FROM users WHERE email=$1`
	err := s.db.GetContext(ctx, u, query, email)
	return u, err
}

// ListUsers returns the directory with the follow flag resolved in one query
// instead of a per-row lookup.
func (s *Storage) ListUsers(ctx context.Context, viewerID int) ([]models.UserDirectoryEntry, error) {
	query := `
        SELECT u.id, u.name, u.profile_type, u.company,
               (c.follower_id IS NOT NULL) AS is_following
        FROM users u
        LEFT JOIN connections c ON c.following_id = u.id AND c.follower_id = $1
        WHERE u.id <> $1
        ORDER BY u.name ASC`
	entries := []models.UserDirectoryEntry{}
	err := s.db.SelectContext(ctx, &entries, query, viewerID)
	return entries, err
}

// Buyer profiles

func (s *Storage) UpsertBuyerProfile(ctx context.Context, p *models.BuyerProfile) error {
	query := `
        INSERT INTO buyer_profiles (user_id, company_name, segment, region)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE
        SET company_name = EXCLUDED.company_name,
            segment = EXCLUDED.segment,
            region = EXCLUDED.region`
	_, err := s.db.ExecContext(ctx, query, p.UserID, p.CompanyName, p.Segment, p.Region)
	return err
}

func (s *Storage) ListBuyerProfiles(ctx context.Context) ([]models.BuyerProfile, error) {
	profiles := []models.BuyerProfile{}
	query := `
        SELECT b.user_id, b.company_name, b.segment, b.region
        FROM buyer_profiles b
        JOIN users u ON u.id = b.user_id
        ORDER BY b.company_name ASC`
	err := s.db.SelectContext(ctx, &profiles, query)
	return profiles, err
}
