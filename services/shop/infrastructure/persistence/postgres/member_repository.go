package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/storefront/pkg/database"
	"github.com/ghuser/storefront/pkg/events"
	shopdomain "github.com/ghuser/storefront/services/shop/domain"
	domainevents "github.com/ghuser/storefront/services/shop/domain/events"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// MemberRepository implements repositories.MemberRepository against PostgreSQL.
type MemberRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewMemberRepository returns a MemberRepository backed by the given
// connection pool and event bus. The bus is used to publish
// MemberJoinedEvents after a successful save.
func NewMemberRepository(db *database.Database, bus *events.EventBus) *MemberRepository {
	return &MemberRepository{db: db, bus: bus}
}

// Save persists a new Member and publishes a MemberJoinedEvent within the
// same transaction. The unique index on name is the authoritative guard for
// the duplicate-name race; its violation maps to ErrDuplicateMember so
// callers see one error regardless of which layer caught the collision.
func (r *MemberRepository) Save(ctx context.Context, member *models.Member) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO members (id, name, city, street, zipcode, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			member.ID, member.Name,
			member.Address.City, member.Address.Street, member.Address.Zipcode,
			member.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return shopdomain.ErrDuplicateMember
			}
			return fmt.Errorf("insert member: %w", err)
		}

		if r.bus != nil {
			if err := r.publishJoined(tx, member); err != nil {
				return fmt.Errorf("publish member joined: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Member by ID. Returns ErrMemberNotFound if not found.
func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, name, city, street, zipcode, created_at
		FROM members WHERE id = $1`, id)

	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shopdomain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("query member: %w", err)
	}
	return m, nil
}

// FindAll retrieves every member, oldest first.
func (r *MemberRepository) FindAll(ctx context.Context) ([]*models.Member, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, city, street, zipcode, created_at
		FROM members ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	return collectMembers(rows)
}

// FindByName retrieves members matching name exactly.
func (r *MemberRepository) FindByName(ctx context.Context, name string) ([]*models.Member, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, city, street, zipcode, created_at
		FROM members WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("query members by name: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	return collectMembers(rows)
}

func (r *MemberRepository) publishJoined(tx *sql.Tx, member *models.Member) error {
	event := domainevents.MemberJoinedEvent{
		EventID:    uuid.New(),
		Version:    1,
		MemberID:   member.ID,
		Name:       member.Name,
		OccurredAt: member.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicMemberJoined, msg)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var (
		m         models.Member
		createdAt time.Time
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Address.City, &m.Address.Street, &m.Address.Zipcode, &createdAt); err != nil {
		return nil, err
	}
	m.CreatedAt = createdAt.UTC()
	return &m, nil
}

func collectMembers(rows *sql.Rows) ([]*models.Member, error) {
	var members []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}
