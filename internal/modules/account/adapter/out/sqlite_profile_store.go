package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flo8/internal/modules/account/domain"
	accountout "flo8/internal/modules/account/port/out"
	apperrors "flo8/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteProfileStore struct {
	db *sql.DB
}

func NewSQLiteProfileStore(dbPath string) (*SQLiteProfileStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteProfileStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	if err := store.seedDemoAccounts(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

var _ accountout.ProfileRepository = (*SQLiteProfileStore)(nil)

func (s *SQLiteProfileStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteProfileStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  name TEXT NOT NULL,
  plan TEXT NOT NULL,
  plan_active_until TEXT NOT NULL,
  onboarding_complete INTEGER NOT NULL DEFAULT 0,
  streak INTEGER NOT NULL DEFAULT 0,
  goals TEXT NOT NULL DEFAULT '[]',
  baseline TEXT NOT NULL DEFAULT '{}',
  mobility_limited INTEGER NOT NULL DEFAULT 0,
  notification_time TEXT NOT NULL DEFAULT '',
  theme TEXT NOT NULL DEFAULT 'light'
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

// seedDemoAccounts inserts the two built-in demo logins on first run.
// Passwords are stored as-is: the store is a local single-user cache, not a
// credential service.
func (s *SQLiteProfileStore) seedDemoAccounts(ctx context.Context) error {
	until := time.Now().AddDate(0, 0, 56).Format(time.RFC3339)
	seeds := []struct {
		id, email, password, name, plan string
		complete                        bool
		streak                          int
	}{
		{"usr-test", "test@flo8.nl", "wachtwoord123", "Sander de Tester", string(domain.PlanW8), false, 0},
		{"usr-demo", "demo@flo8.nl", "demo123", "Demo Gebruiker", string(domain.PlanW4), true, 3},
	}
	for _, seed := range seeds {
		const stmt = `
INSERT INTO profiles (id, email, password, name, plan, plan_active_until, onboarding_complete, streak)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(email) DO NOTHING;
`
		if _, err := s.db.ExecContext(ctx, stmt, seed.id, seed.email, seed.password, seed.name, seed.plan, until, boolToInt(seed.complete), seed.streak); err != nil {
			return fmt.Errorf("seed account %s: %w", seed.email, err)
		}
	}
	return nil
}

func (s *SQLiteProfileStore) Login(ctx context.Context, email, password string) (domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, password FROM profiles WHERE email = ?`, email)
	var id, stored string
	if err := row.Scan(&id, &stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, apperrors.ErrInvalidCredentials
		}
		return domain.Profile{}, fmt.Errorf("lookup account: %w", err)
	}
	if stored != password {
		return domain.Profile{}, apperrors.ErrInvalidCredentials
	}
	return s.FindByID(ctx, id)
}

const profileColumns = `id, email, name, plan, plan_active_until, onboarding_complete, streak, goals, baseline, mobility_limited, notification_time, theme`

func (s *SQLiteProfileStore) FindByID(ctx context.Context, id string) (domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("%w: profile %s", apperrors.ErrNotFound, id)
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

// Update re-reads the row, merges the partial fields in memory and writes the
// full row back inside a transaction, so a failed write leaves the old state.
func (s *SQLiteProfileStore) Update(ctx context.Context, id string, update domain.ProfileUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: profile %s", apperrors.ErrNotFound, id)
		}
		return err
	}
	merged := profile.Apply(update)

	goals, err := json.Marshal(merged.Goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	baseline, err := json.Marshal(merged.Baseline)
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}
	const stmt = `
UPDATE profiles SET
  name=?, onboarding_complete=?, streak=?, goals=?, baseline=?, mobility_limited=?, notification_time=?, theme=?
WHERE id=?;
`
	if _, err := tx.ExecContext(ctx, stmt,
		merged.Name,
		boolToInt(merged.OnboardingComplete),
		merged.Streak,
		string(goals),
		string(baseline),
		boolToInt(merged.MobilityLimited),
		merged.NotificationTime,
		string(merged.Theme),
		id,
	); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) ChangePassword(ctx context.Context, id, current, next string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE profiles SET password=? WHERE id=? AND password=?`, next, id, current)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

func scanProfile(row *sql.Row) (domain.Profile, error) {
	var (
		p                  domain.Profile
		plan, theme, until string
		onboarding, mobile int
		goals, baseline    string
	)
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &plan, &until, &onboarding, &p.Streak, &goals, &baseline, &mobile, &p.NotificationTime, &theme); err != nil {
		return domain.Profile{}, err
	}
	p.Plan = domain.PlanType(plan)
	p.Theme = domain.Theme(theme)
	p.OnboardingComplete = onboarding != 0
	p.MobilityLimited = mobile != 0
	if parsed, err := time.Parse(time.RFC3339, until); err == nil {
		p.PlanActiveUntil = parsed
	}
	if err := json.Unmarshal([]byte(goals), &p.Goals); err != nil {
		return domain.Profile{}, fmt.Errorf("decode goals: %w", err)
	}
	if baseline != "" && baseline != "{}" {
		if err := json.Unmarshal([]byte(baseline), &p.Baseline); err != nil {
			return domain.Profile{}, fmt.Errorf("decode baseline: %w", err)
		}
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
