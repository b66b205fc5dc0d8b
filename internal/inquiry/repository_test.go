package inquiry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/wander/internal/db"
	"github.com/evcraddock/wander/internal/wizard"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "wander.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func mockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "sqlite3"), mock
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB(t))

	f := validForm()
	f.Message = "Honeymoon in June"
	inq, err := repo.Create(ctx, f)
	require.NoError(t, err)

	assert.NotEmpty(t, inq.ID)
	assert.Equal(t, "Asha Rao", inq.Name)
	assert.Equal(t, "Honeymoon in June", inq.Message)
	assert.False(t, inq.CreatedAt.IsZero())

	got, err := repo.Get(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, inq, got)
}

func TestCreateRejectsInvalidForm(t *testing.T) {
	repo := NewRepository(testDB(t))

	f := validForm()
	f.ContactNumber = "123"
	_, err := repo.Create(context.Background(), f)

	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	all, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB(t))

	for _, name := range []string{"first", "second", "third"} {
		f := validForm()
		f.Name = name
		_, err := repo.Create(ctx, f)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Name)
	assert.Equal(t, "first", all[2].Name)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB(t))

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testDB(t))

	inq, err := repo.Create(ctx, validForm())
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, inq.ID))

	_, err = repo.Get(ctx, inq.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInsertFailure(t *testing.T) {
	d, mock := mockDB(t)
	mock.ExpectExec("INSERT INTO inquiries").WillReturnError(errors.New("disk full"))

	_, err := NewRepository(d).Create(context.Background(), validForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting inquiry: disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListQueryFailure(t *testing.T) {
	d, mock := mockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM inquiries").WillReturnError(errors.New("locked"))

	_, err := NewRepository(d).List(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing inquiries")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func bali() wizard.Itinerary {
	return wizard.Itinerary{
		Destination:   "Bali",
		DurationLabel: "6-8 Days",
		TravellerType: wizard.TravellerFamily,
		RoomConfig:    wizard.RoomConfig{Adults: 3, Children: 1, Rooms: 2},
	}
}

func TestRecordPlan(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(testDB(t))

	p, err := repo.Record(ctx, "session-1", bali())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "session-1", p.SessionID)
	assert.Equal(t, bali(), p.Itinerary())

	_, err = repo.Record(ctx, "session-2", bali())
	require.NoError(t, err)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "session-2", all[0].SessionID)

	mine, err := repo.ListBySession(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p.ID, mine[0].ID)
}

func TestRecordIncompletePlan(t *testing.T) {
	repo := NewPlanRepository(testDB(t))

	_, err := repo.Record(context.Background(), "s", wizard.NewItinerary())
	assert.Error(t, err)
}

func TestRecordPlanInsertFailure(t *testing.T) {
	d, mock := mockDB(t)
	mock.ExpectExec("INSERT INTO plans").WillReturnError(errors.New("constraint failed"))

	_, err := NewPlanRepository(d).Record(context.Background(), "s", bali())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting plan")
	assert.NoError(t, mock.ExpectationsWereMet())
}
