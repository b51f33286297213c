package mapfeatures

import (
	"context"
	"errors"
	"testing"

	"osm-linker/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB speaking the mysql dialect.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestStore_InstancesQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM [`]?olmap_gate[`]? WHERE image_note_id IN \\(SELECT [`]?id[`]? FROM [`]?olmap_osmimagenote[`]? WHERE processed_by_id IS NOT NULL\\) AND osm_feature_id IS NULL").
		WillReturnError(errors.New("connection reset"))

	_, err := store.Instances(context.Background(), "gate", true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query olmap_gate")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InstancesLoadsNotes(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM [`]?olmap_barrier[`]? WHERE image_note_id IN .*ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "image_note_id", "osm_feature_id", "type"}).
			AddRow(1, 100, nil, "bollard").
			AddRow(2, 999, nil, "wall"))
	mock.ExpectQuery("SELECT \\* FROM [`]?olmap_osmimagenote[`]? WHERE id IN \\(\\?,\\?\\)").
		WithArgs(100, 999).
		WillReturnRows(sqlmock.NewRows([]string{"id", "lat", "lon", "processed_by_id"}).
			AddRow(100, 60.17, 24.95, 1))

	got, err := store.Instances(context.Background(), "barrier", false)

	require.NoError(t, err)
	// Rows whose note vanished between the two reads are dropped.
	require.Len(t, got, 1)
	assert.Equal(t, "bollard", got[0].Tags["barrier"])
	assert.Equal(t, 60.17, got[0].Position.Lat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LinkAddressIgnoresDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO [`]?olmap_osmimagenote_addresses[`]? .*ON DUPLICATE KEY UPDATE").
		WithArgs(100, 31).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	added, err := store.LinkAddress(context.Background(), reconcile.Instance{ID: 1, Type: "workplace", NoteID: 100}, 31)

	require.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LinkOSMKeepsExistingLink(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO [`]?olmap_osmfeature[`]? .*ON DUPLICATE KEY UPDATE").
		WithArgs(555).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE [`]?olmap_entrance[`]? SET [`]?osm_feature_id[`]?=\\? WHERE id = \\? AND osm_feature_id IS NULL").
		WithArgs(555, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	added, err := store.LinkOSM(context.Background(), reconcile.Instance{ID: 1, Type: "entrance", NoteID: 100}, 555)

	require.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LinkOSMRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO [`]?olmap_osmfeature[`]?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE [`]?olmap_entrance[`]?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO [`]?olmap_osmimagenote_osm_features[`]?").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	added, err := store.LinkOSM(context.Background(), reconcile.Instance{ID: 1, Type: "entrance", NoteID: 100}, 555)

	require.Error(t, err)
	assert.False(t, added)
	assert.Contains(t, err.Error(), "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}
