package load

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/coursework_trucks/models"
	"github.com/LilVoxy/coursework_trucks/utils"
)

// Сумма, на которой фальшивый драйвер имитирует нарушение ограничения схемы
const poisonTotal = 13.13

// fakeStore фиксирует состояние одного фальшивого подключения:
// сколько строк зафиксировано, сколько было откатов
type fakeStore struct {
	mu            sync.Mutex
	pending       int
	committedRows int
	commits       int
	rollbacks     int
}

var (
	fakeStoresMu sync.Mutex
	fakeStores   = map[string]*fakeStore{}
)

func storeFor(dsn string) *fakeStore {
	fakeStoresMu.Lock()
	defer fakeStoresMu.Unlock()

	if fakeStores[dsn] == nil {
		fakeStores[dsn] = &fakeStore{}
	}
	return fakeStores[dsn]
}

type fakeDriver struct{}

func (d *fakeDriver) Open(dsn string) (driver.Conn, error) {
	return &fakeConn{store: storeFor(dsn)}, nil
}

type fakeConn struct {
	store *fakeStore
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return &fakeStmt{store: c.store}, nil
}

func (c *fakeConn) Close() error {
	return nil
}

func (c *fakeConn) Begin() (driver.Tx, error) {
	return &fakeTx{store: c.store}, nil
}

type fakeStmt struct {
	store *fakeStore
}

func (s *fakeStmt) Close() error {
	return nil
}

func (s *fakeStmt) NumInput() int {
	return 4
}

func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	if total, ok := args[2].(float64); ok && total == poisonTotal {
		return nil, errors.New("нарушение ограничения схемы: недопустимое значение total_price")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.pending++
	return driver.RowsAffected(1), nil
}

func (s *fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("не поддерживается")
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.committedRows += t.store.pending
	t.store.pending = 0
	t.store.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.pending = 0
	t.store.rollbacks++
	return nil
}

func init() {
	sql.Register("faketruckdb", &fakeDriver{})
}

var dsnCounter int

func openFakeDB(t *testing.T) (*sql.DB, *fakeStore) {
	t.Helper()

	dsnCounter++
	dsn := fmt.Sprintf("fake-%d", dsnCounter)

	db, err := sql.Open("faketruckdb", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, storeFor(dsn)
}

func resolvedTransaction(total float64) models.ResolvedTransaction {
	return models.ResolvedTransaction{
		CleanedTransaction: models.CleanedTransaction{
			EventAt:     time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC),
			PaymentType: "cash",
			TotalPrice:  total,
			TruckID:     1,
		},
		PaymentMethodID:       1,
		PaymentMethodResolved: true,
	}
}

func TestLoad_ZeroRowLimit(t *testing.T) {
	loader := NewTransactionLoader(nil, utils.NewETLLogger(false))

	records := []models.ResolvedTransaction{resolvedTransaction(4.99)}

	// Ошибка возвращается до какого-либо обращения к хранилищу
	_, err := loader.Load(records, 0)
	assert.ErrorIs(t, err, ErrZeroRowLimit)

	_, err = loader.Load(records, -5)
	assert.ErrorIs(t, err, ErrZeroRowLimit)
}

func TestLoad_CapRelaxedToAvailable(t *testing.T) {
	db, store := openFakeDB(t)
	loader := NewTransactionLoader(db, utils.NewETLLogger(false))

	records := []models.ResolvedTransaction{
		resolvedTransaction(4.99),
		resolvedTransaction(7.25),
		resolvedTransaction(12.50),
	}

	uploaded, err := loader.Load(records, 1_000_000)

	require.NoError(t, err)
	// Загружено и отчитано ровно доступное количество, не запрошенное
	assert.Equal(t, 3, uploaded)
	assert.Equal(t, 3, store.committedRows)
	assert.Equal(t, 1, store.commits)
}

func TestLoad_RowLimitApplied(t *testing.T) {
	db, store := openFakeDB(t)
	loader := NewTransactionLoader(db, utils.NewETLLogger(false))

	records := []models.ResolvedTransaction{
		resolvedTransaction(4.99),
		resolvedTransaction(7.25),
		resolvedTransaction(12.50),
	}

	uploaded, err := loader.Load(records, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, uploaded)
	assert.Equal(t, 2, store.committedRows)
}

func TestLoad_Atomicity(t *testing.T) {
	db, store := openFakeDB(t)
	loader := NewTransactionLoader(db, utils.NewETLLogger(false))

	// Вторая строка нарушает ограничение схемы
	records := []models.ResolvedTransaction{
		resolvedTransaction(4.99),
		resolvedTransaction(poisonTotal),
		resolvedTransaction(12.50),
	}

	_, err := loader.Load(records, 3)

	require.Error(t, err)
	// Весь пакет откатывается: ноль строк зафиксировано, не n-1
	assert.Equal(t, 0, store.committedRows)
	assert.Equal(t, 0, store.commits)
	assert.GreaterOrEqual(t, store.rollbacks, 1)
}
