package load

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LilVoxy/coursework_trucks/models"
	"github.com/LilVoxy/coursework_trucks/utils"
)

// ErrZeroRowLimit возвращается, когда вызывающий код запрашивает загрузку
// нулевого или отрицательного количества строк: это ошибка вызывающего
// кода, а не пустой успех
var ErrZeroRowLimit = errors.New("недопустимое количество строк для загрузки: значение должно быть положительным")

// Формат метки времени для колонки event_at
const eventAtLayout = "2006-01-02 15:04:05"

// TransactionLoader отвечает за загрузку транзакций в таблицу фактов
type TransactionLoader struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewTransactionLoader создает новый экземпляр TransactionLoader
func NewTransactionLoader(db *sql.DB, logger *utils.ETLLogger) *TransactionLoader {
	return &TransactionLoader{
		db:     db,
		logger: logger,
	}
}

// Load загружает транзакции в таблицу фактов одной транзакцией базы данных:
// либо фиксируются все строки пакета, либо ни одной. Если maxRows превышает
// количество доступных строк, загружаются все доступные. Повторные попытки
// не выполняются — политика перезапуска принадлежит вызывающему коду,
// чтобы сбой окна можно было разобрать и перезапустить точно
func (l *TransactionLoader) Load(records []models.ResolvedTransaction, maxRows int) (int, error) {
	if maxRows <= 0 {
		return 0, ErrZeroRowLimit
	}

	if maxRows > len(records) {
		maxRows = len(records)
	}
	batch := records[:maxRows]

	startTime := time.Now()
	l.logger.Info("Начало фазы Load (всего строк к загрузке: %d)", len(batch))

	// Начинаем транзакцию
	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	// Подготавливаем запрос для вставки фактов транзакций
	stmt, err := tx.Prepare(`
		INSERT INTO FACT_Transaction
		(event_at, payment_method_id, total_price, truck_id)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	for _, record := range batch {
		// Ненайденный способ оплаты передается исходным текстом —
		// решение о его допустимости остается за схемой хранилища
		var paymentMethod interface{} = record.PaymentMethodID
		if !record.PaymentMethodResolved {
			paymentMethod = record.PaymentType
		}

		_, err := stmt.Exec(
			record.EventAt.Format(eventAtLayout),
			paymentMethod,
			record.TotalPrice,
			record.TruckID,
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("ошибка при вставке строки транзакции (грузовик %d): %w", record.TruckID, err)
		}
	}

	// Фиксируем весь пакет одной транзакцией
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	duration := time.Since(startTime)
	l.logger.Info("Успешно загружено %d строк транзакций в базу данных. Длительность: %v", len(batch), duration)

	return len(batch), nil
}
