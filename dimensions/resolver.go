package dimensions

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_trucks/models"
	"github.com/LilVoxy/coursework_trucks/utils"
)

// PaymentMethodMapping отображает название способа оплаты в его
// идентификатор из справочной таблицы
type PaymentMethodMapping map[string]int

// Lookup возвращает идентификатор способа оплаты. Второе значение равно
// false, если способ оплаты отсутствует в справочнике — вызывающий код
// обязан обработать этот случай явно
func (m PaymentMethodMapping) Lookup(name string) (int, bool) {
	id, ok := m[name]
	return id, ok
}

// TruckRatingMapping отображает номер грузовика в его рейтинг FSA
type TruckRatingMapping map[int]int

// RatingFor возвращает рейтинг грузовика. Для грузовика, отсутствующего
// в справочнике, возвращается 0 — "рейтинг неизвестен". Новые грузовики
// подключаются между обновлениями справочных таблиц, поэтому это
// не ошибка пайплайна
func (m TruckRatingMapping) RatingFor(truckID int) int {
	return m[truckID]
}

// Resolver загружает справочные таблицы и строит отображения для подстановки.
// Справочники маленькие и читаются целиком один раз за запуск пайплайна
type Resolver struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(db *sql.DB, logger *utils.ETLLogger) *Resolver {
	return &Resolver{
		db:     db,
		logger: logger,
	}
}

// LoadPaymentMethods читает справочник способов оплаты целиком
func (r *Resolver) LoadPaymentMethods() (PaymentMethodMapping, error) {
	rows, err := r.db.Query(`SELECT payment_method_id, payment_method FROM DIM_Payment_Method;`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении справочника способов оплаты: %w", err)
	}
	defer rows.Close()

	mapping := make(PaymentMethodMapping)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании справочника способов оплаты: %w", err)
		}
		mapping[name] = id
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по справочнику способов оплаты: %w", err)
	}

	r.logger.Debug("Загружен справочник способов оплаты: %d записей", len(mapping))
	return mapping, nil
}

// LoadTruckRatings читает справочник грузовиков целиком
func (r *Resolver) LoadTruckRatings() (TruckRatingMapping, error) {
	rows, err := r.db.Query(`SELECT truck_id, fsa_rating FROM DIM_Truck;`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении справочника грузовиков: %w", err)
	}
	defer rows.Close()

	mapping := make(TruckRatingMapping)
	for rows.Next() {
		var truckID, rating int
		if err := rows.Scan(&truckID, &rating); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании справочника грузовиков: %w", err)
		}
		mapping[truckID] = rating
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по справочнику грузовиков: %w", err)
	}

	r.logger.Debug("Загружен справочник грузовиков: %d записей", len(mapping))
	return mapping, nil
}

// ResolvePaymentMethods подставляет идентификаторы способов оплаты в
// очищенные транзакции. Ненайденные способы оплаты проходят дальше с
// исходным текстом; возвращается количество таких строк
func ResolvePaymentMethods(records []models.CleanedTransaction, mapping PaymentMethodMapping) ([]models.ResolvedTransaction, int) {
	resolved := make([]models.ResolvedTransaction, 0, len(records))
	unmapped := 0

	for _, record := range records {
		id, ok := mapping.Lookup(record.PaymentType)
		if !ok {
			unmapped++
		}

		resolved = append(resolved, models.ResolvedTransaction{
			CleanedTransaction:    record,
			PaymentMethodID:       id,
			PaymentMethodResolved: ok,
		})
	}

	return resolved, unmapped
}

// CountUnknownRatings возвращает количество грузовиков окна,
// отсутствующих в справочнике рейтингов
func CountUnknownRatings(records []models.CleanedTransaction, ratings TruckRatingMapping) int {
	seen := make(map[int]bool)
	unknown := 0

	for _, record := range records {
		if seen[record.TruckID] {
			continue
		}
		seen[record.TruckID] = true

		if _, ok := ratings[record.TruckID]; !ok {
			unknown++
		}
	}

	return unknown
}
