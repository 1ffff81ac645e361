package models

import (
	"time"
)

// TruckFile представляет один скачанный файл выгрузки с кассы грузовика
type TruckFile struct {
	Filename string
	TruckID  int
	Records  []TransactionRecord
}

// TransactionRecord представляет одну сырую строку транзакции до очистки.
// Все значения хранятся как строки, потому что выгрузки с касс регулярно
// содержат мусор в колонке total и нестандартные метки времени
type TransactionRecord struct {
	Timestamp   string
	PaymentType string
	Total       string
	TruckID     int
}

// CleanedTransaction представляет строку транзакции после очистки
// и приведения типов
type CleanedTransaction struct {
	EventAt     time.Time
	PaymentType string
	TotalPrice  float64
	TruckID     int
}

// ResolvedTransaction представляет очищенную транзакцию после подстановки
// идентификатора способа оплаты из справочной таблицы.
// PaymentMethodResolved равен false, если способ оплаты не найден в
// справочнике — в этом случае загрузчик передает исходный текст
type ResolvedTransaction struct {
	CleanedTransaction

	PaymentMethodID       int
	PaymentMethodResolved bool
}

// DropStats содержит счетчики строк, отброшенных на каждом этапе очистки
type DropStats struct {
	RowsRead       int
	InvalidTotal   int
	ExtremeDropped int
	CoercionFailed int
}

// TotalDropped возвращает общее количество отброшенных строк
func (s DropStats) TotalDropped() int {
	return s.InvalidTotal + s.ExtremeDropped + s.CoercionFailed
}

// RowsKept возвращает количество строк, прошедших все этапы очистки
func (s DropStats) RowsKept() int {
	return s.RowsRead - s.TotalDropped()
}
