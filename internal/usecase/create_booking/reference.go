package create_booking

import (
	"crypto/rand"
	"fmt"
	"time"
)

// referenceCharset алфавит случайной части номера бронирования
// Исключены визуально похожие символы: 0/O, 1/I/L
const referenceCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// referenceRandomLength длина случайной части номера
const referenceRandomLength = 6

// maxReferenceAttempts число попыток генерации при коллизии номера
const maxReferenceAttempts = 5

// generateReference генерирует внешний номер бронирования вида "FB-20260831-X7K2QD"
// Случайная часть берется из crypto/rand, уникальность гарантирует
// уникальный индекс в БД: при коллизии вызывающая сторона генерирует новый номер
func generateReference(date time.Time) (string, error) {
	buf := make([]byte, referenceRandomLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = referenceCharset[int(b)%len(referenceCharset)]
	}

	return fmt.Sprintf("FB-%s-%s", date.Format("20060102"), string(buf)), nil
}
