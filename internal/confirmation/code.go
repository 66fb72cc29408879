package confirmation

import (
	"math/rand"
	"strconv"
)

// GenerateCode выдает новый четырехзначный код из [1000, 9999].
// Вызывается на каждую запись отдельно, общего кода по умолчанию нет.
func GenerateCode() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}
