package order

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewNumber genera un número de orden ordenable en el tiempo: OC-<ULID>.
// El ULID usa entropía monótona; la unicidad definitiva la garantiza el
// constraint UNIQUE (company_id, number) en la base de datos.
func NewNumber(now time.Time) string {
	return "OC-" + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
}
