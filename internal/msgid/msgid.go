package msgid

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// Width is the fixed size of every generated message id.
const Width = 10

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator produces the per-attempt correlation id: a base-36 timestamp and
// a random tail, optionally prefixed with short station/equipment hints,
// truncated or padded to Width. Uniqueness is NOT guaranteed; the log store
// resolves duplicates most-recent-first.
type Generator interface {
	Generate(stationCode, equipmentCode string) string
}

type generator struct{}

func NewGenerator() Generator {
	return generator{}
}

func (generator) Generate(stationCode, equipmentCode string) string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	raw := hint(stationCode) + hint(equipmentCode) + timestamp + randomTail(6)
	if len(raw) > Width {
		return raw[:Width]
	}

	return raw + randomTail(Width-len(raw))
}

func hint(code string) string {
	if len(code) > 2 {
		return code[:2]
	}
	return code
}

func randomTail(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
