package infra

import (
	"hash/fnv"
	"math"
)

// simulatedSignals derives a stable rating (3.0-5.0), review count (0-999)
// and popularity score (0-30) from a place id. Kakao and Naver local search
// expose no review data.
func simulatedSignals(id string) (rating float64, reviews int, popularity float64) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	v := h.Sum32()

	rating = math.Round((3.0+float64(v%201)/100)*10) / 10
	reviews = int((v >> 8) % 1000)
	popularity = float64((v >> 18) % 31)
	return rating, reviews, popularity
}
