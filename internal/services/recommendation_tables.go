package services

import "strings"

// KeywordRule maps a set of category keywords to a value. Rules are checked in
// slice order and the first rule with a matching keyword wins.
type KeywordRule struct {
	Keywords []string
	Minutes  int
}

// DaySlot is one entry of the per-day template: take Count places from Bucket.
type DaySlot struct {
	Name   string
	Bucket string
	Count  int
}

// Bucket names used by the day template.
const (
	BucketAttractions = "attractions"
	BucketRestaurants = "restaurants"
	BucketCafes       = "cafes"
	BucketShopping    = "shopping"
	BucketCulture     = "culture"
	BucketNightlife   = "nightlife"
)

// RecommendationTables holds the static lookup data used by search, discovery
// and itinerary building. The zero value is not useful; start from
// DefaultRecommendationTables and override fields in tests.
type RecommendationTables struct {
	// PreferenceCategories maps a user preference to category keywords.
	PreferenceCategories map[string][]string

	// BaseDiscoveryQueries are suffixed to the region name for every discovery.
	BaseDiscoveryQueries []string

	// RegionQueries holds hand-tuned queries per known region.
	RegionQueries map[string][]string

	// FallbackDiscoveryQueries are used when the region is not in RegionQueries.
	FallbackDiscoveryQueries []string

	// BucketOrder fixes iteration order over BucketKeywords.
	BucketOrder    []string
	BucketKeywords map[string][]string

	DaySlots         []DaySlot
	PlacesPerDay     int
	CandidatesPerDay int

	VisitDurations       []KeywordRule
	DefaultVisitDuration int

	// Discovery quality gate.
	MinDiscoveryRating float64
	TopPerQuery        int
}

func DefaultRecommendationTables() RecommendationTables {
	return RecommendationTables{
		PreferenceCategories: map[string][]string{
			"맛집": {"음식점", "카페", "디저트", "FD6", "CE7"},
			"관광": {"관광명소", "박물관", "전시관", "AT4", "CT1"},
			"쇼핑": {"쇼핑몰", "백화점", "시장", "MT1", "CS2"},
			"자연": {"공원", "해수욕장", "산", "강", "AT4"},
			"문화": {"박물관", "미술관", "공연장", "문화재", "CT1", "AC5"},
			"체험": {"체험관", "테마파크", "스포츠", "AT4", "AD5"},
			"휴식": {"카페", "공원", "스파", "호텔", "CE7", "AT4"},
			"야경": {"전망대", "다리", "타워", "AT4"},
		},
		BaseDiscoveryQueries: []string{"맛집", "관광지", "카페", "쇼핑", "박물관", "공원", "명소", "체험"},
		RegionQueries: map[string][]string{
			"제주도": {"제주 한라산", "제주 성산일출봉", "제주 우도", "제주 중문", "제주 협재해수욕장"},
			"부산":  {"부산 해운대", "부산 광안리", "부산 감천문화마을", "부산 자갈치시장", "부산 태종대"},
			"서울":  {"서울 강남", "서울 명동", "서울 홍대", "서울 인사동", "서울 경복궁"},
			"속초":  {"속초 설악산", "속초 해수욕장", "속초 시장", "속초 케이블카", "속초 낙산사"},
			"강릉":  {"강릉 안목해변", "강릉 정동진", "강릉 오죽헌", "강릉 커피거리", "강릉 경포대"},
			"전주":  {"전주 한옥마을", "전주 비빔밥", "전주 객리단길", "전주 한지", "전주 풍남문"},
			"경주":  {"경주 불국사", "경주 석굴암", "경주 첨성대", "경주 안압지", "경주 대릉원"},
			"여수":  {"여수 밤바다", "여수 엑스포", "여수 오동도", "여수 향일암", "여수 케이블카"},
		},
		FallbackDiscoveryQueries: []string{"유명한곳", "인기장소"},
		BucketOrder: []string{
			BucketAttractions, BucketRestaurants, BucketCafes,
			BucketShopping, BucketCulture, BucketNightlife,
		},
		BucketKeywords: map[string][]string{
			BucketAttractions: {"관광", "명소", "공원", "박물관", "미술관"},
			BucketRestaurants: {"음식점", "맛집", "한식", "중식", "일식", "양식"},
			BucketCafes:       {"카페", "커피", "디저트"},
			BucketShopping:    {"쇼핑", "시장", "백화점", "마트"},
			BucketCulture:     {"문화", "전시", "공연", "역사"},
			BucketNightlife:   {"야경", "술집", "바", "클럽"},
		},
		DaySlots: []DaySlot{
			{Name: "morning", Bucket: BucketAttractions, Count: 2},
			{Name: "lunch", Bucket: BucketRestaurants, Count: 1},
			{Name: "afternoon1", Bucket: BucketCulture, Count: 1},
			{Name: "afternoon2", Bucket: BucketShopping, Count: 1},
			{Name: "coffee", Bucket: BucketCafes, Count: 1},
			{Name: "dinner", Bucket: BucketRestaurants, Count: 1},
			{Name: "evening", Bucket: BucketNightlife, Count: 1},
		},
		PlacesPerDay:     8,
		CandidatesPerDay: 12,
		VisitDurations: []KeywordRule{
			{Keywords: []string{"박물관", "미술관"}, Minutes: 90},
			{Keywords: []string{"관광", "명소", "공원"}, Minutes: 60},
			{Keywords: []string{"음식점", "맛집"}, Minutes: 90},
			{Keywords: []string{"카페", "디저트"}, Minutes: 45},
			{Keywords: []string{"쇼핑", "시장", "백화점"}, Minutes: 120},
			{Keywords: []string{"문화", "전시"}, Minutes: 75},
			{Keywords: []string{"체험", "테마파크"}, Minutes: 180},
		},
		DefaultVisitDuration: 60,
		MinDiscoveryRating:   3.5,
		TopPerQuery:          3,
	}
}

// DiscoveryQueries returns the ordered query battery for a region.
func (t RecommendationTables) DiscoveryQueries(region string) []string {
	queries := make([]string, 0, len(t.BaseDiscoveryQueries)+5)
	for _, q := range t.BaseDiscoveryQueries {
		queries = append(queries, region+" "+q)
	}
	if specific, ok := t.RegionQueries[region]; ok {
		return append(queries, specific...)
	}
	for _, q := range t.FallbackDiscoveryQueries {
		queries = append(queries, region+" "+q)
	}
	return queries
}

// VisitDuration picks minutes for a category string.
func (t RecommendationTables) VisitDuration(category string) int {
	for _, rule := range t.VisitDurations {
		if containsAny(category, rule.Keywords) {
			return rule.Minutes
		}
	}
	return t.DefaultVisitDuration
}

// BucketsFor lists the buckets whose keywords appear in category.
func (t RecommendationTables) BucketsFor(category string) []string {
	var out []string
	for _, b := range t.BucketOrder {
		if containsAny(category, t.BucketKeywords[b]) {
			out = append(out, b)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}
