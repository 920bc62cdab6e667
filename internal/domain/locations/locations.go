// Package locations suggests city names for post origins and destinations.
package locations

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

const (
	DefaultLimit     = 8
	defaultCacheSize = 512
)

var DefaultCities = []string{
	"Agra", "Ahmedabad", "Ajmer", "Allahabad", "Amritsar", "Aurangabad", "Bengaluru", "Bhopal",
	"Bhubaneswar", "Chandigarh", "Chennai", "Coimbatore", "Cuttack", "Dehradun", "Delhi",
	"Dhanbad", "Faridabad", "Gandhinagar", "Ghaziabad", "Goa", "Gurugram", "Guwahati", "Gwalior",
	"Hubli", "Hyderabad", "Indore", "Jabalpur", "Jaipur", "Jalandhar", "Jammu", "Jamshedpur",
	"Jodhpur", "Kanpur", "Kochi", "Kolkata", "Kota", "Kozhikode", "Lucknow", "Ludhiana",
	"Madurai", "Mangaluru", "Meerut", "Mumbai", "Mysuru", "Nagpur", "Nashik", "Noida", "Patna",
	"Puducherry", "Pune", "Raipur", "Rajkot", "Ranchi", "Shillong", "Shimla", "Srinagar", "Surat",
	"Thane", "Thiruvananthapuram", "Tiruchirappalli", "Udaipur", "Vadodara", "Varanasi",
	"Vijayawada", "Visakhapatnam",
}

type cities []string

func (c cities) String(i int) string { return strings.ToLower(c[i]) }

func (c cities) Len() int { return len(c) }

type Service struct {
	cities cities
	cache  *lru.Cache
}

func NewService(list []string, cacheSize int) *Service {
	if len(list) == 0 {
		list = DefaultCities
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New(cacheSize)
	return &Service{cities: cities(list), cache: cache}
}

// Suggest returns up to limit cities matching query, best match first.
func (s *Service) Suggest(query string, limit int) []string {
	query = strings.ToLower(strings.Join(strings.Fields(query), " "))
	if query == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var matches []string
	if v, ok := s.cache.Get(query); ok {
		matches = v.([]string)
	} else {
		found := fuzzy.FindFrom(query, s.cities)
		matches = make([]string, len(found))
		for i, m := range found {
			matches[i] = s.cities[m.Index]
		}
		s.cache.Add(query, matches)
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	copy(out, matches)
	return out
}
