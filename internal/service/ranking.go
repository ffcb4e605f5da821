package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/dishtail/backend/internal/models"
)

// PrepMinutes reads the integer prefix of a prep time like "25 minutes".
// Leading whitespace and a sign are allowed; ok is false when no digits follow.
func PrepMinutes(prepTime string) (int, bool) {
	s := strings.TrimLeftFunc(prepTime, unicode.IsSpace)
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		n = math.MaxInt
	}
	return sign * n, true
}

func recipeLess(a, b models.Recipe) bool {
	if ta, tb := a.DietType.Tier(), b.DietType.Tier(); ta != tb {
		return ta < tb
	}
	if a.IsHealthy != b.IsHealthy {
		return a.IsHealthy
	}
	ma, okA := PrepMinutes(a.PrepTime)
	mb, okB := PrepMinutes(b.PrepTime)
	switch {
	case okA && okB:
		return ma < mb
	case okA != okB:
		// Unparsable prep times go last
		return okA
	default:
		return false
	}
}

// RankRecipes orders recipes by diet tier, then healthy first, then prep
// time ascending. The sort is stable so ties keep the model's order.
func RankRecipes(recipes []models.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipeLess(recipes[i], recipes[j])
	})
}
