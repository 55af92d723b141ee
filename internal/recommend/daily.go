package recommend

import (
	"fmt"

	"github.com/mmcdole/cinepick/internal/domain"
)

const (
	dailyRating     = 8.0
	dailyPopularity = 800.0
)

// DailyReason is the reason line for the daily pick when there is no
// profile to explain against. It looks at the title alone.
func DailyReason(t domain.Title) string {
	switch {
	case t.VoteAverage >= dailyRating:
		return "평점과 반응이 좋아 오늘 한 편으로 골랐어요."
	case t.Popularity >= dailyPopularity:
		return "지금 가장 많이 보는 흐름이라 먼저 추천해요."
	case t.ReleaseYear() > 0:
		return fmt.Sprintf("%d년 작품 중 요즘 다시 자주 언급되는 편이에요.", t.ReleaseYear())
	default:
		return "오늘 분위기에 부담 없이 보기 좋은 한 편이에요."
	}
}
