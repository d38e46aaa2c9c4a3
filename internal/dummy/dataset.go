// Package dummy holds the fixed sample dataset served when API credentials
// are absent. It keeps the dashboard fully navigable in demo mode.
package dummy

import (
	"time"

	"newsinsight/internal/models"
)

// MockSummary is the canned analysis text returned by simulated analysis.
const MockSummary = "AI 분석 완료: 이 기사는 주요 이슈에 대한 심층적인 내용을 다루고 있습니다. 핵심 포인트는 현재 상황의 영향과 향후 전망입니다."

// CategoryKeywords maps each search category to the tokens that mark an
// article as belonging to it, in either Korean or English.
var CategoryKeywords = map[models.Category][]string{
	models.CategoryPolitics:   {"정치", "government", "policy", "정책"},
	models.CategoryEconomy:    {"경제", "market", "finance", "금융", "stocks", "inflation"},
	models.CategorySociety:    {"사회", "community", "social"},
	models.CategoryTechnology: {"기술", "tech", "AI", "digital", "software"},
	models.CategorySports:     {"스포츠", "sports", "game", "match"},
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// Articles returns a fresh copy of the sample set so callers can enrich
// their copy without mutating shared state. IDs are stable; articles 3 and 8
// have no summary yet so the analyze flow stays exercisable in demo mode.
func Articles() []models.Article {
	now := time.Now()

	articles := []models.Article{
		{
			ID:             1,
			Title:          "2024년 경제 전망, 전문가들의 분석 - 금리 인하 시점과 성장 동력",
			URL:            "https://example.com/markets-rally",
			Content:        "국내외 경제 전문가들은 2024년 하반기부터 점진적인 경기 회복이 시작될 것으로 전망했습니다. 특히 반도체 산업과 전기차 분야에서의 성장이 기대됩니다...",
			ImageURL:       strPtr("https://placehold.co/600x400"),
			Summary:        strPtr("전문가들은 2024년 하반기부터 점진적인 경기 회복을 예상하며, 반도체와 전기차 산업이 성장을 주도할 것으로 분석했습니다."),
			SentimentLabel: strPtr("positive"),
			SentimentScore: floatPtr(0.85),
			Keywords:       []string{"경제", "금리", "반도체", "전기차"},
			PublishedAt:    now.Add(-2 * time.Hour),
		},
		{
			ID:             2,
			Title:          "AI 기술 발전이 일상에 미치는 영향 - 생성형 AI 활용 사례 분석",
			URL:            "https://example.com/ai-medical-breakthrough",
			Content:        "인공지능 기술의 빠른 발전으로 의료, 교육, 금융 등 다양한 분야에서 혁신이 일어나고 있습니다. 특히 생성형 AI의 등장으로 업무 효율성이 크게 향상되고 있습니다...",
			Summary:        strPtr("AI 기술은 의료 진단, 교육 커리큘럼 개인화, 금융 서비스 자동화 등 다양한 분야에서 혁신을 주도하고 있습니다."),
			SentimentLabel: strPtr("positive"),
			SentimentScore: floatPtr(0.92),
			Keywords:       []string{"AI", "인공지능", "기술", "혁신"},
			PublishedAt:    now.Add(-5 * time.Hour),
		},
		{
			ID:             3,
			Title:          "글로벌 기후 변화 대응 정책 논의 - 탄소중립 달성을 위한 국제 협력",
			URL:            "https://example.com/traffic-chaos",
			Content:        "주요 국가들이 탄소중립 목표 달성을 위한 구체적인 실행 계획을 발표했습니다. 환경 전문가들은 더욱 적극적인 대응이 필요하다고 주장하고 있습니다...",
			ImageURL:       strPtr("https://placehold.co/600x400/red/white"),
			SentimentLabel: strPtr("neutral"),
			SentimentScore: floatPtr(0.05),
			Keywords:       []string{"기후변화", "탄소중립", "환경", "국제협력"},
			PublishedAt:    now.Add(-12 * time.Hour),
		},
		{
			ID:             4,
			Title:          "국내 스타트업 투자 동향 분석 - 시리즈 A 투자 규모 급감",
			URL:            "https://example.com/earnings-report",
			Content:        "올해 국내 스타트업 투자 시장은 작년 대비 크게 위축되었습니다. 특히 초기 단계 투자가 급감하면서 창업 생태계에 대한 우려가 커지고 있습니다...",
			Summary:        strPtr("2024년 국내 스타트업 투자 규모가 전년 대비 40% 감소했으며, 특히 시리즈 A 단계 투자가 크게 위축되었습니다."),
			SentimentLabel: strPtr("negative"),
			SentimentScore: floatPtr(-0.65),
			Keywords:       []string{"스타트업", "투자", "벤처캐피탈", "창업"},
			PublishedAt:    now.Add(-24 * time.Hour),
		},
		{
			ID:             5,
			Title:          "헬스케어 산업의 디지털 전환 가속화 - 원격 의료 확대",
			URL:            "https://example.com/garden-award",
			Content:        "코로나19 이후 원격 의료 서비스가 급격히 성장했습니다. 정부는 원격 의료 관련 규제를 완화하고 관련 산업 육성에 나설 계획입니다...",
			ImageURL:       strPtr("https://placehold.co/600x400/green/white"),
			Summary:        strPtr("원격 의료 시장이 빠르게 성장하고 있으며, 정부의 규제 완화로 디지털 헬스케어 산업이 더욱 활성화될 전망입니다."),
			SentimentLabel: strPtr("positive"),
			SentimentScore: floatPtr(0.78),
			Keywords:       []string{"헬스케어", "원격의료", "디지털전환", "의료"},
			PublishedAt:    now.Add(-48 * time.Hour),
		},
		{
			ID:             6,
			Title:          "부동산 시장 전망 - 주요 지역 아파트 가격 동향",
			URL:            "https://example.com/real-estate",
			Content:        "수도권 주요 지역의 아파트 매매가가 하락세를 보이고 있습니다. 전문가들은 금리 인상과 경기 침체 영향으로 당분간 하락세가 지속될 것으로 전망합니다...",
			Summary:        strPtr("수도권 아파트 가격이 하락세를 보이며, 금리 인상 영향으로 당분간 조정 국면이 이어질 전망입니다."),
			SentimentLabel: strPtr("negative"),
			SentimentScore: floatPtr(-0.45),
			Keywords:       []string{"부동산", "아파트", "금리", "시장"},
			PublishedAt:    now.Add(-6 * time.Hour),
		},
		{
			ID:             7,
			Title:          "반도체 수출 회복세 - 메모리 반도체 가격 상승",
			URL:            "https://example.com/semiconductor",
			Content:        "글로벌 메모리 반도체 가격이 바닥을 찍고 반등하고 있습니다. 국내 반도체 기업들의 실적 개선이 기대됩니다...",
			Summary:        strPtr("메모리 반도체 가격이 회복세를 보이면서 국내 반도체 기업들의 실적 개선이 예상됩니다."),
			SentimentLabel: strPtr("positive"),
			SentimentScore: floatPtr(0.72),
			Keywords:       []string{"반도체", "메모리", "수출", "기업"},
			PublishedAt:    now.Add(-8 * time.Hour),
		},
		{
			ID:             8,
			Title:          "여야 예산안 협상 난항 - 국회 본회의 처리 불투명",
			URL:            "https://example.com/politics",
			Content:        "여야간 예산안 협상이 난항을 겪고 있습니다. 야당은 민생 관련 예산 증액을 요구하고 있으며, 정부여당은 재정 건전성을 강조하고 있습니다...",
			SentimentLabel: strPtr("negative"),
			SentimentScore: floatPtr(-0.55),
			Keywords:       []string{"정치", "예산", "국회", "협상"},
			PublishedAt:    now.Add(-3 * time.Hour),
		},
	}

	for i := range articles {
		articles[i].CreatedAt = now
	}

	return articles
}
