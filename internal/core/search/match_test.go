package search

import "testing"

func TestApproxMatch(t *testing.T) {
	tests := []struct {
		name      string
		a         string
		b         string
		threshold int
		want      bool
	}{
		{"完全相同", "tomato", "tomato", 80, true},
		{"大小寫不同", "Egg", "egg", 80, true},
		{"相同字串在最高門檻仍命中", "Egg", "egg", 100, true},
		{"子字串包含", "egg", "egg yolk, beaten", 80, true},
		{"拼寫漂移", "tomatoe", "tomato", 80, true},
		{"反向拼寫漂移", "tomato", "tomatoe", 80, true},
		{"無關字串", "garlic", "xylophone", 80, false},
		{"空查詢", "", "tomato", 80, false},
		{"空目標", "tomato", "", 80, false},
		{"門檻為嚴格大於", "tomatoe", "tomato", 100, false},
		{"包含比對不受門檻影響", "egg", "scrambled eggs", 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApproxMatch(tt.a, tt.b, tt.threshold); got != tt.want {
				t.Errorf("ApproxMatch(%q, %q, %d) = %v，期望 %v", tt.a, tt.b, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestMatchIngredients(t *testing.T) {
	tests := []struct {
		name    string
		query   []string
		recipe  []string
		want    int
	}{
		{
			name:   "全部命中",
			query:  []string{"tomato", "onion"},
			recipe: []string{"tomato", "onion", "garlic"},
			want:   2,
		},
		{
			name:   "拼寫漂移命中",
			query:  []string{"tomatoe", "onion"},
			recipe: []string{"tomato", "onion", "garlic", "butter"},
			want:   2,
		},
		{
			name:   "同義詞展開命中",
			query:  []string{"scallion"},
			recipe: []string{"green onions", "flour"},
			want:   1,
		},
		{
			name:   "食譜食材保留原始大小寫仍可命中",
			query:  []string{"egg"},
			recipe: []string{"Egg Yolk"},
			want:   1,
		},
		{
			name:   "同一食譜食材不重複計數",
			query:  []string{"egg", "eggs"},
			recipe: []string{"egg yolk"},
			want:   1,
		},
		{
			name:   "相同字串的食譜食材收斂為一",
			query:  []string{"egg"},
			recipe: []string{"egg", "egg"},
			want:   1,
		},
		{
			name:   "無命中",
			query:  []string{"xylophone"},
			recipe: []string{"tomato", "onion"},
			want:   0,
		},
		{
			name:   "空查詢",
			query:  nil,
			recipe: []string{"tomato"},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchIngredients(tt.query, tt.recipe, 80); got != tt.want {
				t.Errorf("MatchIngredients(%v, %v) = %d，期望 %d", tt.query, tt.recipe, got, tt.want)
			}
		})
	}
}
