package search

import "strings"

// synonymTable 固定的食材詞彙知識庫
// 每個詞對應其所有同義表面形式的聯集（不做語義消歧）。
// 多字詞同義詞保留為單一 token，交由包含比對處理。
var synonymTable = map[string][]string{
	// 蔥蒜類
	"scallion":  {"green onion", "spring onion"},
	"scallions": {"green onions", "spring onions"},
	"shallot":   {"eschalot"},
	"garlic":    {"garlic clove"},

	// 香菜
	"cilantro":  {"coriander", "chinese parsley"},
	"coriander": {"cilantro"},

	// 茄果瓜類
	"eggplant":  {"aubergine", "brinjal"},
	"aubergine": {"eggplant"},
	"zucchini":  {"courgette"},
	"courgette": {"zucchini"},
	"capsicum":  {"bell pepper", "sweet pepper"},
	"chili":     {"chilli", "chile", "hot pepper"},
	"chilli":    {"chili", "chile"},

	// 豆類
	"chickpea":  {"garbanzo", "garbanzo bean"},
	"chickpeas": {"garbanzos", "garbanzo beans"},
	"garbanzo":  {"chickpea"},
	"soy":       {"soya"},
	"soya":      {"soy"},

	// 根莖葉菜
	"beet":     {"beetroot"},
	"beetroot": {"beet"},
	"arugula":  {"rocket", "rucola"},
	"rocket":   {"arugula"},
	"rutabaga": {"swede"},
	"swede":    {"rutabaga"},

	// 玉米與澱粉
	"corn":       {"maize", "sweetcorn"},
	"maize":      {"corn"},
	"cornstarch": {"cornflour", "corn starch"},
	"cornflour":  {"cornstarch"},

	// 海鮮與肉
	"shrimp": {"prawn", "prawns"},
	"prawn":  {"shrimp"},
	"prawns": {"shrimp"},
	"ground": {"minced"},
	"minced": {"ground"},

	// 高湯與乳製品
	"stock":   {"broth"},
	"broth":   {"stock"},
	"yogurt":  {"yoghurt", "curd"},
	"yoghurt": {"yogurt"},

	// 調味
	"ketchup": {"catsup"},
	"catsup":  {"ketchup"},
	"icing":   {"frosting"},
	"frosting": {"icing"},
}

// ExpandWord 查詢一個詞的同義詞集合
// 未知的詞回傳空集合而非錯誤：查無資料是合法結果。
func ExpandWord(word string) []string {
	variants, ok := synonymTable[strings.ToLower(word)]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(variants))
	for _, v := range variants {
		out = append(out, strings.ToLower(v))
	}
	return out
}
