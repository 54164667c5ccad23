package enrich

import "regexp"

// The lookup tables below are fixed for the process lifetime. They are plain
// ordered slices, not maps, because enrichment order determines which tags
// survive the final truncation and must stay deterministic.

type brandEntry struct {
	key  string // substring matched against normalized text and URL hostnames
	tags []string
}

var brandTable = []brandEntry{
	{"netflix", []string{"netflix", "動画", "サブスク", "エンタメ"}},
	{"hulu", []string{"hulu", "動画", "サブスク"}},
	{"dazn", []string{"dazn", "動画", "スポーツ"}},
	{"youtube", []string{"youtube", "動画"}},
	{"spotify", []string{"spotify", "音楽", "サブスク"}},
	{"prime", []string{"prime", "動画", "サブスク"}},
	{"amazon", []string{"amazon", "買い物", "ec"}},
	{"kindle", []string{"kindle", "読書", "電子書籍"}},
	{"楽天", []string{"楽天", "買い物", "ec"}},
	{"メルカリ", []string{"メルカリ", "フリマ", "買い物"}},
	{"paypay", []string{"paypay", "決済", "支払い"}},
	{"dropbox", []string{"dropbox", "クラウド", "ストレージ"}},
	{"icloud", []string{"icloud", "クラウド", "ストレージ"}},
	{"google", []string{"google", "クラウド"}},
	{"notion", []string{"notion", "メモ", "仕事"}},
	{"slack", []string{"slack", "チャット", "仕事"}},
	{"zoom", []string{"zoom", "会議", "仕事"}},
	{"github", []string{"github", "開発", "仕事"}},
	{"adobe", []string{"adobe", "デザイン", "サブスク"}},
	{"apple", []string{"apple", "サブスク"}},
}

type keywordPattern struct {
	re   *regexp.Regexp
	tags []string
}

var keywordPatterns = []keywordPattern{
	{regexp.MustCompile(`支払い?|請求|billing|payment`), []string{"支払い", "お金"}},
	{regexp.MustCompile(`購入|買った|注文|purchase|order`), []string{"買い物"}},
	{regexp.MustCompile(`解約|退会|キャンセル|cancel`), []string{"解約", "手続き"}},
	{regexp.MustCompile(`サブスク|定期|月額|年額|更新|subscription|renewal`), []string{"サブスク", "定期"}},
	{regexp.MustCompile(`締め?切り?|期限|やること|タスク|deadline|todo|task`), []string{"タスク", "期限"}},
	{regexp.MustCompile(`アカウント|ログイン|パスワード|認証|account|login|password|auth`), []string{"アカウント", "ログイン"}},
	{regexp.MustCompile(`問い?合わせ|サポート|窓口|contact|support`), []string{"サポート", "連絡"}},
	{regexp.MustCompile(`動画|映画|映像|配信|video|movie|stream`), []string{"動画", "エンタメ"}},
	{regexp.MustCompile(`音楽|曲|オーディオ|music|audio`), []string{"音楽", "エンタメ"}},
}

var geoPatterns = []keywordPattern{
	{regexp.MustCompile(`東京|tokyo`), []string{"東京", "旅行", "関東"}},
	{regexp.MustCompile(`大阪|osaka`), []string{"大阪", "旅行", "関西"}},
	{regexp.MustCompile(`京都|kyoto`), []string{"京都", "旅行", "関西"}},
	{regexp.MustCompile(`名古屋|nagoya`), []string{"名古屋", "旅行", "中部"}},
	{regexp.MustCompile(`札幌|sapporo`), []string{"札幌", "旅行", "北海道"}},
	{regexp.MustCompile(`福岡|fukuoka`), []string{"福岡", "旅行", "九州"}},
	{regexp.MustCompile(`沖縄|okinawa`), []string{"沖縄", "旅行", "観光"}},
}

// synonymTable is consulted once per tag in a single pass; expansion is not
// transitive, so a synonym never pulls in its own synonyms.
var synonymTable = map[string][]string{
	"サブスク":  {"subscription", "定額"},
	"動画":    {"video"},
	"音楽":    {"music"},
	"買い物":   {"shopping"},
	"タスク":   {"todo"},
	"アカウント": {"account"},
	"支払い":   {"payment"},
	"解約":    {"cancel"},
	"旅行":    {"travel"},
	"クラウド":  {"cloud"},
	"仕事":    {"work"},
	"メモ":    {"memo"},
}

// fallbackVocabulary pads results that are still under the minimum after all
// scans. Stable order; padding stops as soon as the floor is met.
var fallbackVocabulary = []string{
	"メモ", "個人", "整理", "生活", "情報", "記録",
	"管理", "便利", "重要", "日常", "チェック", "保存",
}

// Loose keyword extraction patterns (step 7).
var (
	dateRe  = regexp.MustCompile(`\d{1,4}[/年.-]\d{1,2}(?:[/月.-]\d{1,2}日?)?`)
	// NFKC already folds full-width ￥ (U+FFE5) to ¥, so only the
	// half-width sign is matched here.
	moneyRe = regexp.MustCompile(`[¥$]\s?\d[\d,]*|\d[\d,]*\s*円`)
	yearRe  = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	kataRe  = regexp.MustCompile(`[ァ-ヶー]{2,10}`)
	asciiRe = regexp.MustCompile(`\b[a-z0-9]{2,20}\b`)
)
