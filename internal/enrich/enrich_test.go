package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardkeep/internal/models"
)

func ctxFor(text, url string) Context {
	return Context{NormalizedText: Normalize(text), URL: url}
}

func TestNormalize(t *testing.T) {
	// Full-width ASCII folds to half-width and lowers; katakana survives.
	assert.Equal(t, "netflix 解約", Normalize("ＮＥＴＦＬＩＸ　解約"))
	assert.Equal(t, "ネットフリックス", Normalize("ネットフリックス"))
	assert.Equal(t, "abc123", Normalize("ＡｂＣ１２３"))
}

func TestContextFor_ExcludesType(t *testing.T) {
	d := models.Draft{Title: "タイトル", Type: "subscription", Note: "メモ"}
	ec := ContextFor(d)
	assert.NotContains(t, ec.NormalizedText, "subscription")
	assert.Contains(t, ec.NormalizedText, "タイトル")
	assert.Contains(t, ec.NormalizedText, "メモ")
}

func TestEnrich_SizeBoundsAlwaysHold(t *testing.T) {
	cases := []struct {
		name string
		seed []string
		text string
		url  string
	}{
		{"empty everything", nil, "", ""},
		{"short text", nil, "ab", ""},
		{"brand heavy", nil, "netflix spotify amazon dropbox github slack zoom notion", ""},
		{"long note", nil, "2024/05/01 に netflix の月額 1,490円 の支払い。東京で映画、解約は後で。", "https://www.netflix.com/account"},
		{"big seed", []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8", "i9", "j10", "k11", "l12"}, "テキスト", ""},
		{"malformed url", nil, "メモ", "http://%zz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Enrich(tc.seed, ctxFor(tc.text, tc.url), 6, 10)
			assert.GreaterOrEqual(t, len(got), 6, "floor violated")
			assert.LessOrEqual(t, len(got), 10, "ceiling violated")
		})
	}
}

func TestEnrich_Deterministic(t *testing.T) {
	seed := []string{"サブスク", "video"}
	ec := ctxFor("netflix の解約メモ 2024年", "https://netflix.com")
	first := Enrich(seed, ec, 6, 10)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Enrich(seed, ec, 6, 10))
	}
}

func TestEnrich_SeedComesFirst(t *testing.T) {
	got := Enrich([]string{"カスタム", "", "  ", "Custom"}, ctxFor("", ""), 6, 10)
	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, "カスタム", got[0])
	// ASCII seeds are case-normalized, empties dropped.
	assert.Equal(t, "custom", got[1])
}

func TestEnrich_BrandKeywords(t *testing.T) {
	got := Enrich(nil, ctxFor("spotify のプレイリスト", ""), 6, 10)
	assert.Contains(t, got, "spotify")
	assert.Contains(t, got, "音楽")
	assert.Contains(t, got, "サブスク")
}

// Scenario: a subscription cancellation draft must cover the subscription,
// video and cancellation categories.
func TestEnrich_NetflixCancellation(t *testing.T) {
	ec := ContextFor(models.Draft{Title: "Netflix 解約", Type: "subscription"})
	got := Enrich(nil, ec, 6, 10)
	assert.Contains(t, got, "サブスク")
	assert.Contains(t, got, "動画")
	assert.Contains(t, got, "解約")
}

func TestEnrich_GeoKeywords(t *testing.T) {
	got := Enrich(nil, ctxFor("大阪 出張のホテル予約", ""), 6, 10)
	assert.Contains(t, got, "大阪")
	assert.Contains(t, got, "旅行")
	assert.Contains(t, got, "関西")
}

func TestEnrich_URLTags(t *testing.T) {
	got := Enrich(nil, ctxFor("アカウント", "https://www.dropbox.com/home"), 6, 12)
	assert.Contains(t, got, "www.dropbox.com")
	assert.Contains(t, got, "dropbox")
	assert.Contains(t, got, "クラウド")
}

func TestEnrich_MalformedURLIsIgnored(t *testing.T) {
	for _, raw := range []string{"http://%zz", "::::", "not a url", "mailto:"} {
		assert.NotPanics(t, func() {
			got := Enrich(nil, ctxFor("", raw), 6, 10)
			// No URL contribution: padding alone satisfies the floor.
			assert.Equal(t, fallbackVocabulary[:6], got, "url=%q", raw)
		})
	}
}

func TestEnrich_EmptyInputPadsToMin(t *testing.T) {
	got := Enrich(nil, ctxFor("", ""), 6, 10)
	assert.Equal(t, []string{"メモ", "個人", "整理", "生活", "情報", "記録"}, got)
}

func TestEnrich_SynonymExpansionSinglePass(t *testing.T) {
	// サブスク expands to subscription and 定額; the expansion is not
	// transitive, so nothing expands further.
	got := Enrich([]string{"サブスク"}, ctxFor("", ""), 6, 20)
	assert.Contains(t, got, "subscription")
	assert.Contains(t, got, "定額")
}

func TestEnrich_LooseKeywordExtraction(t *testing.T) {
	ec := ctxFor("2024/05/01 までに 1,490円 支払う。アクオス と レグザ と ブラビア と ビエラ", "")
	got := Enrich(nil, ec, 6, 30)
	assert.Contains(t, got, "日付")
	assert.Contains(t, got, "金額")
	assert.Contains(t, got, "年")

	// At most 3 katakana runs, first in scan order.
	kata := 0
	for _, tag := range got {
		switch tag {
		case "アクオス", "レグザ", "ブラビア", "ビエラ":
			kata++
		}
	}
	assert.Equal(t, 3, kata)
	assert.NotContains(t, got, "ビエラ")
}

func TestEnrich_ASCIITokenExtraction(t *testing.T) {
	got := Enrich(nil, ctxFor("alpha beta gamma delta epsilon", ""), 6, 30)
	assert.Contains(t, got, "alpha")
	assert.Contains(t, got, "beta")
	assert.Contains(t, got, "gamma")
	assert.NotContains(t, got, "delta")
}

func TestEnrich_TruncationPreservesOrder(t *testing.T) {
	seed := []string{"one", "two", "three"}
	ec := ctxFor("netflix 解約 支払い 東京", "")
	wide := Enrich(seed, ec, 6, 30)
	narrow := Enrich(seed, ec, 6, 10)
	require.GreaterOrEqual(t, len(wide), len(narrow))
	assert.Equal(t, wide[:len(narrow)], narrow)
}

func TestDomainLabel(t *testing.T) {
	assert.Equal(t, "netflix", domainLabel("www.netflix.com"))
	assert.Equal(t, "example", domainLabel("sub.example.co.jp"))
	// Unknown suffixes fall back to the second-to-last segment.
	assert.Equal(t, "host", domainLabel("host.localdomain"))
}
