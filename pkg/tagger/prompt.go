package tagger

import (
	"fmt"
	"strings"

	"cardkeep/internal/models"
)

// buildPrompt embeds the draft fields into the fixed instructional prompt.
// The constraints mirror what the enrichment layer enforces afterwards: tag
// count bounds, no influence from the type field, brand/geo free association
// allowed, no generic padding tags.
func buildPrompt(d models.Draft) string {
	var b strings.Builder
	b.WriteString("あなたは個人用情報カード管理アプリのタグ付けアシスタントです。\n")
	b.WriteString("以下のカード下書きに合うタグをJSONで返してください。\n\n")
	fmt.Fprintf(&b, "タイトル: %s\n", d.Title)
	fmt.Fprintf(&b, "種別: %s\n", d.Type)
	if d.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", d.URL)
	}
	if d.Username != "" {
		fmt.Fprintf(&b, "ユーザー名: %s\n", d.Username)
	}
	if d.Note != "" {
		fmt.Fprintf(&b, "メモ: %s\n", d.Note)
	}
	b.WriteString(`
制約:
- タグは6〜10個。短い日本語または英語の単語のみ。
- 「種別」フィールドはタグ選びに影響させないこと。
- サービス名や地名からの連想タグは歓迎。ただし内容と無関係な汎用タグで埋めないこと。
- 出力は次の形式のJSONのみ。説明文やマークダウンは不要:
{"tags": ["..."], "summary": "一行の要約", "confidence": 0.0}
`)
	return b.String()
}
