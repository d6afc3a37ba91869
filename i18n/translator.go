package i18n

import (
	"sort"
	"strings"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	return withData(t.base(code), data)
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "schema_conflict":
			return "スキーマ定義が予約名と衝突しています"
		case "unknown_field":
			return "厳格モードでは未定義のフィールドは設定できません"
		case "required_value":
			return "値の制約条件を満たしていません"
		case "type_mismatch":
			return "期待した型ではありません"
		case "unsupported_type":
			return "サポートされていない型です"
		case "out_of_range":
			return "値が範囲外です"
		case "structural_mismatch":
			return "データ構造が一致しません"
		case "serialization":
			return "シリアライズに失敗しました"
		}
	default: // "en"
		switch code {
		case "schema_conflict":
			return "schema conflicts with a reserved name"
		case "unknown_field":
			return "unknown field in strict mode"
		case "required_value":
			return "required value missing"
		case "type_mismatch":
			return "unexpected value type"
		case "unsupported_type":
			return "unsupported type"
		case "out_of_range":
			return "value out of range"
		case "structural_mismatch":
			return "structure does not match"
		case "serialization":
			return "serialization failed"
		}
	}
	return code
}

// withData appends data entries in key order, e.g. "value out of range (max=10, min=1)".
func withData(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b := &strings.Builder{}
	b.WriteString(msg)
	b.WriteString(" (")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(data[k])
	}
	b.WriteByte(')')
	return b.String()
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
