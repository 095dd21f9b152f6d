package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "target").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "duplicate_key":
			return "キーが重複しています"
		case "missing_key":
			return "キーが指定されていません"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_variant":
			return "選択肢の名前が重複しています"
		case "empty_choice":
			return "選択肢がありません"
		case "unresolved_reference":
			return "参照先が見つかりません"
		case "invalid_reference":
			return "参照先の種類が不正です"
		case "invalid_enum":
			return "既定値が列挙値に含まれていません"
		case "invalid_node":
			return "ノードが不正です"
		}
	default: // "en"
		switch code {
		case "duplicate_key":
			return "duplicate key"
		case "missing_key":
			return "child has no key"
		case "unknown_key":
			return "key names no child"
		case "duplicate_variant":
			return "duplicate alternative name"
		case "empty_choice":
			return "no alternatives declared"
		case "unresolved_reference":
			return "reference target not found"
		case "invalid_reference":
			return "reference target has wrong kind"
		case "invalid_enum":
			return "default is not an enumerated value"
		case "invalid_node":
			return "invalid node"
		}
	}
	return code
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
