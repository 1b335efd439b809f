package agent

// nativeNames covers the languages the frontend ships translations for.
// Unknown codes fall back to the code itself.
var nativeNames = map[string]string{
	"ar":    "العربية",
	"cs":    "Čeština",
	"da":    "Dansk",
	"de":    "Deutsch",
	"el":    "Ελληνικά",
	"en":    "English",
	"es":    "Español",
	"fa":    "فارسی",
	"fi":    "Suomi",
	"fr":    "Français",
	"he":    "עברית",
	"hu":    "Magyar",
	"it":    "Italiano",
	"ja":    "日本語",
	"ko":    "한국어",
	"nb":    "Norsk Bokmål",
	"nl":    "Nederlands",
	"pl":    "Polski",
	"pt":    "Português",
	"pt-BR": "Português (BR)",
	"ro":    "Română",
	"ru":    "Русский",
	"sv":    "Svenska",
	"tr":    "Türkçe",
	"uk":    "Українська",
	"ur":    "اردو",
	"zh-CN": "简体中文",
	"zh-TW": "繁體中文",
}

var rtlLanguages = map[string]bool{
	"ar": true,
	"fa": true,
	"he": true,
	"ur": true,
}

func nativeName(code string) string {
	if name, ok := nativeNames[code]; ok {
		return name
	}
	return code
}

func isRTL(code string) bool {
	return rtlLanguages[code]
}
