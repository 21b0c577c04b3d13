package intent

import "strings"

// DefaultProviderLanguage is used for any language the provider does not know
const DefaultProviderLanguage = "en"

var providerLanguages = map[string]bool{
	"af": true, "al": true, "ar": true, "bg": true, "ca": true, "cz": true,
	"da": true, "de": true, "el": true, "en": true, "es": true, "eu": true,
	"fa": true, "fi": true, "fr": true, "gl": true, "he": true, "hi": true,
	"hr": true, "hu": true, "id": true, "it": true, "ja": true, "kr": true,
	"la": true, "lt": true, "mk": true, "nl": true, "no": true, "pl": true,
	"pt": true, "pt_br": true, "ro": true, "ru": true, "se": true, "sk": true,
	"sl": true, "sp": true, "sr": true, "sv": true, "th": true, "tr": true,
	"ua": true, "uk": true, "vi": true, "zh_cn": true, "zh_tw": true, "zu": true,
}

// Tags whose provider code differs from the ISO code
var providerLanguageAliases = map[string]string{
	"cs": "cz",
	"ko": "kr",
	"lv": "la",
}

// ProviderLanguage maps a device language tag such as "en-us" or "pt-BR"
// onto the provider's language code.
func ProviderLanguage(tag string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), "-", "_")
	if normalized == "" {
		return DefaultProviderLanguage
	}
	if providerLanguages[normalized] {
		return normalized
	}

	primary, region, _ := strings.Cut(normalized, "_")
	if providerLanguages[primary] {
		return primary
	}
	if providerLanguages[region] {
		return region
	}
	if alias, ok := providerLanguageAliases[primary]; ok {
		return alias
	}
	return DefaultProviderLanguage
}
