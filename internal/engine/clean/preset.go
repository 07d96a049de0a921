package clean

// Built-in preset names.
const (
	PresetChatGPT      = "ChatGPT Unicode Watermarks"
	PresetAllInvisible = "All Invisible Chars"
)

// Go regexp spells code points as \x{...}; the \uXXXX form used by
// other engines does not compile here.
const (
	chatGPTPattern      = `[\x{202F}\x{200B}\x{FEFF}]`
	allInvisiblePattern = `[\x{200B}\x{200C}\x{200D}\x{202F}\x{00A0}\x{2060}\x{FEFF}\x{2014}\x{2013}]`
)

// Preset returns the config for a named built-in preset. Presets fill
// only the custom pattern fields; callers layer other options on top.
func Preset(name string) (Config, bool) {
	switch name {
	case PresetChatGPT:
		return Config{Pattern: chatGPTPattern, Replacement: " "}, true
	case PresetAllInvisible:
		return Config{Pattern: allInvisiblePattern, Replacement: " "}, true
	}
	return Config{}, false
}

// PresetNames lists the built-in presets in display order.
func PresetNames() []string {
	return []string{PresetChatGPT, PresetAllInvisible}
}
