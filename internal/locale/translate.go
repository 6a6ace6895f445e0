package locale

// Pick returns the text matching the request language.
// 缺少对应语言的内容时返回空字符串，不借用另一种语言。
func Pick(language, english, french string) string {
	if NormalizeLanguage(language) == LanguageFrench {
		return french
	}
	return english
}

// PickList is Pick for ordered lists such as program bullets; it never returns nil.
func PickList(language string, english, french []string) []string {
	picked := english
	if NormalizeLanguage(language) == LanguageFrench {
		picked = french
	}
	if len(picked) == 0 {
		return []string{}
	}
	return picked
}
