// Package i18n provides the string tables for the CLI and TUI surfaces.
package i18n

// Translator resolves UI strings for one language
type Translator struct {
	lang string
}

// New returns a translator for the given language, falling back to
// English for unknown languages.
func New(lang string) *Translator {
	if _, ok := tables[lang]; !ok {
		lang = "en"
	}
	return &Translator{lang: lang}
}

// T returns the string for key, falling back to English and then to the
// key itself
func (t *Translator) T(key string) string {
	if s, ok := tables[t.lang][key]; ok {
		return s
	}
	if s, ok := tables["en"][key]; ok {
		return s
	}
	return key
}

var tables = map[string]map[string]string{
	"en": {
		"app.title":          "Stickpad",
		"notes.all":          "All Notes",
		"notes.empty":        "No notes yet. Press 'a' to add one.",
		"notes.pinned":       "pinned",
		"notes.encrypted":    "encrypted",
		"trash.title":        "Trash",
		"trash.empty":        "Trash is empty.",
		"trash.restored":     "Note restored",
		"trash.purged":       "Note deleted permanently",
		"trash.swept":        "Expired notes cleaned from trash",
		"search.placeholder": "Search notes...",
		"input.title":        "Note title...",
		"input.tag":          "Tag name...",
		"confirm.purge":      "Delete permanently? This cannot be undone. [y/N]: ",
		"prompt.password":    "Password: ",
		"prompt.confirm":     "Confirm password: ",
		"error.password":     "passwords do not match",
		"help.quit":          "quit",
	},
	"zh": {
		"app.title":          "便签",
		"notes.all":          "全部便签",
		"notes.empty":        "还没有便签，按 'a' 新建一条。",
		"notes.pinned":       "已置顶",
		"notes.encrypted":    "已加密",
		"trash.title":        "回收站",
		"trash.empty":        "回收站是空的。",
		"trash.restored":     "便签已恢复",
		"trash.purged":       "便签已永久删除",
		"trash.swept":        "已清理过期便签",
		"search.placeholder": "搜索便签...",
		"input.title":        "便签标题...",
		"input.tag":          "标签名称...",
		"confirm.purge":      "永久删除？此操作不可恢复。[y/N]: ",
		"prompt.password":    "密码: ",
		"prompt.confirm":     "确认密码: ",
		"error.password":     "两次输入的密码不一致",
		"help.quit":          "退出",
	},
}
