package domain

// SettingTelegramChatID holds the recipient the export sink delivers to
const SettingTelegramChatID = "telegram_chat_id"

// Settings is the key-value object persisted alongside the records
type Settings map[string]string

// Get returns the value for key, or "" when unset
func (s Settings) Get(key string) string {
	if s == nil {
		return ""
	}
	return s[key]
}

// Clone returns an independent copy
func (s Settings) Clone() Settings {
	c := make(Settings, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}
