package domain

// DefaultLocale is used whenever callers do not specify one.
const DefaultLocale = "en"

// LocalizedString maps a locale code (e.g. "en", "sw") to a display string.
// Reference entities (service groups, services, statuses, priorities) carry
// their names in this form.
type LocalizedString map[string]string

// Localized returns the value for the requested locale, falling back to the
// default locale and then to any available value.
func (l LocalizedString) Localized(locale string) string {
	if len(l) == 0 {
		return ""
	}
	if v, ok := l[locale]; ok && v != "" {
		return v
	}
	if v, ok := l[DefaultLocale]; ok && v != "" {
		return v
	}
	for _, v := range l {
		if v != "" {
			return v
		}
	}
	return ""
}
