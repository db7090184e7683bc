package app

import (
	"fmt"
	"sort"

	"github.com/kilianp07/trafficwatch/core/classify"
)

// Messages holds the console text of an interactive session.
type Messages struct {
	Prompt string
	Exit   string
	Retry  string
	// Predicted is a format string receiving the predicted value.
	Predicted string
	Below     string
	Normal    string
	Above     string
}

// Verdict returns the message for a classification level.
func (m Messages) Verdict(l classify.Level) string {
	switch l {
	case classify.Below:
		return m.Below
	case classify.Above:
		return m.Above
	default:
		return m.Normal
	}
}

var catalogs = map[string]Messages{
	"en": {
		Prompt:    `Enter data as "10.01.2021 18:15 Cisco 5300, port1  708.117", or an empty line to exit:`,
		Exit:      "Exiting",
		Retry:     "Could not read the input, try again",
		Predicted: "Predicted - %.2f",
		Below:     "Traffic below normal",
		Normal:    "Traffic normal",
		Above:     "Traffic above normal",
	},
	"ru": {
		Prompt:    `Вводите данные в формате "10.01.2021 18:15 Cisco 5300, port1  708.117", или пустую строку для выхода:`,
		Exit:      "Выход из программы",
		Retry:     "Не удалось ввести данные, попробуйте снова",
		Predicted: "Предполагаемый - %.2f",
		Below:     "Трафик ниже нормы",
		Normal:    "Трафик в норме",
		Above:     "Трафик выше нормы",
	},
}

// Catalog returns the messages for locale.
func Catalog(locale string) (Messages, error) {
	m, ok := catalogs[locale]
	if !ok {
		return Messages{}, fmt.Errorf("no messages for locale %q (known: %v)", locale, Locales())
	}
	return m, nil
}

// Locales lists the available catalogs.
func Locales() []string {
	out := make([]string, 0, len(catalogs))
	for k := range catalogs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
