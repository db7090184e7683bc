package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/trafficwatch/core/classify"
)

func TestCatalog(t *testing.T) {
	assert.Equal(t, []string{"en", "ru"}, Locales())

	ru, err := Catalog("ru")
	require.NoError(t, err)
	assert.Equal(t, "Выход из программы", ru.Exit)
	assert.Equal(t, "Трафик ниже нормы", ru.Verdict(classify.Below))
	assert.Equal(t, "Трафик в норме", ru.Verdict(classify.Normal))
	assert.Equal(t, "Трафик выше нормы", ru.Verdict(classify.Above))

	_, err = Catalog("fr")
	assert.Error(t, err)
}

func TestCatalogsComplete(t *testing.T) {
	for _, loc := range Locales() {
		m, err := Catalog(loc)
		require.NoError(t, err)
		for name, s := range map[string]string{
			"prompt":    m.Prompt,
			"exit":      m.Exit,
			"retry":     m.Retry,
			"predicted": m.Predicted,
			"below":     m.Below,
			"normal":    m.Normal,
			"above":     m.Above,
		} {
			assert.NotEmpty(t, s, "%s/%s", loc, name)
		}
		assert.Contains(t, m.Predicted, "%.2f", loc)
	}
}
