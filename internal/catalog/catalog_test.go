package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	list := List()
	ids := make([]string, len(list))
	for i, tpl := range list {
		ids[i] = tpl.ID
	}

	assert.Equal(t, []string{
		"shopee_mercado_livre",
		"amazon_style",
		"redes_sociais",
		"seo_otimizado",
		"copy_persuasivo",
		"luxo_premium",
	}, ids)

	t.Run("returns a copy", func(t *testing.T) {
		list[0].Name = "changed"
		assert.Equal(t, "Shopee/Mercado Livre", List()[0].Name)
	})
}

func TestLookup(t *testing.T) {
	t.Run("known template", func(t *testing.T) {
		instr := Lookup("amazon_style")
		assert.Contains(t, instr, "Características Principais")
	})

	t.Run("unknown template yields empty block", func(t *testing.T) {
		assert.Equal(t, "", Lookup("does_not_exist"))
		assert.Equal(t, "", Lookup(""))
	})
}

func TestName(t *testing.T) {
	assert.Equal(t, "Luxo/Premium", Name("luxo_premium"))
	assert.Equal(t, DefaultName, Name("nope"))
}

func TestExists(t *testing.T) {
	assert.True(t, Exists("seo_otimizado"))
	assert.False(t, Exists("SEO_OTIMIZADO"))
}
