// Package catalog holds the static registry of description style templates.
package catalog

// DefaultName is shown for template ids that are not in the catalog.
const DefaultName = "Padrão"

// Template is a named bundle of style instructions merged into the prompt.
type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

// templates is kept in presentation order.
var templates = []Template{
	{
		ID:          "shopee_mercado_livre",
		Name:        "Shopee/Mercado Livre",
		Description: "Otimizado para marketplaces brasileiros",
		Instructions: `- Formato compacto e direto
- Use emojis atraentes (⭐🔥💎✨)
- Destaque frete grátis e promoções
- Incluir medidas em cm e kg
- Chamar atenção para avaliações
- Formato: Título + Bullet Points + Especificações
- Incluir: "Envio imediato" e "Compra segura"`,
	},
	{
		ID:          "amazon_style",
		Name:        "Estilo Amazon",
		Description: "Formato profissional estilo Amazon",
		Instructions: `- Estrutura formal e detalhada
- Título técnico e descritivo
- Seção "Características Principais"
- Seção "Especificações Técnicas" em tabela
- Seção "O que está incluído na caixa"
- Foco em benefícios e diferenciais
- Incluir FAQ breve
- Tom profissional e confiável`,
	},
	{
		ID:          "redes_sociais",
		Name:        "Redes Sociais",
		Description: "Descrição para Instagram/Facebook",
		Instructions: `- Tom descontraído e conversacional
- Use emojis criativos e relevantes
- Incluir perguntas para engajamento
- Formato: Capa + Descrição + Hashtags
- Destaque ofertas exclusivas
- Incluir call-to-action claro
- Usar linhas em branco para separação
- Hashtags estratégicas no final`,
	},
	{
		ID:          "seo_otimizado",
		Name:        "SEO Otimizado",
		Description: "Foco máximo em SEO",
		Instructions: `- Palavra-chave no início do título
- Repetir palavra-chave naturalmente (2-3%)
- Estrutura H1, H2, H3 implícita
- Texto com 300+ palavras
- Meta-descrição otimizada
- URLs amigáveis sugeridas
- Schema markup sugerido
- Foco em autoridade e confiança`,
	},
	{
		ID:          "copy_persuasivo",
		Name:        "Copy Persuasivo",
		Description: "Foco em vendas e conversão",
		Instructions: `- Copywriting de alta conversão
- Gatilhos mentais (urgência, escassez)
- História emocional do produto
- Testemunhos e prova social
- Garantia estendida
- Oferta irrecusável
- Call-to-action forte
- Remoção de objeções`,
	},
	{
		ID:          "luxo_premium",
		Name:        "Luxo/Premium",
		Description: "Produtos de alto valor",
		Instructions: `- Tom sofisticado e exclusivo
- Destaque materiais premium
- História da marca
- Artesanato/processo especial
- Certificações e selos
- Embalagem de luxo
- Experiência do cliente
- Exclusividade e limite`,
	},
}

var byID = func() map[string]int {
	m := make(map[string]int, len(templates))
	for i, t := range templates {
		m[t.ID] = i
	}
	return m
}()

// Get returns the template registered under id.
func Get(id string) (Template, bool) {
	i, ok := byID[id]
	if !ok {
		return Template{}, false
	}
	return templates[i], true
}

// Lookup returns the instruction block for id.
// Unknown ids yield an empty block so generation is never blocked by a stale selection.
func Lookup(id string) string {
	t, _ := Get(id)
	return t.Instructions
}

// Name returns the display name for id, or DefaultName.
func Name(id string) string {
	if t, ok := Get(id); ok {
		return t.Name
	}
	return DefaultName
}

// List returns all templates in definition order.
func List() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Exists reports whether id is a catalog template.
func Exists(id string) bool {
	_, ok := byID[id]
	return ok
}
