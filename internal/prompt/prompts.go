package prompt

// NotSpecified replaces an empty keyword list in the prompt.
const NotSpecified = "Não especificadas"

// headerPrompt opens every description request.
const headerPrompt = `Você é um redator especialista em e-commerce, SEO e copywriting.
Crie uma descrição de venda PERSUASIVA para o seguinte produto:`

// productPrompt lists the product attributes.
// Args: name, category, tone, keywords, size label, word ceiling.
const productPrompt = `**INFORMAÇÕES DO PRODUTO:**
- Nome: %s
- Categoria: %s
- Tom desejado: %s
- Palavras-chave: %s
- Tamanho: %s (máximo %d palavras)`

// guidelinesTemplate holds the fixed writing rules. Args: tone.
const guidelinesTemplate = `**DIRETRIZES ESTRITAS:**
1. ESTRUTURA:
   - Título chamativo (use 1-2 emojis relevantes)
   - Introdução breve (1-2 frases)
   - 4-6 bullet points com características e BENEFÍCIOS
   - Chamada para ação forte no final
2. ESTILO:
   - Tom: %s
   - Foco em benefícios (não só características)
   - Use palavras de poder: exclusivo, premium, garantido, etc.
   - Linguagem persuasiva que gere urgência
3. SEO:
   - Use palavras-chave naturalmente
   - Estrutura otimizada para motores de busca
   - Meta-descrição implícita
4. FORMATAÇÃO:
   - Use negrito (**) para destaques
   - Use emojis moderadamente (3-5 no total)
   - Bullet points claros`

const specsDirective = `ESPECIFICAÇÕES: Inclua uma seção "Especificações Técnicas" com as medidas e características relevantes`

const hashtagDirective = `HASHTAGS: Inclua 3-5 hashtags relevantes no final`

// templatePrompt wraps the catalog instructions. Args: template name, instructions.
const templatePrompt = `**ESTILO DO TEMPLATE (%s):**
%s`

const outputPrompt = `**SAÍDA:** Apenas a descrição formatada em Markdown, sem comentários adicionais.`
