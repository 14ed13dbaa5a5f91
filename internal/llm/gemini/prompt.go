package gemini

import "strings"

// promptTemplate instructs the model to copy resume content verbatim and
// return the canonical JSON shape. [[CURRICULO_TEXT]] is replaced by the
// resume text.
const promptTemplate = `
Você é um assistente de extração de dados de currículos. Sua ÚNICA função é extrair informações que REALMENTE EXISTEM no currículo fornecido.

REGRAS ABSOLUTAS - VIOLAÇÕES INVALIDARÃO A RESPOSTA:

1. FIDELIDADE TOTAL AO TEXTO ORIGINAL:
   - Copie EXATAMENTE como está escrito, palavra por palavra, incluindo pontuação, maiúsculas, acentos e formatação
   - NUNCA parafraseie, resuma, reescreva, melhore ou ajuste o texto
   - NUNCA traduza termos técnicos ou nomes próprios
   - NUNCA corrija erros de português ou gramática do currículo original
   - Se o currículo diz "Desenvolvi feature X", escreva "Desenvolvi feature X" (não "Desenvolvimento de feature X")
   - Se o currículo diz "React", não escreva "React.js" ou "ReactJS"

2. NÃO INVENTE, DEDUZA OU INFIRA:
   - Se um dado NÃO está explicitamente no currículo, use null ou []
   - NÃO adicione habilidades que "provavelmente a pessoa tem" baseado no cargo
   - NÃO complete informações faltantes com base em experiências anteriores
   - NÃO invente datas, localizações, tecnologias ou responsabilidades
   - NÃO deduza soft skills que não estejam explícitas
   - NÃO adicione projetos, certificações ou idiomas que não estejam listados

3. PRESERVAÇÃO DE NOMES E IDENTIDADES:
   - Nomes de empresas: copie EXATAMENTE (ex: "L.U.M.I.N.A" não é "LUMINA", "Dev Tech" não é "DevTech")
   - Nomes de ligas/organizações: preservar pontos, espaços e abreviações
   - Nomes de tecnologias: manter capitalização original (Python, not python; JavaScript, not javascript)
   - Cargos: copiar exatamente como listado (não normalizar ou padronizar)

4. QUANDO USAR null OU [] (LISTA VAZIA):
   - Campo NÃO existe no currículo → null ou []
   - Campo existe mas está vazio → null ou []
   - Informação parcial ou ambígua → extrair apenas o que está claro, resto null
   - Dúvida entre duas interpretações → use null, não invente

5. ESTRUTURA JSON:
Retorne APENAS JSON válido (sem markdown) com esta estrutura:

{
  "personal_info": {
    "full_name": "Nome EXATO do topo do currículo",
    "headline": "Cargo/título EXATO se houver logo após o nome",
    "email": "email@exato.com ou null",
    "phone": "telefone exato ou null",
    "location": "localização exata ou null",
    "linkedin": "URL completa https://... ou null",
    "github": "URL completa https://... ou null",
    "portfolio": "URL completa https://... ou null"
  },
  "summary": "Copiar resumo/objetivo INTEGRALMENTE do currículo, ou null se não houver",
  "experiences": [
    {
      "company": "Nome EXATO da empresa como escrito",
      "position": "Cargo EXATO",
      "location": "Local exato ou null",
      "start_date": "YYYY-MM formato quando disponível",
      "end_date": "YYYY-MM ou 'Atual' se atual, ou null",
      "current": true/false,
      "achievements": ["Item 1 EXATO", "Item 2 EXATO", "..."]
    }
  ],
  "extracurricular_experiences": "Mesma estrutura de experiences, para ligas, voluntariado, projetos acadêmicos",
  "education": [
    {
      "institution": "Nome EXATO da instituição",
      "degree": "Nome EXATO do curso/grau",
      "field": "Área exata ou null",
      "start_date": "YYYY quando possível",
      "end_date": "YYYY ou 'Cursando' ou null",
      "current": true/false
    }
  ],
  "skills": {
    "technical": ["Cópias EXATAS de skills técnicas"],
    "tools": ["Ferramentas EXATAS listadas"],
    "soft": ["Soft skills EXATAS se explicitamente listadas"],
    "categorized": {
      "linguagens": "Lista separada por vírgula SE categoria existir, null caso contrário",
      "frontend": "Lista separada por vírgula SE categoria existir, null caso contrário",
      "backend": "...",
      "frameworks": "...",
      "banco_de_dados": "...",
      "ferramentas": "...",
      "praticas": "..."
    }
  },
  "certifications": [
    {
      "name": "Nome EXATO do certificado",
      "institution": "Instituição EXATA ou null",
      "date": "YYYY ou YYYY-MM quando disponível, ou null"
    }
  ],
  "projects": [
    {
      "name": "Nome EXATO do projeto",
      "description": "Descrição INTEGRAL copiada do currículo",
      "highlights": ["Destaques EXATOS se houver"],
      "technologies": ["Tecnologias EXATAS mencionadas"],
      "url": "URL completa https://... ou null"
    }
  ],
  "languages": [
    {
      "language": "Idioma EXATO",
      "proficiency": "Nível EXATO como descrito"
    }
  ]
}

6. EXEMPLOS DO QUE NÃO FAZER:
   ❌ Currículo: "Implementei API REST" → Você: "Desenvolveu APIs RESTful para..."
   ✅ Correto: "Implementei API REST"

   ❌ Currículo não menciona "Docker" → Você adiciona porque viu "containers"
   ✅ Correto: Não adicionar Docker

   ❌ Currículo: "L.I.G.A." → Você: "LIGA"
   ✅ Correto: "L.I.G.A."

   ❌ Currículo: cargo vazio → Você: "Desenvolvedor" (baseado em responsabilidades)
   ✅ Correto: null

CURRÍCULO A SER EXTRAÍDO:
[[CURRICULO_TEXT]]

LEMBRE-SE: Sua resposta será validada. Qualquer dado que não esteja explicitamente no currículo acima resultará em falha total da extração.
`

// retrySuffix is appended to the prompt on the single retry after a
// MAX_TOKENS truncation.
const retrySuffix = `

⚠️ ATENÇÃO - NOVA TENTATIVA:
- A resposta anterior foi truncada (excedeu limite de tokens)
- Gere novamente o JSON COMPLETO com TODAS as informações do currículo
- Mantenha FIDELIDADE ABSOLUTA: copie textos exatamente como estão, não invente nada
- NÃO omita experiências, projetos, certificações, educação ou habilidades
- NÃO resuma ou parafraseie - copie integralmente
- Se precisar priorizar: inclua TODOS os dados estruturais, mesmo que precise encurtar descriptions/achievements ligeiramente
- Retorne SOMENTE JSON válido, sem markdown
`

// BuildPrompt fills the extraction prompt with the resume text.
func BuildPrompt(resumeText string) string {
	return strings.ReplaceAll(promptTemplate, "[[CURRICULO_TEXT]]", resumeText)
}
