package rules

// DefaultKeywords maps each bundled category to its lower-case triggers.
// Triggers are matched as plain substrings, so stems like "enoj" cover
// "enojo", "enojada" and so on.
func DefaultKeywords() map[string][]string {
	return map[string][]string{
		"Alegría": {
			"feliz", "felicidad", "alegr", "contento", "contenta", "genial",
			"maravill", "qué bien", "😊", "😁", "😄", "🎉", "🥳",
		},
		"Tristeza": {
			"triste", "tristeza", "llor", "deprim", "se murió", "murió",
			"perdí", "lo extraño", "la extraño", "😢", "😭", "💔",
		},
		"Enojo": {
			"enoj", "furioso", "furiosa", "furia", "rabia", "molest",
			"harto", "harta", "😡", "🤬", "😠",
		},
		"Miedo": {
			"miedo", "asust", "pánico", "panico", "temor", "aterr", "😨", "😱",
		},
		"Sorpresa": {
			"sorpresa", "sorprend", "no esperaba", "wow", "increíble",
			"increible", "😮", "😲", "🤯",
		},
		"Asco": {
			"asco", "asquer", "cucaracha", "vomit", "vómito", "repugnan",
			"🤮", "🤢",
		},
		"Amor": {
			"te amo", "amor", "te quiero", "enamor", "corazón", "❤", "😍",
			"🥰", "💕",
		},
		"Odio": {
			"odio", "detesto", "ojalá te mueras", "ojala te mueras",
			"peor persona", "no soporto",
		},
		"Vergüenza": {
			"vergüenza", "verguenza", "avergonz", "me vieron", "qué oso",
			"que oso", "ridículo", "😳",
		},
		"Orgullo": {
			"orgullo", "orgullos", "logré", "logre", "se graduó", "honores",
			"💪",
		},
		"Envidia": {
			"envidi", "no es justo", "tiene todo", "quisiera tener",
			"ojalá tuviera",
		},
		"Celos": {
			"celos", "celoso", "celosa", "con quién estabas", "con quien estabas",
		},
		"Humor": {
			"jaja", "jeje", "jiji", "lol", "xd", "😂", "🤣", "😅",
		},
		"Inspiración": {
			"nunca te rindas", "no te rindas", "oportunidad", "sueños",
			"inspira", "motiva", "sé mejor", "ser mejor", "✨", "🙌",
		},
		"Confesión": {
			"confieso", "confes", "nadie sabe", "secreto", "nunca le dije",
			"admito", "🤫",
		},
		"Queja": {
			"pésimo", "pesimo", "nunca contestan", "servicio", "queja",
			"reclam", "restaurante", "😤",
		},
		"Consejo": {
			"consejo", "te recomiendo", "recomiendo", "deberías", "deberias",
			"ahorra", "tip:",
		},
		"Pregunta": {
			"¿", "?", "alguien sabe", "pregunta",
		},
		"Reflexión": {
			"sentido de la vida", "existimos", "reflexi", "pienso que",
			"me pregunto", "la vida es", "🤔",
		},
		"Nostalgia": {
			"extraño", "infancia", "recuerdo", "nostalgia", "aquellos días",
			"cuando era niño", "cuando era niña", "los días de",
		},
		"Ansiedad": {
			"ansiedad", "ansios", "nervios", "no pude dormir", "no puedo dormir",
			"preocup", "estrés", "estres", "😰",
		},
		"Frustración": {
			"frustra", "no puedo más", "no puedo mas", "no sirve",
			"otra vez", "me haces enojar", "😩",
		},
		"Sarcasmo": {
			"claro, seguro", "sí claro", "si claro", "seguro que tú",
			"seguro que tu", "qué sorpresa", "🙄", "😏",
		},
		"Polémica": {
			"aborto", "polémic", "polemic", "cambien mi opinión",
			"cambien mi opinion", "opinión impopular", "debería ser legal",
			"polític", "religi",
		},
		"Terror": {
			"terror", "sombra", "fantasma", "espíritu", "demonio", "pesadilla",
			"👻", "💀",
		},
	}
}
