// Package eval measures classifier quality against labelled example posts.
package eval

// Case is a text and the categories a reader would accept for it.
type Case struct {
	Text     string   `json:"text"`
	Expected []string `json:"expected"`
}

// DefaultCases returns the bundled Spanish corpus. The last six cases mix
// emotions and exercise multi-label detection.
func DefaultCases() []Case {
	return []Case{
		{Text: "Te odio, eres la peor persona del mundo, ojalá te mueras", Expected: []string{"Odio", "Enojo"}},
		{Text: "Jajaja me caí en la calle y todos me vieron 😂", Expected: []string{"Humor", "Vergüenza"}},
		{Text: "Nunca te rindas, cada día es una nueva oportunidad para ser mejor", Expected: []string{"Inspiración"}},
		{Text: "Hoy se murió mi perro, lo extraño mucho 😢", Expected: []string{"Tristeza", "Nostalgia"}},
		{Text: "Te amo con todo mi corazón, eres el amor de mi vida ❤️", Expected: []string{"Amor"}},
		{Text: "El aborto debería ser legal, cambien mi opinión", Expected: []string{"Polémica", "Reflexión"}},
		{Text: "Encontré una cucaracha en mi comida del restaurante 🤮", Expected: []string{"Asco", "Queja"}},
		{Text: "¿Por qué existimos? ¿Cuál es el sentido de la vida?", Expected: []string{"Reflexión", "Pregunta"}},
		{Text: "Confieso que una vez robé dinero de la cartera de mi mamá", Expected: []string{"Confesión", "Vergüenza"}},
		{Text: "El servicio de esta empresa es pésimo, nunca contestan", Expected: []string{"Queja", "Frustración", "Enojo"}},
		{Text: "¿Alguien sabe por qué el cielo es azul?", Expected: []string{"Pregunta"}},
		{Text: "Anoche vi una sombra en mi cuarto y no pude dormir del miedo", Expected: []string{"Miedo", "Terror"}},
		{Text: "¡Qué sorpresa! No esperaba verte aquí", Expected: []string{"Sorpresa", "Alegría"}},
		{Text: "Estoy muy orgulloso de mi hijo, se graduó con honores", Expected: []string{"Orgullo", "Alegría"}},
		{Text: "Extraño tanto los días de mi infancia", Expected: []string{"Nostalgia", "Tristeza"}},
		{Text: "No sé si podré hacerlo, estoy muy nervioso", Expected: []string{"Ansiedad", "Miedo"}},
		{Text: "Ella tiene todo lo que yo quiero, no es justo", Expected: []string{"Envidia", "Frustración"}},
		{Text: "Mi mejor consejo: ahorra desde joven", Expected: []string{"Consejo"}},

		{Text: "Me río para no llorar, perdí todo pero aquí seguimos 😅😢", Expected: []string{"Humor", "Tristeza"}},
		{Text: "Te amo pero a veces me haces enojar tanto", Expected: []string{"Amor", "Enojo", "Frustración"}},
		{Text: "¿Por qué me dejaste? Te odio pero aún te amo", Expected: []string{"Amor", "Odio", "Tristeza"}},
		{Text: "Confieso que le fui infiel a mi pareja y me arrepiento mucho 😢", Expected: []string{"Confesión", "Tristeza", "Vergüenza"}},
		{Text: "Qué asco esta comida pero jaja igual me la comí toda 😂🤮", Expected: []string{"Asco", "Humor"}},
		{Text: "Claro, seguro que tú nunca te equivocas 🙄", Expected: []string{"Sarcasmo", "Enojo"}},
	}
}
