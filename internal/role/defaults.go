package role

// DefaultRuleSet returns the built-in role tables for the sound
// department credits found on IMDb.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Combined: []Rule{
			containing("Dialogue Editor & Sound Editor", "Editor de Diálogos y Sonido", "dialogue editor", "sound editor"),
			containing("ADR Editor & Dialogue Editor", "Editor de ADR y Editor de Diálogos", "adr editor", "dialogue editor"),
			containing("Dialogue Editor & Supervising Sound Editor", "Editor de Diálogos y Supervisor de Sonido", "dialogue editor", "supervising"),
			containing("ADR Recordist & Dialogue Editor", "Grabador de ADR y Editor de Diálogos", "adr recordist", "dialogue editor"),
			containing("Sound Editor & Foley Artist", "Editor de Sonido y Artista de Foley", "foley artist", "sound editor"),
			containing("Dialogue Editor & Foley Artist", "Editor de Diálogos y Artista de Foley", "dialogue editor", "foley artist"),
		},
		Single: []Rule{
			containing("Dialogue Editor", "Editor de Diálogos", "dialogue editor"),
			containing("Sound Editor", "Editor de Sonido", "sound editor"),
			containing("ADR Recordist", "Grabador de ADR", "adr recordist"),
			containing("ADR Recordist", "Grabador de ADR", "a.d.r. recordist"),
			containing("ADR Editor", "Editor de ADR", "adr editor"),
			containing("Sound Designer", "Diseñador de Sonido", "sound designer"),
			containing("Sound Mixer", "Mezclador de Sonido", "sound mixer"),
			containing("Foley Editor", "Editor de Foley", "foley editor"),
			containing("Foley Artist", "Artista de Foley", "foley artist"),
			containing("Sound Restoration", "Restauración de Sonido", "sound restoration"),
			containing("Supervising Sound Editor", "Supervisor de Edición de Sonido", "supervising sound editor"),
			containing("Assistant Sound", "Asistente de Sonido", "assistant sound"),
			containing("Sound Effects Editor", "Editor de Efectos de Sonido", "sound effects editor"),
		},
	}
}
