package ingest

// builtinExclusions are the productions already present in the
// portfolio before the catalog was first generated.
var builtinExclusions = []string{
	"tt9892936",  // One Hundred Years of Solitude
	"tt2707408",  // Narcos
	"tt20158934", // La Suprema
	"tt15399372", // The Kings of the World
	"tt15399588", // La Roya
	"tt8105958",  // Wild District
	"tt5929594",  // Los Nadie
	"tt4335804",  // La Mujer del Animal
	"tt19867050", // Cavewoman
	"tt22303580", // Nuit Obscure
	"tt11772522", // Suspensión
	"tt18974572", // The Marked Heart
	"tt32245807", // Positivo Negativo
	"tt13988208", // Topos
	"tt17663876", // Muzzle
	"tt7425520",  // Buy Me a Gun
	"tt10214496", // The Donut King
	"tt3338230",  // La Semilla del Silencio
	"tt27418974", // El Rojo Más Puro
}

// ExclusionSet is an immutable set of IMDb IDs which the
// ingest service must skip.
type ExclusionSet struct {
	ids map[string]struct{}
}

// NewExclusionSet builds a set from the built-in exclusions
// and each of the ID lists provided.
func NewExclusionSet(lists ...[]string) ExclusionSet {
	set := ExclusionSet{ids: make(map[string]struct{}, len(builtinExclusions))}
	for _, id := range builtinExclusions {
		set.ids[id] = struct{}{}
	}
	for _, list := range lists {
		for _, id := range list {
			if id != "" {
				set.ids[id] = struct{}{}
			}
		}
	}

	return set
}

func (set ExclusionSet) Contains(imdbID string) bool {
	_, ok := set.ids[imdbID]
	return ok
}

func (set ExclusionSet) Len() int { return len(set.ids) }
