package results

// EnglishColumns are the derived column names used by the by-country dataset
// and by any variant that does not name its own.
var EnglishColumns = DerivedColumns{
	Hour:         "HOUR",
	Minute:       "MINUTE",
	Second:       "SECOND",
	TotalSeconds: "SEC_TOTAL",
	SecPerKm:     "SEC_PER_KM",
	MinPerKm:     "MIN_PER_KM",
	KmPerHour:    "KM_PER_H",
	SortKey:      "POSITION",
	Checkpoint:   "SPENT_TIME_MIN",
	Distance:     "PASSED_DISTANCE_KM",
}

// EstonianColumns are the derived column names of the Tallinn Marathon results.
var EstonianColumns = DerivedColumns{
	Hour:         "HOUR",
	Minute:       "MINUTE",
	Second:       "SECOND",
	TotalSeconds: "SEK_KOKKU",
	SecPerKm:     "SEK_PER_KM",
	MinPerKm:     "MIN_PER_KM",
	KmPerHour:    "KM_PER_H",
	SortKey:      "PAIGUTUS",
	Checkpoint:   "KULUNUD_AEG_MIN",
	Distance:     "LÄBITUD_DISTANTS_KM",
}

// Individuals is the per-runner variant for championchip.ee result exports
// (columns KOHT, NR, NIMI, SÜND, RIIK, ELUKOHT, KLUBI, TULEMUS, KAOTUS, VKL).
// Runners are grouped by the first letter of their age class (M or N) and one
// median row is added per gender.
func Individuals() Variant {
	return Variant{
		Name:             "individuals",
		Description:      "one row per runner, grouped by gender with M and N median rows",
		IDColumn:         "NIMI",
		FinishTimeColumn: "TULEMUS",
		GroupColumn:      "SUGU",
		Grouping: Grouping{
			Strategy:     GroupPrefix,
			Source:       "VKL",
			PrefixLength: 1,
		},
		Medians: []MedianGroup{
			{Key: "M", Template: Record{"NIMI": "VÕRDLUSGRUPP (M, MEDIAAN)", "RIIK": "M_MED", "VKL": "VGR"}},
			{Key: "N", Template: Record{"NIMI": "VÕRDLUSGRUPP (N, MEDIAAN)", "RIIK": "N_MED", "VKL": "VGR"}},
		},
		Columns:           EstonianColumns,
		AnimationInterval: 3,
	}
}

// Countries is the per-country variant for national marathon records
// (columns COUNTRY, RESULT, NAME, DATE, PLACE). Countries are grouped by
// continent and a single overall median row is added.
func Countries() Variant {
	return Variant{
		Name:             "countries",
		Description:      "one row per national record, grouped by continent with an overall median row",
		IDColumn:         "COUNTRY",
		FinishTimeColumn: "RESULT",
		GroupColumn:      "CONTINENT",
		Grouping: Grouping{
			Strategy: GroupLookup,
			Source:   "COUNTRY",
			Prepend:  true,
		},
		Medians: []MedianGroup{
			{Key: "", Template: Record{"CONTINENT": "Continents median value", "COUNTRY": "Median value"}},
		},
		Columns:           EnglishColumns,
		AnimationInterval: 1,
	}
}

// Builtin returns the variants shipped with the tool.
func Builtin() Catalog {
	ind, ctry := Individuals(), Countries()
	return Catalog{ind.Name: ind, ctry.Name: ctry}
}
