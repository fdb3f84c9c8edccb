package normalizer

// Reference data for the normalization pipeline. All tables are read-only
// after package init.

// stateSuffixes are trailing state hints clerks append to a place name.
// Longer phrases are listed before their prefixes so the strip loop removes
// the most specific form first.
var stateSuffixes = []string{
	"estado de mexico",
	"edo de mexico",
	"edo mex",
	"guerrero",
	"oaxaca",
	"michoacan",
	"morelos",
	"gro",
	"oax",
	"mich",
	"mor",
	"mex",
}

// abbreviations expands the descriptive and honorific prefixes common in
// clerk-entered text. Keys and values are matched with word boundaries, so
// the table only fires on whole tokens.
var abbreviations = map[string]string{
	"cd":    "ciudad",
	"col":   "colonia",
	"fracc": "fraccionamiento",
	"frac":  "fraccionamiento",
	"ej":    "ejido",
	"sn":    "san",
	"sta":   "santa",
	"sto":   "santo",
	"gral":  "general",
	"dr":    "doctor",
	"dra":   "doctora",
	"prof":  "profesor",
	"profa": "profesora",
	"ing":   "ingeniero",
	"lic":   "licenciado",
	"hnos":  "hermanos",
	"pte":   "poniente",
	"ote":   "oriente",
	"nte":   "norte",
	"av":    "avenida",
}

// exactCorrections rewrites whole normalized queries that data entry gets
// wrong often enough to be worth pinning.
var exactCorrections = map[string]string{
	"chilpansingo":          "chilpancingo de los bravo",
	"chilpancingo":          "chilpancingo de los bravo",
	"acapulco":              "acapulco de juarez",
	"iguala":                "iguala de la independencia",
	"taxco":                 "taxco de alarcon",
	"zihuatanejo":           "zihuatanejo de azueta",
	"tlapa":                 "tlapa de comonfort",
	"huajuapan":             "huajuapan de leon",
	"tuxtepec":              "san juan bautista tuxtepec",
	"juchitan":              "juchitan de zaragoza",
	"pinotepa":              "santiago pinotepa nacional",
	"puerto escondido":      "san pedro mixtepec",
	"ciudad de los servicios": "acapulco de juarez",
}

// partialCorrections fixes known misspelled fragments in place. Replacement
// text never contains its own key, which keeps the pass idempotent.
var partialCorrections = map[string]string{
	"guerero":     "guerrero",
	"oajaca":      "oaxaca",
	"guayava":     "guayaba",
	"zuimatlan":   "zimatlan",
	"tehuantepe ": "tehuantepec ",
	"chilapa d ":  "chilapa de ",
}

// Connectors are the Spanish joining words the Variation Generator inserts
// and removes between word pairs.
var Connectors = []string{"y", "de", "del", "la", "las", "los", "el", "san", "santa", "santo"}

// connectorSet is Connectors as a membership set.
var connectorSet = func() map[string]bool {
	m := make(map[string]bool, len(Connectors))
	for _, c := range Connectors {
		m[c] = true
	}
	return m
}()

// IsConnector reports whether w is a connector word.
func IsConnector(w string) bool { return connectorSet[w] }

// Descriptors are the generic settlement-type words that carry no
// distinguishing signal when comparing names.
var Descriptors = map[string]bool{
	"colonia":         true,
	"ciudad":          true,
	"ejido":           true,
	"fraccionamiento": true,
	"rancho":          true,
	"rancheria":       true,
	"barrio":          true,
	"villa":           true,
	"pueblo":          true,
	"poblado":         true,
	"comunidad":       true,
	"paraje":          true,
	"congregacion":    true,
}

// IsDescriptor reports whether w is a settlement-type descriptor word.
func IsDescriptor(w string) bool { return Descriptors[w] }

// IsStopword reports whether w should be excluded from significant-word
// comparison: connectors, descriptors and grammatical filler.
func IsStopword(w string) bool {
	if len(w) < 2 {
		return true
	}
	if connectorSet[w] || Descriptors[w] {
		return true
	}
	switch w {
	case "en", "al", "con", "por", "para":
		return true
	}
	return false
}
